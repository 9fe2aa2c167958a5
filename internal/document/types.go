package document

import "time"

// Status tracks a document through its lifecycle.
type Status string

const (
	StatusDraft            Status = "draft"
	StatusFinal            Status = "final"
	StatusSentForSignature Status = "sent_for_signature"
	StatusSigned           Status = "signed"
)

// Document is a generated legal document: the resolved template body plus
// the field data it was produced from.
type Document struct {
	ID           string            `json:"id"`
	UserID       string            `json:"userId"`
	TemplateID   string            `json:"templateId"`
	Title        string            `json:"documentTitle"`
	Content      string            `json:"documentContent"`
	FieldData    map[string]string `json:"documentData"`
	Status       Status            `json:"status"`
	Enhanced     bool              `json:"enhanced"`
	Jurisdiction string            `json:"jurisdiction,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}

// GenerateRequest is the payload for template-based generation.
type GenerateRequest struct {
	UserID     string            `json:"userId"`
	TemplateID string            `json:"templateId"`
	Title      string            `json:"documentTitle"`
	FieldData  map[string]string `json:"documentData"`
	Save       bool              `json:"saveDocument"`
}

// EnhancedRequest is the payload for AI-enhanced generation. The caller
// supplies the raw template body and fields inline, matching clients that
// edit a template locally before generating.
type EnhancedRequest struct {
	Template     string            `json:"template"`
	FormData     map[string]string `json:"formData"`
	DocumentType string            `json:"documentType"`
	Jurisdiction string            `json:"jurisdiction"`
	SaveDocument bool              `json:"saveDocument"`
	Title        string            `json:"title"`
	UserID       string            `json:"userId"`
}

// GenerateResult is returned by both generation endpoints.
type GenerateResult struct {
	Document   *Document `json:"document,omitempty"`
	Content    string    `json:"content"`
	Enhanced   bool      `json:"enhanced"`
	Unresolved []string  `json:"unresolvedMarkers,omitempty"`
}
