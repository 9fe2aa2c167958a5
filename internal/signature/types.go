package signature

import "time"

// Status tracks a signature request through the provider's lifecycle.
type Status string

const (
	StatusCreated  Status = "created"
	StatusSent     Status = "sent"
	StatusViewed   Status = "viewed"
	StatusSigned   Status = "signed"
	StatusDeclined Status = "declined"
	StatusError    Status = "error"
)

// ValidStatus reports whether s is a known lifecycle status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusCreated, StatusSent, StatusViewed, StatusSigned, StatusDeclined, StatusError:
		return true
	}
	return false
}

// Request is a single request to collect a signature on a document.
type Request struct {
	ID           string    `json:"id"`
	DocumentID   string    `json:"documentId"`
	EnvelopeID   string    `json:"envelopeId,omitempty"`
	SignerName   string    `json:"signerName"`
	SignerEmail  string    `json:"signerEmail"`
	Status       Status    `json:"status"`
	StatusDetail string    `json:"statusDetail,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
