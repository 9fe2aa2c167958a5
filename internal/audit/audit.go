package audit

import "time"

// ActorType identifies who performed an action.
type ActorType string

const (
	ActorUser   ActorType = "user"
	ActorSystem ActorType = "system"
)

// Action describes what was done.
type Action string

const (
	ActionDocumentGenerated Action = "document_generated"
	ActionDocumentEnhanced  Action = "document_enhanced"
	ActionDocumentExported  Action = "document_exported"
	ActionDocumentDeleted   Action = "document_deleted"
	ActionTemplateCreated   Action = "template_created"
	ActionTemplateImported  Action = "template_imported"
	ActionSignatureSent     Action = "signature_sent"
	ActionSignatureUpdated  Action = "signature_updated"
)

// Scope describes the entity an action applies to.
type Scope string

const (
	ScopeDocument  Scope = "document"
	ScopeTemplate  Scope = "template"
	ScopeSignature Scope = "signature"
)

// Entry is a single audit trail record.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	ActorType ActorType `json:"actorType"`
	ActorID   string    `json:"actorId"`
	Action    Action    `json:"action"`
	Scope     Scope     `json:"scope"`
	ScopeID   string    `json:"scopeId"`
	Summary   string    `json:"summary"`
	Detail    string    `json:"detail,omitempty"`
}
