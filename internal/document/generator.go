package document

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/template"
	"github.com/lexdraft/lexdraft/internal/templates"
)

// Generator turns a template plus field values into a finished document,
// optionally running the result through the AI enhancer.
type Generator struct {
	templates    *templates.Store
	documents    *Store
	enhancer     *Enhancer
	audit        *audit.Store
	jurisdiction string
}

// NewGenerator creates a Generator. enhancer may be nil-valued (disabled)
// and auditStore may be nil for callers that do not record a trail.
func NewGenerator(templateStore *templates.Store, documentStore *Store, enhancer *Enhancer, auditStore *audit.Store, defaultJurisdiction string) *Generator {
	return &Generator{
		templates:    templateStore,
		documents:    documentStore,
		enhancer:     enhancer,
		audit:        auditStore,
		jurisdiction: defaultJurisdiction,
	}
}

// Generate resolves the template's placeholders with the request's field
// data and, when requested, persists the result.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if req.TemplateID == "" {
		return nil, fmt.Errorf("templateId is required")
	}

	tmpl, err := g.templates.GetByID(ctx, req.TemplateID)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	if tmpl == nil {
		return nil, fmt.Errorf("template not found: %s", req.TemplateID)
	}

	content := template.Resolve(*tmpl, req.FieldData)

	result := &GenerateResult{
		Content:    content,
		Unresolved: template.UnresolvedMarkers(content),
	}

	title := req.Title
	if title == "" {
		title = tmpl.Title
	}

	if req.Save {
		doc, err := g.documents.Create(ctx, Document{
			UserID:       req.UserID,
			TemplateID:   tmpl.ID,
			Title:        title,
			Content:      content,
			FieldData:    req.FieldData,
			Jurisdiction: tmpl.Jurisdiction,
		})
		if err != nil {
			return nil, fmt.Errorf("saving document: %w", err)
		}
		result.Document = doc
		g.record(ctx, req.UserID, audit.ActionDocumentGenerated, doc.ID,
			fmt.Sprintf("generated %q from template %s", title, tmpl.ID))
	}

	return result, nil
}

// GenerateEnhanced resolves the inline template body and sends the result
// through the AI enhancer. Provider failure is not fatal: the locally
// resolved document is returned with Enhanced=false, since the resolver
// output is always a valid document.
func (g *Generator) GenerateEnhanced(ctx context.Context, req EnhancedRequest) (*GenerateResult, error) {
	if req.Template == "" {
		return nil, fmt.Errorf("template is required")
	}

	fields := fieldsFromFormData(req.FormData)
	content := template.ResolveContent(req.Template, fields, req.FormData, "")

	result := &GenerateResult{Content: content}

	jurisdiction := req.Jurisdiction
	if jurisdiction == "" {
		jurisdiction = g.jurisdiction
	}

	if g.enhancer.Enabled() {
		enhanced, err := g.enhancer.Enhance(ctx, content, req.DocumentType, jurisdiction)
		if err != nil {
			log.Printf("enhancement failed, returning resolved document: %v", err)
		} else {
			result.Content = enhanced
			result.Enhanced = true
		}
	}

	result.Unresolved = template.UnresolvedMarkers(result.Content)

	if req.SaveDocument {
		title := req.Title
		if title == "" {
			title = "Generated document"
		}
		doc, err := g.documents.Create(ctx, Document{
			UserID:       req.UserID,
			Title:        title,
			Content:      result.Content,
			FieldData:    req.FormData,
			Enhanced:     result.Enhanced,
			Jurisdiction: jurisdiction,
		})
		if err != nil {
			return nil, fmt.Errorf("saving document: %w", err)
		}
		result.Document = doc

		action := audit.ActionDocumentGenerated
		if result.Enhanced {
			action = audit.ActionDocumentEnhanced
		}
		g.record(ctx, req.UserID, action, doc.ID, fmt.Sprintf("generated %q (%s)", title, req.DocumentType))
	}

	return result, nil
}

// fieldsFromFormData synthesizes text-field declarations for an inline
// template, preserving the map's keys in a stable order so the resolver's
// first-declared-wins tie-break stays deterministic.
func fieldsFromFormData(formData map[string]string) []template.Field {
	names := make([]string, 0, len(formData))
	for name := range formData {
		names = append(names, name)
	}
	// Map iteration order is random; sort for determinism.
	sort.Strings(names)

	fields := make([]template.Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, template.Field{Name: name, Kind: template.KindText})
	}
	return fields
}

func (g *Generator) record(ctx context.Context, actorID string, action audit.Action, scopeID, summary string) {
	if g.audit == nil {
		return
	}
	entry := audit.Entry{
		ActorType: audit.ActorUser,
		ActorID:   actorID,
		Action:    action,
		Scope:     audit.ScopeDocument,
		ScopeID:   scopeID,
		Summary:   summary,
	}
	if actorID == "" {
		entry.ActorType = audit.ActorSystem
		entry.ActorID = "system"
	}
	if err := g.audit.Log(ctx, entry); err != nil {
		log.Printf("audit log failed: %v", err)
	}
}
