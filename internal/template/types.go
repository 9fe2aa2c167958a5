package template

import (
	"fmt"
	"time"
)

// FieldKind is the closed set of input kinds a template field may declare.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindTextarea FieldKind = "textarea"
	KindDate     FieldKind = "date"
	KindNumber   FieldKind = "number"
	KindSelect   FieldKind = "select"
)

// validKinds is the set of recognized field kinds.
var validKinds = map[FieldKind]bool{
	KindText:     true,
	KindTextarea: true,
	KindDate:     true,
	KindNumber:   true,
	KindSelect:   true,
}

// Field declares a single fillable field of a template.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Label    string    `json:"label" yaml:"label"`
	Kind     FieldKind `json:"type" yaml:"type"`
	Required bool      `json:"required" yaml:"required"`
	Options  []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Validate checks that the field declaration is well formed.
func (f Field) Validate() error {
	if f.Name == "" {
		return fmt.Errorf("field name is required")
	}
	if f.Kind == "" {
		return fmt.Errorf("field %s: type is required", f.Name)
	}
	if !validKinds[f.Kind] {
		return fmt.Errorf("field %s: unknown type %q", f.Name, f.Kind)
	}
	switch f.Kind {
	case KindSelect:
		if len(f.Options) == 0 {
			return fmt.Errorf("field %s: select fields need at least one option", f.Name)
		}
	default:
		if len(f.Options) > 0 {
			return fmt.Errorf("field %s: options are only valid on select fields", f.Name)
		}
	}
	return nil
}

// Template is a legal document template: a text body containing
// placeholder markers plus the declared fields that fill them.
type Template struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	TemplateType string    `json:"templateType"`
	Jurisdiction string    `json:"jurisdiction,omitempty"`
	Content      string    `json:"templateContent"`
	Fields       []Field   `json:"fields"`
	Builtin      bool      `json:"builtin,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
	UpdatedAt    time.Time `json:"updatedAt,omitempty"`
}

// Validate checks the template and all of its fields.
func (t Template) Validate() error {
	if t.Title == "" {
		return fmt.Errorf("template title is required")
	}
	if t.Content == "" {
		return fmt.Errorf("template content is required")
	}
	seen := make(map[string]bool, len(t.Fields))
	for _, f := range t.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %s", f.Name)
		}
		seen[f.Name] = true
	}
	return nil
}
