package templates

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexdraft/lexdraft/internal/db"
	"github.com/lexdraft/lexdraft/internal/template"
)

// Store manages persistence of document templates.
type Store struct {
	db *db.DB
}

// NewStore creates a new template store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new template. The template is validated first.
func (s *Store) Create(ctx context.Context, t template.Template) (*template.Template, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.TemplateType == "" {
		t.TemplateType = "general"
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	fieldsJSON, err := json.Marshal(t.Fields)
	if err != nil {
		return nil, fmt.Errorf("encoding fields: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO document_templates (id, title, template_type, jurisdiction, template_content, fields, builtin, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Title, t.TemplateType, t.Jurisdiction, t.Content, string(fieldsJSON), boolToInt(t.Builtin), t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting template: %w", err)
	}
	return &t, nil
}

// GetByID retrieves a template by its ID. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*template.Template, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, template_type, jurisdiction, template_content, fields, builtin, created_at, updated_at
		 FROM document_templates WHERE id = ?`, id)
	t, err := scanTemplate(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting template: %w", err)
	}
	return t, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	TemplateType string
	Jurisdiction string
	Limit        int
	Offset       int
}

// List returns templates matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]template.Template, error) {
	query := `SELECT id, title, template_type, jurisdiction, template_content, fields, builtin, created_at, updated_at
		 FROM document_templates WHERE 1=1`
	args := []interface{}{}

	if filter.TemplateType != "" {
		query += " AND template_type = ?"
		args = append(args, filter.TemplateType)
	}
	if filter.Jurisdiction != "" {
		query += " AND jurisdiction = ?"
		args = append(args, filter.Jurisdiction)
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing templates: %w", err)
	}
	defer rows.Close()

	var out []template.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update replaces the mutable parts of an existing template.
func (s *Store) Update(ctx context.Context, t template.Template) error {
	if err := t.Validate(); err != nil {
		return err
	}
	fieldsJSON, err := json.Marshal(t.Fields)
	if err != nil {
		return fmt.Errorf("encoding fields: %w", err)
	}

	result, err := s.db.ExecContext(ctx,
		`UPDATE document_templates SET title = ?, template_type = ?, jurisdiction = ?, template_content = ?, fields = ?, updated_at = ?
		 WHERE id = ?`,
		t.Title, t.TemplateType, t.Jurisdiction, t.Content, string(fieldsJSON), time.Now().UTC(), t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating template: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("template not found: %s", t.ID)
	}
	return nil
}

// Delete removes a template. Builtin templates cannot be deleted.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM document_templates WHERE id = ? AND builtin = 0`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("template not found or builtin: %s", id)
	}
	return nil
}

// scanner abstracts sql.Row and sql.Rows for scanTemplate.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanTemplate(row scanner) (*template.Template, error) {
	var t template.Template
	var fieldsJSON string
	var builtin int
	if err := row.Scan(&t.ID, &t.Title, &t.TemplateType, &t.Jurisdiction, &t.Content, &fieldsJSON, &builtin, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(fieldsJSON), &t.Fields); err != nil {
		return nil, fmt.Errorf("decoding fields: %w", err)
	}
	t.Builtin = builtin != 0
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
