package document

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexdraft/lexdraft/internal/db"
)

// Store manages persistence of generated documents.
type Store struct {
	db *db.DB
}

// NewStore creates a new document store.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new document.
func (s *Store) Create(ctx context.Context, d Document) (*Document, error) {
	if d.Title == "" {
		return nil, fmt.Errorf("document title is required")
	}
	if d.Content == "" {
		return nil, fmt.Errorf("document content is required")
	}
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Status == "" {
		d.Status = StatusDraft
	}
	if d.FieldData == nil {
		d.FieldData = map[string]string{}
	}
	now := time.Now().UTC()
	d.CreatedAt = now
	d.UpdatedAt = now

	dataJSON, err := json.Marshal(d.FieldData)
	if err != nil {
		return nil, fmt.Errorf("encoding field data: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (id, user_id, template_id, title, content, field_data, status, enhanced, jurisdiction, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.UserID, d.TemplateID, d.Title, d.Content, string(dataJSON), d.Status, boolToInt(d.Enhanced), d.Jurisdiction, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting document: %w", err)
	}
	return &d, nil
}

// GetByID retrieves a document by its ID. Returns (nil, nil) when absent.
func (s *Store) GetByID(ctx context.Context, id string) (*Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, user_id, template_id, title, content, field_data, status, enhanced, jurisdiction, created_at, updated_at
		 FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting document: %w", err)
	}
	return d, nil
}

// ListFilter narrows List results.
type ListFilter struct {
	UserID     string
	TemplateID string
	Status     Status
	Limit      int
	Offset     int
}

// List returns documents matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter ListFilter) ([]Document, error) {
	query := `SELECT id, user_id, template_id, title, content, field_data, status, enhanced, jurisdiction, created_at, updated_at
		 FROM documents WHERE 1=1`
	args := []interface{}{}

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}
	if filter.TemplateID != "" {
		query += " AND template_id = ?"
		args = append(args, filter.TemplateID)
	}
	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
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
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

// UpdateStatus changes the status of a document.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE documents SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating status: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

// Delete removes a document.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting document: %w", err)
	}
	n, _ := result.RowsAffected()
	if n == 0 {
		return fmt.Errorf("document not found: %s", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row scanner) (*Document, error) {
	var d Document
	var dataJSON string
	var enhanced int
	if err := row.Scan(&d.ID, &d.UserID, &d.TemplateID, &d.Title, &d.Content, &dataJSON, &d.Status, &enhanced, &d.Jurisdiction, &d.CreatedAt, &d.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(dataJSON), &d.FieldData); err != nil {
		return nil, fmt.Errorf("decoding field data: %w", err)
	}
	d.Enhanced = enhanced != 0
	return &d, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
