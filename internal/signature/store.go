package signature

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexdraft/lexdraft/internal/db"
)

// Store persists signature requests.
type Store struct {
	db *db.DB
}

func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Create inserts a new signature request in the created state.
func (s *Store) Create(ctx context.Context, req Request) (*Request, error) {
	if req.DocumentID == "" {
		return nil, fmt.Errorf("document id is required")
	}
	if req.SignerName == "" || req.SignerEmail == "" {
		return nil, fmt.Errorf("signer name and email are required")
	}

	req.ID = uuid.NewString()
	req.Status = StatusCreated
	now := time.Now().UTC()
	req.CreatedAt = now
	req.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO signature_requests (id, document_id, envelope_id, signer_name, signer_email, status, status_detail, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		req.ID, req.DocumentID, req.EnvelopeID, req.SignerName, req.SignerEmail,
		string(req.Status), req.StatusDetail, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting signature request: %w", err)
	}
	return &req, nil
}

// GetByID returns a signature request, or nil if none exists.
func (s *Store) GetByID(ctx context.Context, id string) (*Request, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, envelope_id, signer_name, signer_email, status, status_detail, created_at, updated_at
		FROM signature_requests WHERE id = ?`, id)
	return scanRequest(row)
}

// GetByEnvelope returns the request tied to a provider envelope, or nil.
func (s *Store) GetByEnvelope(ctx context.Context, envelopeID string) (*Request, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, document_id, envelope_id, signer_name, signer_email, status, status_detail, created_at, updated_at
		FROM signature_requests WHERE envelope_id = ?`, envelopeID)
	return scanRequest(row)
}

// ListByDocument returns all signature requests for a document, newest first.
func (s *Store) ListByDocument(ctx context.Context, documentID string) ([]Request, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, document_id, envelope_id, signer_name, signer_email, status, status_detail, created_at, updated_at
		FROM signature_requests WHERE document_id = ? ORDER BY created_at DESC`, documentID)
	if err != nil {
		return nil, fmt.Errorf("listing signature requests: %w", err)
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	return requests, rows.Err()
}

// UpdateStatus advances the lifecycle status of a request.
func (s *Store) UpdateStatus(ctx context.Context, id string, status Status, detail string) error {
	if !ValidStatus(status) {
		return fmt.Errorf("invalid signature status %q", status)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE signature_requests SET status = ?, status_detail = ?, updated_at = ? WHERE id = ?`,
		string(status), detail, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("updating signature status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("signature request %s not found", id)
	}
	return nil
}

// SetEnvelope records the provider envelope id after a successful send.
func (s *Store) SetEnvelope(ctx context.Context, id, envelopeID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE signature_requests SET envelope_id = ?, updated_at = ? WHERE id = ?`,
		envelopeID, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("setting envelope id: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRequest(row scanner) (*Request, error) {
	var req Request
	var status string
	err := row.Scan(&req.ID, &req.DocumentID, &req.EnvelopeID, &req.SignerName,
		&req.SignerEmail, &status, &req.StatusDetail, &req.CreatedAt, &req.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning signature request: %w", err)
	}
	req.Status = Status(status)
	return &req, nil
}
