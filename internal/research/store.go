package research

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/lexdraft/lexdraft/internal/db"
)

// Clause is a reusable legal clause with optional jurisdiction and tags.
type Clause struct {
	ID           string    `json:"id" yaml:"id"`
	Title        string    `json:"title" yaml:"title"`
	Body         string    `json:"body" yaml:"body"`
	Jurisdiction string    `json:"jurisdiction,omitempty" yaml:"jurisdiction"`
	Tags         []string  `json:"tags,omitempty" yaml:"tags"`
	CreatedAt    time.Time `json:"createdAt" yaml:"-"`
}

// ClauseStore persists the clause library.
type ClauseStore struct {
	db *db.DB
}

func NewClauseStore(database *db.DB) *ClauseStore {
	return &ClauseStore{db: database}
}

// Create inserts a clause. A missing id is generated.
func (s *ClauseStore) Create(ctx context.Context, c Clause) (*Clause, error) {
	if c.Title == "" || c.Body == "" {
		return nil, fmt.Errorf("clause title and body are required")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()

	tags, err := json.Marshal(c.Tags)
	if err != nil {
		return nil, fmt.Errorf("encoding tags: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO clauses (id, title, body, jurisdiction, tags, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Title, c.Body, c.Jurisdiction, string(tags), c.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting clause: %w", err)
	}
	return &c, nil
}

// GetByID returns a clause, or nil if none exists.
func (s *ClauseStore) GetByID(ctx context.Context, id string) (*Clause, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, body, jurisdiction, tags, created_at FROM clauses WHERE id = ?`, id)
	return scanClause(row)
}

// List returns all clauses, optionally filtered by jurisdiction.
func (s *ClauseStore) List(ctx context.Context, jurisdiction string) ([]Clause, error) {
	query := `SELECT id, title, body, jurisdiction, tags, created_at FROM clauses`
	var args []any
	if jurisdiction != "" {
		query += ` WHERE jurisdiction = ? OR jurisdiction = ''`
		args = append(args, jurisdiction)
	}
	query += ` ORDER BY created_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing clauses: %w", err)
	}
	defer rows.Close()

	var clauses []Clause
	for rows.Next() {
		c, err := scanClause(rows)
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, *c)
	}
	return clauses, rows.Err()
}

// Delete removes a clause.
func (s *ClauseStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM clauses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting clause: %w", err)
	}
	return nil
}

// LoadFile reads clauses from a YAML file and inserts the ones not
// already present. Returns the number inserted.
func (s *ClauseStore) LoadFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading clause file: %w", err)
	}

	var clauses []Clause
	if err := yaml.Unmarshal(data, &clauses); err != nil {
		return 0, fmt.Errorf("parsing clause file %s: %w", path, err)
	}

	inserted := 0
	for _, c := range clauses {
		if c.ID != "" {
			existing, err := s.GetByID(ctx, c.ID)
			if err != nil {
				return inserted, err
			}
			if existing != nil {
				continue
			}
		}
		if _, err := s.Create(ctx, c); err != nil {
			return inserted, fmt.Errorf("loading clause %q: %w", c.Title, err)
		}
		inserted++
	}
	return inserted, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClause(row scanner) (*Clause, error) {
	var c Clause
	var tags string
	err := row.Scan(&c.ID, &c.Title, &c.Body, &c.Jurisdiction, &tags, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning clause: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &c.Tags); err != nil {
		return nil, fmt.Errorf("decoding tags: %w", err)
	}
	return &c, nil
}
