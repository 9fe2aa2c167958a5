package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lexdraft/lexdraft/internal/db"
)

// Store provides persistence for audit entries.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Log inserts a new audit entry. If entry.ID is empty a UUID is generated;
// a zero timestamp is set to now.
func (s *Store) Log(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	if entry.ActorType == "" {
		entry.ActorType = ActorSystem
	}
	if entry.ActorID == "" {
		entry.ActorID = "system"
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, timestamp, actor_type, actor_id, action, scope, scope_id, summary, detail)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.Timestamp, string(entry.ActorType), entry.ActorID,
		string(entry.Action), string(entry.Scope), entry.ScopeID, entry.Summary, entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting audit entry: %w", err)
	}
	return nil
}

// QueryFilter narrows Query results.
type QueryFilter struct {
	ActorID string
	Action  Action
	Scope   Scope
	ScopeID string
	Since   *time.Time
	Limit   int
}

// Query returns audit entries matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Entry, error) {
	query := `SELECT id, timestamp, actor_type, actor_id, action, scope, scope_id, summary, detail
		 FROM audit_entries WHERE 1=1`
	args := []interface{}{}

	if filter.ActorID != "" {
		query += " AND actor_id = ?"
		args = append(args, filter.ActorID)
	}
	if filter.Action != "" {
		query += " AND action = ?"
		args = append(args, string(filter.Action))
	}
	if filter.Scope != "" {
		query += " AND scope = ?"
		args = append(args, string(filter.Scope))
	}
	if filter.ScopeID != "" {
		query += " AND scope_id = ?"
		args = append(args, filter.ScopeID)
	}
	if filter.Since != nil {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}

	query += " ORDER BY timestamp DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var actorType, action, scope string
		if err := rows.Scan(&e.ID, &e.Timestamp, &actorType, &e.ActorID, &action, &scope, &e.ScopeID, &e.Summary, &e.Detail); err != nil {
			return nil, fmt.Errorf("scanning audit entry: %w", err)
		}
		e.ActorType = ActorType(actorType)
		e.Action = Action(action)
		e.Scope = Scope(scope)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
