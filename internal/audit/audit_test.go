package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lexdraft/lexdraft/internal/db"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestLogAndQuery(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	entries := []Entry{
		{ActorType: ActorUser, ActorID: "alice", Action: ActionDocumentGenerated, Scope: ScopeDocument, ScopeID: "doc-1", Summary: "generated from lease-residential"},
		{ActorType: ActorUser, ActorID: "alice", Action: ActionDocumentExported, Scope: ScopeDocument, ScopeID: "doc-1", Summary: "exported as txt"},
		{ActorType: ActorUser, ActorID: "bob", Action: ActionDocumentGenerated, Scope: ScopeDocument, ScopeID: "doc-2", Summary: "generated from nda-mutual"},
	}
	for _, e := range entries {
		if err := store.Log(ctx, e); err != nil {
			t.Fatalf("Log: %v", err)
		}
	}

	got, err := store.Query(ctx, QueryFilter{ActorID: "alice"})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected 2 entries for alice, got %d", len(got))
	}

	got, err = store.Query(ctx, QueryFilter{Scope: ScopeDocument, ScopeID: "doc-2"})
	if err != nil {
		t.Fatalf("Query by scope: %v", err)
	}
	if len(got) != 1 || got[0].ActorID != "bob" {
		t.Errorf("unexpected scope query result: %+v", got)
	}

	got, err = store.Query(ctx, QueryFilter{Action: ActionDocumentExported})
	if err != nil {
		t.Fatalf("Query by action: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("expected 1 export entry, got %d", len(got))
	}
}

func TestLogDefaults(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	if err := store.Log(ctx, Entry{Action: ActionTemplateCreated, Scope: ScopeTemplate, ScopeID: "t-1"}); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := store.Query(ctx, QueryFilter{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].ActorType != ActorSystem || got[0].ActorID != "system" {
		t.Errorf("defaults not applied: %+v", got[0])
	}
	if got[0].ID == "" || got[0].Timestamp.IsZero() {
		t.Error("id/timestamp not defaulted")
	}
}

func TestQueryRoute(t *testing.T) {
	store := setupTestStore(t)
	if err := store.Log(context.Background(), Entry{ActorID: "alice", Action: ActionDocumentGenerated, Scope: ScopeDocument, ScopeID: "d"}); err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/audit?actor=alice")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var entries []Entry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}
