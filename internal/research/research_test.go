package research

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lexdraft/lexdraft/internal/db"
)

// mockEmbedder returns deterministic hash-based vectors so tests need
// no network. Texts sharing characters produce similar vectors.
type mockEmbedder struct {
	dims int
}

func (m *mockEmbedder) Name() string { return "mock" }

func (m *mockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	results := make([][]float32, len(texts))
	for i, text := range texts {
		vec := make([]float32, m.dims)
		for j, ch := range text {
			vec[(int(ch)+j)%m.dims] += 1.0
		}
		var norm float64
		for _, v := range vec {
			norm += float64(v * v)
		}
		norm = math.Sqrt(norm)
		if norm > 0 {
			for j := range vec {
				vec[j] = float32(float64(vec[j]) / norm)
			}
		}
		results[i] = vec
	}
	return results, nil
}

func setupStore(t *testing.T) *ClauseStore {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewClauseStore(database)
}

func seedClauses(t *testing.T, store *ClauseStore) {
	t.Helper()
	ctx := context.Background()
	clauses := []Clause{
		{Title: "Arbitration", Body: "Any dispute arising under this agreement shall be settled by binding arbitration.", Jurisdiction: "US", Tags: []string{"dispute"}},
		{Title: "Confidentiality", Body: "Each party shall keep the other's confidential information secret.", Tags: []string{"nda"}},
		{Title: "Governing law", Body: "This agreement is governed by the laws of the State of Delaware.", Jurisdiction: "US-DE"},
	}
	for _, c := range clauses {
		if _, err := store.Create(ctx, c); err != nil {
			t.Fatalf("seeding clause %q: %v", c.Title, err)
		}
	}
}

func TestClauseStoreCRUD(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, Clause{Title: "Severability", Body: "If any provision is held invalid...", Tags: []string{"boilerplate"}})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	fetched, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if fetched == nil || fetched.Title != "Severability" {
		t.Fatalf("fetched: %+v", fetched)
	}
	if len(fetched.Tags) != 1 || fetched.Tags[0] != "boilerplate" {
		t.Errorf("tags not round-tripped: %v", fetched.Tags)
	}

	if _, err := store.Create(ctx, Clause{Title: "no body"}); err == nil {
		t.Error("expected error for missing body")
	}

	missing, err := store.GetByID(ctx, "nope")
	if err != nil {
		t.Fatal(err)
	}
	if missing != nil {
		t.Error("expected nil for missing clause")
	}

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	gone, _ := store.GetByID(ctx, created.ID)
	if gone != nil {
		t.Error("clause not deleted")
	}
}

func TestClauseListJurisdictionFilter(t *testing.T) {
	store := setupStore(t)
	seedClauses(t, store)

	all, err := store.List(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 clauses, got %d", len(all))
	}

	// Jurisdiction filter keeps jurisdiction-free clauses.
	us, err := store.List(context.Background(), "US")
	if err != nil {
		t.Fatal(err)
	}
	if len(us) != 2 {
		t.Errorf("expected 2 clauses for US, got %d", len(us))
	}
}

func TestLoadFile(t *testing.T) {
	store := setupStore(t)

	path := filepath.Join(t.TempDir(), "clauses.yml")
	content := `
- id: sev-1
  title: Severability
  body: If any provision is held invalid, the remainder stays in effect.
  tags: [boilerplate]
- title: Notices
  body: All notices must be in writing.
  jurisdiction: US
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	n, err := store.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 inserted, got %d", n)
	}

	// Loading again skips clauses with known ids.
	n, err = store.LoadFile(context.Background(), path)
	if err != nil {
		t.Fatalf("second LoadFile: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 inserted on reload (no id on Notices), got %d", n)
	}
}

func TestIndexSearch(t *testing.T) {
	store := setupStore(t)
	seedClauses(t, store)

	index, err := NewIndex(store, &mockEmbedder{dims: 64})
	if err != nil {
		t.Fatalf("NewIndex: %v", err)
	}

	calls := 0
	n, err := index.Reindex(context.Background(), func() { calls++ })
	if err != nil {
		t.Fatalf("Reindex: %v", err)
	}
	if n != 3 || calls != 3 {
		t.Errorf("indexed %d clauses with %d progress calls", n, calls)
	}

	results, err := index.Search(context.Background(), "dispute settled by binding arbitration", "", 2)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Clause.Title != "Arbitration" {
		t.Errorf("top result: %q", results[0].Clause.Title)
	}

	// Jurisdiction filter narrows the candidates.
	results, err = index.Search(context.Background(), "governing law of Delaware", "US-DE", 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Clause.Title != "Governing law" {
		t.Errorf("filtered results: %+v", results)
	}

	if _, err := index.Search(context.Background(), "  ", "", 5); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestIndexSearchEmptyCollection(t *testing.T) {
	store := setupStore(t)
	index, err := NewIndex(store, &mockEmbedder{dims: 64})
	if err != nil {
		t.Fatal(err)
	}
	results, err := index.Search(context.Background(), "anything", "", 5)
	if err != nil {
		t.Fatal(err)
	}
	if results != nil {
		t.Errorf("expected no results, got %v", results)
	}
}

func TestIndexPersistAndLoad(t *testing.T) {
	store := setupStore(t)
	seedClauses(t, store)

	embedder := &mockEmbedder{dims: 64}
	index, err := NewIndex(store, embedder)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := index.Reindex(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	if err := index.Persist(dir); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	restored, err := NewIndex(store, embedder)
	if err != nil {
		t.Fatal(err)
	}
	if err := restored.Load(dir); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if restored.Count() != 3 {
		t.Errorf("restored count: %d", restored.Count())
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	seedClauses(t, store)

	index, err := NewIndex(store, &mockEmbedder{dims: 64})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := index.Reindex(context.Background(), nil); err != nil {
		t.Fatal(err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store, index)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/research/clauses")
	if err != nil {
		t.Fatal(err)
	}
	var clauses []Clause
	json.NewDecoder(resp.Body).Decode(&clauses)
	resp.Body.Close()
	if len(clauses) != 3 {
		t.Errorf("expected 3 clauses, got %d", len(clauses))
	}

	resp, err = http.Get(srv.URL + "/api/research/search?q=arbitration+dispute&limit=1")
	if err != nil {
		t.Fatal(err)
	}
	var results []SearchResult
	json.NewDecoder(resp.Body).Decode(&results)
	resp.Body.Close()
	if len(results) != 1 || results[0].Clause.Title != "Arbitration" {
		t.Errorf("search results: %+v", results)
	}

	resp, err = http.Get(srv.URL + "/api/research/search")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("missing q: status %d", resp.StatusCode)
	}

	body := `{"title":"Force majeure","body":"Neither party is liable for delay caused by events beyond its control."}`
	resp, err = http.Post(srv.URL+"/api/research/clauses", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Errorf("create clause: status %d", resp.StatusCode)
	}
}

func TestSearchWithoutIndex(t *testing.T) {
	store := setupStore(t)

	r := chi.NewRouter()
	RegisterRoutes(r, store, nil)
	srv := httptest.NewServer(r)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/research/search?q=anything")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status: %d", resp.StatusCode)
	}
}
