package research

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	chromem "github.com/philippgille/chromem-go"
)

const collectionName = "clauses"

// SearchResult is a clause with its similarity to the query.
type SearchResult struct {
	Clause     Clause  `json:"clause"`
	Similarity float32 `json:"similarity"`
}

// Index is a vector index over the clause library, backed by chromem-go.
type Index struct {
	db         *chromem.DB
	collection *chromem.Collection
	store      *ClauseStore
	embedFunc  chromem.EmbeddingFunc
}

// NewIndex builds an in-memory index over the given clause store.
func NewIndex(store *ClauseStore, embedder Embedder) (*Index, error) {
	vdb := chromem.NewDB()
	ef := toChromemFunc(embedder)

	col, err := vdb.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("creating clause collection: %w", err)
	}

	return &Index{db: vdb, collection: col, store: store, embedFunc: ef}, nil
}

// Reindex embeds every clause in the store. progress, if non-nil, is
// called once per clause.
func (ix *Index) Reindex(ctx context.Context, progress func()) (int, error) {
	clauses, err := ix.store.List(ctx, "")
	if err != nil {
		return 0, err
	}

	indexed := 0
	for _, c := range clauses {
		doc := chromem.Document{
			ID:      c.ID,
			Content: c.Title + "\n\n" + c.Body,
			Metadata: map[string]string{
				"jurisdiction": c.Jurisdiction,
				"tags":         strings.Join(c.Tags, ","),
			},
		}
		if err := ix.collection.AddDocuments(ctx, []chromem.Document{doc}, 1); err != nil {
			return indexed, fmt.Errorf("indexing clause %s: %w", c.ID, err)
		}
		indexed++
		if progress != nil {
			progress()
		}
	}
	return indexed, nil
}

// Search returns the clauses most similar to the query, optionally
// restricted to a jurisdiction.
func (ix *Index) Search(ctx context.Context, query, jurisdiction string, limit int) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is empty")
	}
	if limit <= 0 {
		limit = 5
	}

	// chromem-go requires nResults <= collection size.
	count := ix.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	var where map[string]string
	if jurisdiction != "" {
		where = map[string]string{"jurisdiction": jurisdiction}
	}

	results, err := ix.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("querying clause index: %w", err)
	}

	out := make([]SearchResult, 0, len(results))
	for _, r := range results {
		clause, err := ix.store.GetByID(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		if clause == nil {
			continue
		}
		out = append(out, SearchResult{Clause: *clause, Similarity: r.Similarity})
	}
	return out, nil
}

// Count reports how many clauses are currently indexed.
func (ix *Index) Count() int {
	return ix.collection.Count()
}

// Persist writes the index to disk under dir.
func (ix *Index) Persist(dir string) error {
	return ix.db.ExportToFile(filepath.Join(dir, "clauses.gob.gz"), true, "")
}

// Load restores a previously persisted index from dir.
func (ix *Index) Load(dir string) error {
	if err := ix.db.ImportFromFile(filepath.Join(dir, "clauses.gob.gz"), ""); err != nil {
		return fmt.Errorf("importing clause index: %w", err)
	}
	col := ix.db.GetCollection(collectionName, ix.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q not found after import", collectionName)
	}
	ix.collection = col
	return nil
}
