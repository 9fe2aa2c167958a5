package research

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes mounts the clause library and search endpoints. index
// may be nil when no embedding provider is configured; search then
// responds 503.
func RegisterRoutes(r chi.Router, store *ClauseStore, index *Index) {
	r.Route("/api/research", func(r chi.Router) {
		r.Get("/clauses", handleListClauses(store))
		r.Post("/clauses", handleCreateClause(store))
		r.Get("/search", handleSearch(index))
	})
}

func handleListClauses(store *ClauseStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clauses, err := store.List(r.Context(), r.URL.Query().Get("jurisdiction"))
		if err != nil {
			log.Printf("listing clauses: %v", err)
			http.Error(w, `{"error":"failed to list clauses"}`, http.StatusInternalServerError)
			return
		}
		if clauses == nil {
			clauses = []Clause{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(clauses)
	}
}

func handleCreateClause(store *ClauseStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var clause Clause
		if err := json.NewDecoder(r.Body).Decode(&clause); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		created, err := store.Create(r.Context(), clause)
		if err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)
	}
}

func handleSearch(index *Index) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if index == nil {
			http.Error(w, `{"error":"clause search requires an embedding provider"}`, http.StatusServiceUnavailable)
			return
		}
		query := r.URL.Query().Get("q")
		if query == "" {
			http.Error(w, `{"error":"q is required"}`, http.StatusBadRequest)
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

		results, err := index.Search(r.Context(), query, r.URL.Query().Get("jurisdiction"), limit)
		if err != nil {
			log.Printf("searching clauses: %v", err)
			http.Error(w, `{"error":"clause search failed"}`, http.StatusInternalServerError)
			return
		}
		if results == nil {
			results = []SearchResult{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(results)
	}
}
