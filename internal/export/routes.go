package export

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/document"
)

// RegisterRoutes mounts the document export endpoint.
func RegisterRoutes(r chi.Router, docs *document.Store, auditStore *audit.Store, pageSize PageSize) {
	r.Get("/api/documents/{id}/export", handleExport(docs, auditStore, pageSize))
}

func handleExport(docs *document.Store, auditStore *audit.Store, pageSize PageSize) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		doc, err := docs.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("fetching document %s: %v", id, err)
			http.Error(w, `{"error":"failed to fetch document"}`, http.StatusInternalServerError)
			return
		}
		if doc == nil {
			http.Error(w, `{"error":"document not found"}`, http.StatusNotFound)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" {
			format = "txt"
		}

		switch format {
		case "txt":
			body, err := PlainText(doc.Content)
			if err != nil {
				writeExportError(w, err)
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("Content-Disposition", `attachment; filename="`+SanitizeFilename(doc.Title)+`"`)
			w.Write([]byte(body))
		case "print":
			page, err := PrintHTML(doc.Content, Options{Title: doc.Title, PageSize: pageSize})
			if err != nil {
				writeExportError(w, err)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(page))
		case "preview":
			page, err := PreviewHTML(doc.Content, Options{Title: doc.Title, PageSize: pageSize})
			if err != nil {
				writeExportError(w, err)
				return
			}
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte(page))
		default:
			http.Error(w, `{"error":"unknown export format"}`, http.StatusBadRequest)
			return
		}

		if auditStore != nil {
			if err := auditStore.Log(r.Context(), audit.Entry{
				ActorID:   doc.UserID,
				ActorType: audit.ActorUser,
				Action:    audit.ActionDocumentExported,
				Scope:     audit.ScopeDocument,
				ScopeID:   doc.ID,
				Summary:   "exported as " + format,
			}); err != nil {
				log.Printf("recording export audit entry: %v", err)
			}
		}
	}
}

func writeExportError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrEmptyContent) {
		http.Error(w, `{"error":"document content is empty"}`, http.StatusUnprocessableEntity)
		return
	}
	log.Printf("exporting document: %v", err)
	http.Error(w, `{"error":"failed to export document"}`, http.StatusInternalServerError)
}
