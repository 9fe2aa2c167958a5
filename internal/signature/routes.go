package signature

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/document"
)

// RegisterRoutes mounts the signature request endpoints and the
// provider callback.
func RegisterRoutes(r chi.Router, store *Store, docs *document.Store, client *Client, auditStore *audit.Store) {
	r.Post("/api/documents/{id}/signature-requests", handleCreate(store, docs, client, auditStore))
	r.Get("/api/documents/{id}/signature-requests", handleList(store))
	r.Get("/api/signature-requests/{id}", handleGet(store, docs, client))
	r.Post("/api/signature-callbacks", handleCallback(store, docs, auditStore))
}

type createRequest struct {
	SignerName  string `json:"signerName"`
	SignerEmail string `json:"signerEmail"`
}

func handleCreate(store *Store, docs *document.Store, client *Client, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		documentID := chi.URLParam(r, "id")

		var req createRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
			return
		}
		if req.SignerName == "" || req.SignerEmail == "" {
			http.Error(w, `{"error":"signerName and signerEmail are required"}`, http.StatusBadRequest)
			return
		}

		doc, err := docs.GetByID(r.Context(), documentID)
		if err != nil {
			log.Printf("fetching document %s: %v", documentID, err)
			http.Error(w, `{"error":"failed to fetch document"}`, http.StatusInternalServerError)
			return
		}
		if doc == nil {
			http.Error(w, `{"error":"document not found"}`, http.StatusNotFound)
			return
		}

		if client == nil || !client.Enabled() {
			http.Error(w, `{"error":"no e-signature provider configured"}`, http.StatusServiceUnavailable)
			return
		}

		created, err := store.Create(r.Context(), Request{
			DocumentID:  documentID,
			SignerName:  req.SignerName,
			SignerEmail: req.SignerEmail,
		})
		if err != nil {
			log.Printf("creating signature request: %v", err)
			http.Error(w, `{"error":"failed to create signature request"}`, http.StatusInternalServerError)
			return
		}

		envelopeID, err := client.SendEnvelope(r.Context(), doc.Title, doc.Content, req.SignerName, req.SignerEmail)
		if err != nil {
			log.Printf("sending envelope for request %s: %v", created.ID, err)
			if uerr := store.UpdateStatus(r.Context(), created.ID, StatusError, err.Error()); uerr != nil {
				log.Printf("marking request %s failed: %v", created.ID, uerr)
			}
			http.Error(w, `{"error":"failed to send signature request"}`, http.StatusBadGateway)
			return
		}

		if err := store.SetEnvelope(r.Context(), created.ID, envelopeID); err != nil {
			log.Printf("recording envelope for request %s: %v", created.ID, err)
		}
		if err := store.UpdateStatus(r.Context(), created.ID, StatusSent, ""); err != nil {
			log.Printf("marking request %s sent: %v", created.ID, err)
		}
		if err := docs.UpdateStatus(r.Context(), doc.ID, document.StatusSentForSignature); err != nil {
			log.Printf("marking document %s sent for signature: %v", doc.ID, err)
		}
		if auditStore != nil {
			if err := auditStore.Log(r.Context(), audit.Entry{
				ActorID:   doc.UserID,
				ActorType: audit.ActorUser,
				Action:    audit.ActionSignatureSent,
				Scope:     audit.ScopeSignature,
				ScopeID:   created.ID,
				Summary:   "signature requested from " + req.SignerEmail,
			}); err != nil {
				log.Printf("recording signature audit entry: %v", err)
			}
		}

		updated, err := store.GetByID(r.Context(), created.ID)
		if err != nil || updated == nil {
			updated = created
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(updated)
	}
}

// handleGet returns a signature request. With ?refresh=true the
// provider is polled first and the stored status updated.
func handleGet(store *Store, docs *document.Store, client *Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		req, err := store.GetByID(r.Context(), id)
		if err != nil {
			log.Printf("fetching signature request %s: %v", id, err)
			http.Error(w, `{"error":"failed to fetch signature request"}`, http.StatusInternalServerError)
			return
		}
		if req == nil {
			http.Error(w, `{"error":"signature request not found"}`, http.StatusNotFound)
			return
		}

		if r.URL.Query().Get("refresh") == "true" && req.EnvelopeID != "" && client != nil && client.Enabled() {
			status, err := client.EnvelopeStatus(r.Context(), req.EnvelopeID)
			if err != nil {
				log.Printf("polling envelope %s: %v", req.EnvelopeID, err)
			} else if status != req.Status {
				if err := store.UpdateStatus(r.Context(), req.ID, status, ""); err != nil {
					log.Printf("updating request %s after poll: %v", req.ID, err)
				} else {
					req.Status = status
					if status == StatusSigned {
						if err := docs.UpdateStatus(r.Context(), req.DocumentID, document.StatusSigned); err != nil {
							log.Printf("marking document %s signed: %v", req.DocumentID, err)
						}
					}
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(req)
	}
}

func handleList(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requests, err := store.ListByDocument(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			log.Printf("listing signature requests: %v", err)
			http.Error(w, `{"error":"failed to list signature requests"}`, http.StatusInternalServerError)
			return
		}
		if requests == nil {
			requests = []Request{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(requests)
	}
}

type callbackPayload struct {
	EnvelopeID string `json:"envelopeId"`
	Status     string `json:"status"`
	Detail     string `json:"detail"`
}

// handleCallback processes status updates pushed by the provider.
func handleCallback(store *Store, docs *document.Store, auditStore *audit.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload callbackPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, `{"error":"invalid callback body"}`, http.StatusBadRequest)
			return
		}
		if payload.EnvelopeID == "" {
			http.Error(w, `{"error":"envelopeId is required"}`, http.StatusBadRequest)
			return
		}
		status := Status(payload.Status)
		if !ValidStatus(status) {
			http.Error(w, `{"error":"unknown status"}`, http.StatusBadRequest)
			return
		}

		req, err := store.GetByEnvelope(r.Context(), payload.EnvelopeID)
		if err != nil {
			log.Printf("looking up envelope %s: %v", payload.EnvelopeID, err)
			http.Error(w, `{"error":"failed to process callback"}`, http.StatusInternalServerError)
			return
		}
		if req == nil {
			http.Error(w, `{"error":"unknown envelope"}`, http.StatusNotFound)
			return
		}

		if err := store.UpdateStatus(r.Context(), req.ID, status, payload.Detail); err != nil {
			log.Printf("updating request %s from callback: %v", req.ID, err)
			http.Error(w, `{"error":"failed to process callback"}`, http.StatusInternalServerError)
			return
		}
		if status == StatusSigned {
			if err := docs.UpdateStatus(r.Context(), req.DocumentID, document.StatusSigned); err != nil {
				log.Printf("marking document %s signed: %v", req.DocumentID, err)
			}
		}
		if auditStore != nil {
			if err := auditStore.Log(r.Context(), audit.Entry{
				ActorType: audit.ActorSystem,
				ActorID:   "esign-provider",
				Action:    audit.ActionSignatureUpdated,
				Scope:     audit.ScopeSignature,
				ScopeID:   req.ID,
				Summary:   "status changed to " + string(status),
			}); err != nil {
				log.Printf("recording callback audit entry: %v", err)
			}
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
