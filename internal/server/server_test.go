package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/db"
	"github.com/lexdraft/lexdraft/internal/document"
	"github.com/lexdraft/lexdraft/internal/export"
	"github.com/lexdraft/lexdraft/internal/research"
	"github.com/lexdraft/lexdraft/internal/signature"
	"github.com/lexdraft/lexdraft/internal/templates"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	templateStore := templates.NewStore(database)
	if _, err := templateStore.Seed(context.Background()); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	documentStore := document.NewStore(database)
	auditStore := audit.NewStore(database)
	gen := document.NewGenerator(templateStore, documentStore, document.NewEnhancer(nil, ""), auditStore, "US")

	srv := New(Config{Port: 0, PageSize: export.PageLetter}, Deps{
		DB:         database,
		Templates:  templateStore,
		Documents:  documentStore,
		Generator:  gen,
		Audit:      auditStore,
		Signatures: signature.NewStore(database),
		Clauses:    research.NewClauseStore(database),
	})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != `{"status":"ok"}` {
		t.Errorf("body: %s", body)
	}
}

// TestGenerateAndExportFlow walks a document from template to download
// across feature routes.
func TestGenerateAndExportFlow(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/document-templates")
	if err != nil {
		t.Fatal(err)
	}
	var tmpls []json.RawMessage
	json.NewDecoder(resp.Body).Decode(&tmpls)
	resp.Body.Close()
	if len(tmpls) != 3 {
		t.Fatalf("expected 3 builtin templates, got %d", len(tmpls))
	}

	body := `{"userId":"alice","templateId":"lease-residential","documentTitle":"Apt Lease","documentData":{
		"landlordName":"Howard Prop LLC","tenantName":"Jane Doe","propertyAddress":"99 Main St",
		"leaseTerm":"12 months","rentAmount":"1200","dueDay":"1st","securityDeposit":"2400"}}`
	resp, err = http.Post(ts.URL+"/api/documents", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status: %d", resp.StatusCode)
	}
	var result document.GenerateResult
	json.NewDecoder(resp.Body).Decode(&result)
	resp.Body.Close()
	if result.Document == nil {
		t.Fatal("expected saved document")
	}

	resp, err = http.Get(ts.URL + "/api/documents/" + result.Document.ID + "/export?format=txt")
	if err != nil {
		t.Fatal(err)
	}
	exported, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("export status: %d", resp.StatusCode)
	}
	if !strings.Contains(string(exported), "1200") {
		t.Error("export missing resolved rent")
	}

	// Signature routes respond 503 with no provider configured.
	resp, err = http.Post(ts.URL+"/api/documents/"+result.Document.ID+"/signature-requests",
		"application/json", strings.NewReader(`{"signerName":"Jane","signerEmail":"jane@example.com"}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("signature without provider: status %d", resp.StatusCode)
	}

	// Clause search responds 503 with no embedding provider.
	resp, err = http.Get(ts.URL + "/api/research/search?q=arbitration")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("search without index: status %d", resp.StatusCode)
	}
}
