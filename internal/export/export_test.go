package export

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lexdraft/lexdraft/internal/audit"
	"github.com/lexdraft/lexdraft/internal/db"
	"github.com/lexdraft/lexdraft/internal/document"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"my:doc?.txt", "my_doc_.txt"},
		{"lease.txt", "lease.txt"},
		{"Apt 4B Lease", "Apt 4B Lease.txt"},
		{`a<b>c:d"e/f\g|h?i*j`, "a_b_c_d_e_f_g_h_i_j.txt"},
		{"", "document.txt"},
		{"   ", "document.txt"},
		{`???`, "document.txt"},
		{"tab\there", "tab_here.txt"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	got, err := PlainText("Hello\r\nWorld\n\n")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hello\nWorld\n" {
		t.Errorf("got %q", got)
	}
}

func TestPlainTextRejectsEmptyContent(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t\n"} {
		if _, err := PlainText(content); err != ErrEmptyContent {
			t.Errorf("PlainText(%q): expected ErrEmptyContent, got %v", content, err)
		}
	}
}

func TestPrintHTML(t *testing.T) {
	page, err := PrintHTML("Section 1. Terms.", Options{Title: "My Lease", PageSize: PageA4})
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"My Lease", "Section 1. Terms.", "width: 794px", "window.print()"} {
		if !strings.Contains(page, want) {
			t.Errorf("page missing %q", want)
		}
	}
}

func TestPrintHTMLEscapesContent(t *testing.T) {
	page, err := PrintHTML(`<script>alert("x")</script>`, Options{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(page, "<script>alert") {
		t.Error("content not escaped")
	}
}

func TestPrintHTMLRejectsEmptyContent(t *testing.T) {
	if _, err := PrintHTML("   \n ", Options{}); err != ErrEmptyContent {
		t.Errorf("expected ErrEmptyContent, got %v", err)
	}
}

func TestPreviewHTMLHasNoPrintTrigger(t *testing.T) {
	page, err := PreviewHTML("body", Options{Title: "t", PageSize: PageLetter})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(page, "window.print()") {
		t.Error("preview must not trigger printing")
	}
	if !strings.Contains(page, "width: 816px") {
		t.Error("letter geometry missing")
	}
}

func TestPrintHTMLMarkdown(t *testing.T) {
	page, err := PrintHTML("# Heading\n\nSome *emphasis*.", Options{Title: "t", Markdown: true})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(page, "<h1") || !strings.Contains(page, "<em>") {
		t.Errorf("markdown not rendered:\n%s", page)
	}
}

func TestExportRoute(t *testing.T) {
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	defer database.Close()

	docs := document.NewStore(database)
	auditStore := audit.NewStore(database)

	ctx := context.Background()
	doc, err := docs.Create(ctx, document.Document{
		UserID:  "alice",
		Title:   "my:doc?",
		Content: "Hello",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, docs, auditStore, PageLetter)
	srv := httptest.NewServer(r)
	defer srv.Close()

	// Default format is a txt download with a sanitized filename.
	resp, err := http.Get(srv.URL + "/api/documents/" + doc.ID + "/export")
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("txt export status: %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Content-Disposition"); got != `attachment; filename="my_doc_.txt"` {
		t.Errorf("content disposition: %q", got)
	}
	if string(body) != "Hello\n" {
		t.Errorf("body: %q", body)
	}

	// Print format returns HTML.
	resp, err = http.Get(srv.URL + "/api/documents/" + doc.ID + "/export?format=print")
	if err != nil {
		t.Fatal(err)
	}
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "text/html") {
		t.Errorf("print content type: %q", resp.Header.Get("Content-Type"))
	}
	if !strings.Contains(string(body), "Hello") {
		t.Error("print page missing content")
	}

	// Unknown format rejected.
	resp, err = http.Get(srv.URL + "/api/documents/" + doc.ID + "/export?format=pdf")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("unknown format status: %d", resp.StatusCode)
	}

	// Missing document is a 404.
	resp, err = http.Get(srv.URL + "/api/documents/nope/export")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing document status: %d", resp.StatusCode)
	}

	// Exports are audited.
	entries, err := auditStore.Query(ctx, audit.QueryFilter{Action: audit.ActionDocumentExported})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 export audit entries, got %d", len(entries))
	}
}
