package export

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// PageSize selects the geometry of the printable page. Dimensions are
// pixels at 96dpi.
type PageSize string

const (
	PageLetter PageSize = "letter"
	PageA4     PageSize = "a4"
	PageLegal  PageSize = "legal"
)

type pageGeometry struct {
	Width  int
	Height int
}

var pageGeometries = map[PageSize]pageGeometry{
	PageLetter: {Width: 816, Height: 1056},
	PageA4:     {Width: 794, Height: 1123},
	PageLegal:  {Width: 816, Height: 1344},
}

// Options controls print and preview rendering.
type Options struct {
	Title    string
	PageSize PageSize
	// Markdown renders the body through goldmark instead of a
	// preformatted block.
	Markdown bool
	// Preview renders for inline display without the print trigger.
	Preview bool
}

var md = goldmark.New(goldmark.WithExtensions(extension.GFM))

var pageTmpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { margin: 0; }
  body { margin: 0; background: #e5e5e5; font-family: "Times New Roman", Georgia, serif; }
  .page {
    width: {{.Width}}px;
    min-height: {{.Height}}px;
    margin: 16px auto;
    padding: 72px 64px;
    box-sizing: border-box;
    background: #fff;
    box-shadow: 0 1px 4px rgba(0,0,0,0.25);
  }
  .page header { margin-bottom: 32px; border-bottom: 1px solid #999; padding-bottom: 8px; }
  .page header h1 { font-size: 20px; margin: 0 0 4px 0; }
  .page header .date { font-size: 12px; color: #555; }
  .body pre { font-family: "Courier New", monospace; font-size: 13px; white-space: pre-wrap; word-wrap: break-word; }
  .body { font-size: 14px; line-height: 1.5; }
  @media print {
    body { background: #fff; }
    .page { margin: 0; box-shadow: none; width: auto; min-height: 0; }
  }
</style>
</head>
<body{{if .Print}} onload="window.print()"{{end}}>
<div class="page">
<header>
<h1>{{.Title}}</h1>
<div class="date">{{.Date}}</div>
</header>
<div class="body">{{if .Markdown}}{{.HTML}}{{else}}<pre>{{.Text}}</pre>{{end}}</div>
</div>
</body>
</html>
`))

type pageData struct {
	Title    string
	Date     string
	Width    int
	Height   int
	Print    bool
	Markdown bool
	Text     string
	HTML     template.HTML
}

// PrintHTML renders a document as a self-contained printable page.
// Empty content is rejected before any rendering work.
func PrintHTML(content string, opts Options) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}

	geom, ok := pageGeometries[opts.PageSize]
	if !ok {
		geom = pageGeometries[PageLetter]
	}
	title := opts.Title
	if title == "" {
		title = "Document"
	}

	data := pageData{
		Title:    title,
		Date:     time.Now().Format("January 2, 2006"),
		Width:    geom.Width,
		Height:   geom.Height,
		Print:    !opts.Preview,
		Markdown: opts.Markdown,
		Text:     content,
	}
	if opts.Markdown {
		var buf bytes.Buffer
		if err := md.Convert([]byte(content), &buf); err != nil {
			return "", fmt.Errorf("rendering markdown: %w", err)
		}
		data.HTML = template.HTML(buf.String())
	}

	var out bytes.Buffer
	if err := pageTmpl.Execute(&out, data); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return out.String(), nil
}

// PreviewHTML renders the same page as PrintHTML without the print
// trigger, for inline display.
func PreviewHTML(content string, opts Options) (string, error) {
	opts.Preview = true
	return PrintHTML(content, opts)
}
