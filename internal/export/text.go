package export

import (
	"fmt"
	"strings"
)

// ErrEmptyContent is returned when a document has nothing to export.
var ErrEmptyContent = fmt.Errorf("document content is empty")

// SanitizeFilename replaces characters that are unsafe in download
// filenames with underscores. An empty or all-unsafe name falls back
// to "document.txt".
func SanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	var b strings.Builder
	for _, r := range name {
		switch {
		case r < 0x20, r == 0x7f:
			b.WriteRune('_')
		case strings.ContainsRune(`<>:"/\|?*`, r):
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	if strings.Trim(out, "_ .") == "" {
		return "document.txt"
	}
	if !strings.HasSuffix(strings.ToLower(out), ".txt") {
		out += ".txt"
	}
	return out
}

// PlainText prepares a document body for a .txt download. Line endings
// are normalized and the body always ends with a single newline.
func PlainText(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return "", ErrEmptyContent
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.TrimRight(content, "\n") + "\n", nil
}
