package templates

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/lexdraft/lexdraft/internal/template"
)

// templateFrontMatter is the YAML header of an importable template file.
type templateFrontMatter struct {
	ID           string           `yaml:"id"`
	Title        string           `yaml:"title"`
	TemplateType string           `yaml:"template_type"`
	Jurisdiction string           `yaml:"jurisdiction"`
	Fields       []template.Field `yaml:"fields"`
}

// ImportResult summarizes a directory import.
type ImportResult struct {
	Imported int
	Skipped  []string // relative paths skipped, with the reason appended
}

// ImportDir walks dir for template files matching the include/exclude
// globs and inserts each parsed template. Files that fail to parse are
// skipped and reported, not fatal; authors fix them and re-run.
func (s *Store) ImportDir(ctx context.Context, dir string, include, exclude []string) (*ImportResult, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving import dir: %w", err)
	}

	result := &ImportResult{}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		if !matchesAny(rel, include) || matchesAny(rel, exclude) {
			return nil
		}

		t, err := parseTemplateFile(path)
		if err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%s: %v", rel, err))
			return nil
		}

		if _, err := s.Create(ctx, *t); err != nil {
			result.Skipped = append(result.Skipped, fmt.Sprintf("%s: %v", rel, err))
			return nil
		}
		result.Imported++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", dir, err)
	}

	return result, nil
}

// parseTemplateFile reads a template file consisting of a YAML front
// matter block delimited by "---" lines, followed by the template body.
func parseTemplateFile(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	if !strings.HasPrefix(content, "---\n") {
		return nil, fmt.Errorf("missing front matter")
	}
	rest := content[len("---\n"):]
	end := strings.Index(rest, "\n---\n")
	if end < 0 {
		return nil, fmt.Errorf("unterminated front matter")
	}

	var fm templateFrontMatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return nil, fmt.Errorf("parsing front matter: %w", err)
	}

	body := strings.TrimLeft(rest[end+len("\n---\n"):], "\n")
	if fm.Title == "" {
		return nil, fmt.Errorf("front matter missing title")
	}

	t := &template.Template{
		ID:           fm.ID,
		Title:        fm.Title,
		TemplateType: fm.TemplateType,
		Jurisdiction: fm.Jurisdiction,
		Content:      body,
		Fields:       fm.Fields,
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// matchesAny checks if relPath matches any of the given glob patterns.
// It uses doublestar for ** support and also matches the bare filename,
// so patterns like "*.md" work at any depth.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.PathMatch(pattern, filepath.Base(normalized)); err == nil && matched {
			return true
		}
	}
	return false
}
