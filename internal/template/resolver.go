package template

import (
	"regexp"
	"strings"
)

// Resolve substitutes the supplied field values into the template body and
// returns the finished document text. It never fails for matching reasons:
// markers without a usable value survive verbatim so an incomplete form is
// visible in the output instead of silently producing blank sections, and
// value keys that match no declared field are no-ops.
//
// Four passes run in order, each only touching markers the earlier passes
// missed. Fields are processed in declared order within every pass, so
// when two fields' surface forms collide the first-declared field wins.
func Resolve(t Template, values map[string]string) string {
	return ResolveContent(t.Content, t.Fields, values, t.ID)
}

// ResolveContent is Resolve for callers that hold the raw pieces rather
// than an assembled Template (the enhanced-generation endpoint receives
// the body and fields separately).
func ResolveContent(content string, fields []Field, values map[string]string, templateID string) string {
	doc := content

	// Pass 1: {{fieldName}} with optional surrounding quotes, case-insensitive.
	for _, f := range fields {
		v, ok := usableValue(values, f.Name)
		if !ok {
			continue
		}
		doc = replaceDoubleBrace(doc, f.Name, v)
	}

	// Pass 2: [VARIANT] for every casing/spacing variant of the name or label.
	for _, f := range fields {
		v, ok := usableValue(values, f.Name)
		if !ok {
			continue
		}
		for _, variant := range bracketVariants(f) {
			doc = strings.ReplaceAll(doc, "["+variant+"]", v)
		}
	}

	// Pass 3: per-template override markers for legacy templates.
	if table := Overrides(templateID); table != nil {
		for _, f := range fields {
			marker, ok := table[f.Name]
			if !ok {
				continue
			}
			v, ok := usableValue(values, f.Name)
			if !ok {
				continue
			}
			doc = strings.ReplaceAll(doc, "["+marker+"]", v)
		}
	}

	// Pass 4: catch-all sweep over every name form and delimiter style.
	// Deliberately over-eager; see bracketVariants for the rationale.
	for _, f := range fields {
		v, ok := usableValue(values, f.Name)
		if !ok {
			continue
		}
		for _, form := range nameForms(f.Name) {
			doc = strings.ReplaceAll(doc, `"{{`+form+`}}"`, `"`+v+`"`)
			doc = strings.ReplaceAll(doc, "{{"+form+"}}", v)
			doc = strings.ReplaceAll(doc, "{"+form+"}", v)
			doc = strings.ReplaceAll(doc, "["+form+"]", v)
			doc = strings.ReplaceAll(doc, "<"+form+">", v)
		}
	}

	return doc
}

// usableValue returns the value for the named field and whether it should
// be substituted. Empty and whitespace-only values preserve the marker.
func usableValue(values map[string]string, name string) (string, bool) {
	v, ok := values[name]
	if !ok || strings.TrimSpace(v) == "" {
		return "", false
	}
	return v, true
}

// replaceDoubleBrace replaces {{name}} case-insensitively, in quoted form
// first so the surrounding quote character is kept around the value.
func replaceDoubleBrace(doc, name, value string) string {
	quoted := regexp.MustCompile(`(?i)"\{\{` + regexp.QuoteMeta(name) + `\}\}"`)
	doc = quoted.ReplaceAllLiteralString(doc, `"`+value+`"`)

	single := regexp.MustCompile(`(?i)'\{\{` + regexp.QuoteMeta(name) + `\}\}'`)
	doc = single.ReplaceAllLiteralString(doc, `'`+value+`'`)

	bare := regexp.MustCompile(`(?i)\{\{` + regexp.QuoteMeta(name) + `\}\}`)
	return bare.ReplaceAllLiteralString(doc, value)
}

// UnresolvedMarkers reports bracket and brace markers still present in a
// resolved document, for surfacing incomplete forms to the caller.
var markerPattern = regexp.MustCompile(`\{\{[^{}]+\}\}|\[[A-Z][A-Z0-9 _-]*\]`)

// UnresolvedMarkers returns the distinct placeholder markers remaining in doc.
func UnresolvedMarkers(doc string) []string {
	matches := markerPattern.FindAllString(doc, -1)
	seen := make(map[string]bool, len(matches))
	var out []string
	for _, m := range matches {
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}
