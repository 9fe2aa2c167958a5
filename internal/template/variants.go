package template

import (
	"sort"
	"strings"
	"unicode"
)

// splitWords splits a camelCase or snake/kebab-case field name into its
// component words, lower-cased: "companyName" -> ["company", "name"].
func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}
	for _, r := range name {
		switch {
		case r == '_' || r == '-' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			flush()
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return words
}

// spaced joins the words of a field name with single spaces:
// "rentAmount" -> "rent amount".
func spaced(name string) string {
	return strings.Join(splitWords(name), " ")
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// toSnake converts a field name to snake_case.
func toSnake(name string) string {
	return strings.Join(splitWords(name), "_")
}

// toKebab converts a field name to kebab-case.
func toKebab(name string) string {
	return strings.Join(splitWords(name), "-")
}

// bracketVariants returns the surface-form variants of a field name used
// by the bracket pass, in matching order. Template authors write bracket
// markers in many casings, so recall matters more than precision here.
// Longer variants come first so a marker like [COMPANY NAME] is never
// half-consumed by a shorter variant of the same field.
func bracketVariants(f Field) []string {
	variants := []string{
		f.Name,
		strings.ToUpper(f.Name),
		capitalize(f.Name),
		strings.ToUpper(spaced(f.Name)),
		strings.ToLower(f.Name),
		toSnake(f.Name),
		toKebab(f.Name),
	}
	if f.Label != "" {
		variants = append(variants, f.Label, strings.ToUpper(f.Label))
	}

	seen := make(map[string]bool, len(variants))
	uniq := variants[:0]
	for _, v := range variants {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		uniq = append(uniq, v)
	}

	sort.SliceStable(uniq, func(i, j int) bool { return len(uniq[i]) > len(uniq[j]) })
	return uniq
}

// nameForms returns the name transforms attempted by the catch-all pass,
// longest first for the same partial-match reason as bracketVariants.
func nameForms(name string) []string {
	forms := []string{
		name,
		strings.ToUpper(name),
		strings.ToLower(name),
		capitalize(name),
		spaced(name),
		strings.ToUpper(spaced(name)),
	}

	seen := make(map[string]bool, len(forms))
	uniq := forms[:0]
	for _, v := range forms {
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		uniq = append(uniq, v)
	}

	sort.SliceStable(uniq, func(i, j int) bool { return len(uniq[i]) > len(uniq[j]) })
	return uniq
}
