package faq

import (
	"strings"
	"unicode"
)

// departmentAliases maps known misspellings and legacy labels to their
// canonical form. Keys are compared after trimming and lowercasing.
var departmentAliases = map[string]string{
	"genreal":  DefaultDepartment,
	"generel":  DefaultDepartment,
	"accounts": "Account",
	"billings": "Billing",
}

// NormalizeDepartment cleans a raw department label: trims whitespace,
// collapses internal runs of spaces, title-cases each word and corrects known
// aliases. A label that is blank after trimming falls back to
// DefaultDepartment, so departments are never empty at read time.
func NormalizeDepartment(raw string) string {
	cleaned := strings.Join(strings.Fields(raw), " ")
	if cleaned == "" {
		return DefaultDepartment
	}
	if canonical, ok := departmentAliases[strings.ToLower(cleaned)]; ok {
		return canonical
	}
	return titleCase(cleaned)
}

func titleCase(s string) string {
	var builder strings.Builder
	builder.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			builder.WriteRune(r)
		case startOfWord:
			builder.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			builder.WriteRune(unicode.ToLower(r))
		}
	}
	return builder.String()
}

// canonicalQuery reduces a query to a cache-friendly form: lowercased with
// punctuation treated as spaces and runs of whitespace collapsed.
func canonicalQuery(q string) string {
	lowered := strings.ToLower(strings.TrimSpace(q))
	var builder strings.Builder
	builder.Grow(len(lowered))
	lastSpace := true
	for _, r := range lowered {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			builder.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(builder.String())
}
