package engine

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// RenderTemplate substitutes {{key}} placeholders from vars. Keys are trimmed
// of surrounding whitespace; unknown keys render as the empty string rather
// than surviving literally. No escaping and no recursive substitution.
func RenderTemplate(tmpl string, vars map[string]string) string {
	return placeholderPattern.ReplaceAllStringFunc(tmpl, func(match string) string {
		key := strings.TrimSpace(match[2 : len(match)-2])
		return vars[key]
	})
}
