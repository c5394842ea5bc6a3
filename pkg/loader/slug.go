package loader

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	nonWord       = regexp.MustCompile(`[^\p{L}\p{N}_]+`)
	acronymBreak  = regexp.MustCompile(`(\p{Lu}+)(\p{Lu}\p{Ll})`)
	camelCaseStep = regexp.MustCompile(`([\p{Ll}\p{N}])(\p{Lu})`)
)

// MakeSlug derives a URL slug from a section name or question id:
// "The Title" and "TheTitle" both become "the-title".
func MakeSlug(name string) string {
	slug := strings.Trim(nonWord.ReplaceAllString(name, "_"), "_")
	slug = acronymBreak.ReplaceAllString(slug, "${1}_${2}")
	slug = camelCaseStep.ReplaceAllString(slug, "${1}_${2}")
	return strings.ReplaceAll(cases.Lower(language.Und).String(slug), "_", "-")
}
