package section

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w]`)
	underscoreRe = regexp.MustCompile(`__+`)
)

const (
	slugMaxLen   = 50
	fallbackSlug = "section"
	slugExt      = ".txt"
)

// Slug derives a filesystem-safe file name from a section title: spaces and
// periods become underscores, remaining non-word characters are stripped,
// the result is lowercased, underscore runs collapse, and the name is capped
// at 50 characters. A title that sanitizes to nothing falls back to
// "section".
func Slug(title string) string {
	s := strings.TrimSpace(title)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ".", "_")
	s = nonWordRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = underscoreRe.ReplaceAllString(s, "_")
	if len(s) > slugMaxLen {
		s = s[:slugMaxLen]
	}
	if s == "" {
		s = fallbackSlug
	}
	return s + slugExt
}
