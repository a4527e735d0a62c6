package utils

import (
	"regexp"
	"strings"
)

var (
	// RE2's \s is ASCII only. This class matches the same characters as JavaScript's \s.
	whitespaceRun = regexp.MustCompile(`[\s\v\p{Zs}\x{2028}\x{2029}\x{FEFF}]+`)
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9-]`)
)

// NormalizeString trims whitespace and normalizes string input
func NormalizeString(s string) string {
	return strings.TrimSpace(s)
}

// Slugify lowercases s, turns each whitespace run into a single hyphen and drops
// everything outside [a-z0-9-]. "Joe's Diner" becomes "joes-diner".
func Slugify(s string) string {
	slug := strings.ToLower(strings.TrimSpace(s))
	slug = whitespaceRun.ReplaceAllString(slug, "-")
	return nonSlugChars.ReplaceAllString(slug, "")
}

// IsUsableSlug reports whether slug has at least one letter or digit. "-" and "--" are not usable.
func IsUsableSlug(slug string) bool {
	return strings.Trim(slug, "-") != ""
}
