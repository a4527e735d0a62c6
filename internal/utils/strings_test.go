package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Joe's":              "joes",
		"Joe's Diner":        "joes-diner",
		"  Café   Central  ": "caf-central",
		"Pizza & Pasta":      "pizza--pasta",
		"ALL CAPS 24/7":      "all-caps-247",
		"already-a-slug":     "already-a-slug",
		"!!!":                "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestSlugifyOutputAlphabet(t *testing.T) {
	allowed := regexp.MustCompile(`^[a-z0-9-]*$`)
	inputs := []string{"Ünïcödé Bistro", "tab\tand\nnewline", "$$$ Money $$$", "Noodle 🍜 Bar", "x"}
	for _, in := range inputs {
		slug := Slugify(in)
		assert.Regexp(t, allowed, slug)
		assert.Equal(t, slug, Slugify(slug), "slugify should be idempotent for %q", in)
	}
}

func TestSlugifyUnicodeWhitespace(t *testing.T) {
	tests := map[string]string{
		"Joe\u00a0Diner":        "joe-diner",
		"Joe\u2009\u2009Diner":  "joe-diner",
		"Noodle\u3000Bar":       "noodle-bar",
		"Line\u2028Break":       "line-break",
		"Tab\vStop":             "tab-stop",
		"Zero\ufeffWidth Space": "zero-width-space",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "Slugify(%q)", in)
	}
}

func TestIsUsableSlug(t *testing.T) {
	assert.True(t, IsUsableSlug("joes"))
	assert.True(t, IsUsableSlug("-a-"))
	assert.False(t, IsUsableSlug(""))
	assert.False(t, IsUsableSlug("-"))
	assert.False(t, IsUsableSlug("--"))
	assert.False(t, IsUsableSlug(Slugify("& &")))
}
