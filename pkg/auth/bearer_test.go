package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractBearerToken(t *testing.T) {
	cases := map[string]string{
		"Bearer abc.def":  "abc.def",
		"Bearer  abc ":    "abc",
		"":                "",
		"Basic dXNlcjpw":  "",
		"bearer abc":      "",
		"Bearer":          "",
		"Token abc.def.g": "",
	}
	for header, want := range cases {
		assert.Equal(t, want, ExtractBearerToken(header), "header %q", header)
	}
}
