package auth

import "strings"

const bearerPrefix = "Bearer "

// ExtractBearerToken returns the token from an Authorization header value.
// Only the "Bearer" scheme is recognised; anything else yields "".
func ExtractBearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[len(bearerPrefix):])
}
