package common

import "strings"

// BearerToken extracts the token from an Authorization header value.
// It returns false when the header is empty or uses another scheme.
func BearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, BearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
	if token == "" {
		return "", false
	}
	return token, true
}
