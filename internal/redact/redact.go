// Package redact scrubs credentials from strings before they are logged.
// Errors bubbling up from the storage drivers tend to embed connection URIs
// and raw passwords; nothing in this service ever needs those in a log line.
package redact

import "regexp"

// Placeholder replaces any redacted fragment.
const Placeholder = "[REDACTED]"

var (
	// Connection URIs with inline credentials (postgres://u:p@host, mongodb://u:p@host).
	connURIRegex = regexp.MustCompile(`(?i)(postgres|postgresql|mongodb(\+srv)?)://[^@\s]+@`)

	// password=..., pwd: '...' and friends.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]['"]?)[^'"&\s]+`)

	// Bearer tokens are UUIDs; keep them out of logs too.
	tokenRegex = regexp.MustCompile(`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`)

	patterns = []*regexp.Regexp{connURIRegex, passwordRegex, tokenRegex}
)

// String redacts credentials from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, pattern := range patterns {
		result = pattern.ReplaceAllString(result, Placeholder)
	}
	return result
}

// Error redacts credentials from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
