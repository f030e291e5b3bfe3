// Package redact strips credentials, connection strings, hosts and file paths
// from error text before it is logged or placed in an HTTP response body.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	HostPlaceholder       = "[REDACTED_HOST]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules are applied in order; connection strings go first so that the host
// rule does not split them.
var rules = []rule{
	{
		pattern:     regexp.MustCompile(`(?i)\b(postgres|postgresql)://[^\s'"]+`),
		placeholder: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\b(password|passwd|pwd)\s*[=:]\s*['"]?[^'"&\s]+`),
		placeholder: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\buser\s*=\s*[^\s]+`),
		placeholder: CredentialPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}(?::\d{1,5})?\b`),
		placeholder: HostPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)\bhost\s*=\s*[^\s]+`),
		placeholder: HostPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(/[\w.-]+){2,}`),
		placeholder: PathPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.placeholder)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}
