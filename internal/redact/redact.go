// Package redact removes sensitive details from error text before it is
// logged or shown in the browser view. Card source errors routinely embed
// request URLs and file paths, which may carry credentials or reveal the
// deployment layout.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedStackPlaceholder      = "[STACK_TRACE_REDACTED]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order; later rules see the output of earlier ones.
var rules = []rule{
	{
		// user:password@ in any URL
		pattern:     regexp.MustCompile(`(?i)([a-z][a-z0-9+.-]*://)[^/@\s"']+@`),
		replacement: "${1}" + RedactedCredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`),
		replacement: RedactedJWTPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`(?i)(api[_-]?key|access[_-]?token|token|secret|password)(\s*[=:]\s*)[^\s&"']+`),
		replacement: "${1}${2}" + RedactedKeyPlaceholder,
	},
	{
		// absolute file paths standing on their own, not URL paths
		pattern:     regexp.MustCompile(`(^|[\s"'(])((?:/[\w.-]+){2,})`),
		replacement: "${1}" + RedactedPathPlaceholder,
	},
	{
		pattern:     regexp.MustCompile(`goroutine \d+ \[[^\]]*\]:[\s\S]*`),
		replacement: RedactedStackPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
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
