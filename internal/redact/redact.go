// Package redact scrubs details that should not reach logs or clients from
// error text: file system paths, stack trace fragments, source positions and
// credential-looking values.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	RedactedPathPlaceholder = "[REDACTED_PATH]"
	RedactedStackTrace      = "[STACK_TRACE_REDACTED]"
	RedactedLineNumber      = "[REDACTED_LINE_NUMBER]"
	RedactedCredential      = "[REDACTED_CREDENTIAL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules run in order; stack traces go first so their embedded paths are
// swallowed whole.
var rules = []rule{
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), RedactedStackTrace},
	{
		regexp.MustCompile(`(?i)(password|passwd|secret|token|api[_-]?key)([=:\s]+['"]?)[^'"&\s]{3,}`),
		RedactedCredential,
	},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\\s]+(\\[^\\\s]+)+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[\w-]+\.go:\d+`), RedactedLineNumber},
	{regexp.MustCompile(`(?:at )?line ?\d+`), RedactedLineNumber},
}

// String returns input with every sensitive fragment replaced.
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

// Error redacts err.Error(). A nil error yields "".
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
