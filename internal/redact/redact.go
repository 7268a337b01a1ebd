// Package redact scrubs credentials and database internals from strings before
// they reach logs. Error responses never include raw errors; this package
// guards the log side.
package redact

import "regexp"

// Placeholders substituted for redacted fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_JWT]"
	BearerPlaceholder     = "Bearer [REDACTED]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	HashPlaceholder       = "[REDACTED_HASH]"
)

type rule struct {
	re          *regexp.Regexp
	placeholder string
}

// Rules are applied in order; the DSN rule must run before the generic
// password rule so that "postgres://user:pass@" collapses as a whole.
var rules = []rule{
	{regexp.MustCompile(`(?i)(postgres|postgresql)://[^@\s]+@`), CredentialPlaceholder + "@"},
	{regexp.MustCompile(`(?i)(password|passwd|pwd|secret)(\s*[=:]\s*|\s+)['"]?[^'"&\s]{3,}`), CredentialPlaceholder},
	{regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`), TokenPlaceholder},
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`), BearerPlaceholder},
	{regexp.MustCompile(`\$2[aby]?\$\d{2}\$[./A-Za-z0-9]{53}`), HashPlaceholder},
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET|WHERE)\b[^;]*`), SQLPlaceholder},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	result := input
	for _, r := range rules {
		result = r.re.ReplaceAllString(result, r.placeholder)
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
