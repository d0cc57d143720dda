// Package redact strips sensitive information from strings before they are
// logged or returned in error responses: database credentials and DSNs,
// secrets, file paths, SQL fragments and stack traces that driver errors can
// carry.
package redact

import (
	"net/url"
	"regexp"
	"strings"
)

// Constants for redaction placeholders
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedPathPlaceholder       = "[REDACTED_PATH]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedSQLPlaceholder        = "[REDACTED_SQL]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// rules are applied in order; earlier rules see the unmodified input.
var rules = []rule{
	// user:password@ in database URLs
	{regexp.MustCompile(`(?i)(postgres|postgresql|pgx|mysql|db|database|connection)://[^@\s]+@`), RedactedCredentialPlaceholder},
	// key=value credentials, including libpq keyword DSNs
	{regexp.MustCompile(`(?i)(password|passwd|pwd)([=:\s]?['"]?)[^'"&\s]{3,}`), RedactedCredentialPlaceholder},
	{regexp.MustCompile(`(?i)(api[_-]?key|token|secret|auth)(['"\s:=]+)[A-Za-z0-9_\-.~+/]{8,}`), RedactedKeyPlaceholder},
	// SQLite file DSNs, e.g. file:/var/lib/lexicon.db?_foreign_keys=on
	{regexp.MustCompile(`file:[^\s"']+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`(/[\w.-]+){2,}`), RedactedPathPlaceholder},
	{regexp.MustCompile(`[A-Za-z]:\\[^\\]+(\\[^\\]+)+`), RedactedPathPlaceholder},
	{regexp.MustCompile(`(?:goroutine \d+|panic:)[\s\S]*?(\n\t.*)+`), "[STACK_TRACE_REDACTED]"},
	{regexp.MustCompile(
		`(?i)(SELECT|INSERT|UPDATE|DELETE|CREATE|ALTER|DROP|PRAGMA)[\s\w,*()]+(?:FROM|INTO|SET|TABLE|INDEX|WHERE)(?:[\s\w,*()='"?$]+)?`,
	), RedactedSQLPlaceholder},
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}(?::\d{1,5})?\b`), "[REDACTED_HOST]"},
}

// String redacts sensitive information from the input string
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

// Error redacts sensitive information from an error's Error() output
func Error(err error) string {
	if err == nil {
		return ""
	}

	return String(err.Error())
}

// DatabaseURL masks the password of a database URL so the rest of it can be
// logged. SQLite DSNs are reduced to their scheme.
func DatabaseURL(raw string) string {
	if raw == "" {
		return raw
	}
	if strings.HasPrefix(raw, ":memory:") {
		return ":memory:"
	}
	if strings.HasPrefix(raw, "file:") {
		return "file:" + RedactedPathPlaceholder
	}

	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" {
		return RedactedCredentialPlaceholder
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxx")
		}
	}
	return u.String()
}
