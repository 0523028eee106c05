package logger

import (
	"regexp"
	"strings"
)

// sensitiveDataPatterns match credentials that may end up in log lines
var sensitiveDataPatterns = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)(bearer\s+)([A-Za-z0-9-._~+/]+=*)`), "${1}[REDACTED]"},
	{regexp.MustCompile(`(?i)((api|access|auth|token|secret|key|passw(or)?d)[0-9a-z\-_\.]*[\s:=]+)([^;,\s]{5,})`), "${1}[REDACTED]"},
	{regexp.MustCompile(`(://[^/\s:@]+:)([^/\s@]+)@`), "${1}[REDACTED]@"},
}

var sensitiveKeywords = []string{
	"password", "passwd", "secret", "credential", "token", "api_key", "apikey", "dsn",
}

// RedactSensitiveData replaces credentials found in free text with "[REDACTED]"
func RedactSensitiveData(input string) string {
	if input == "" {
		return input
	}
	for _, p := range sensitiveDataPatterns {
		input = p.re.ReplaceAllString(input, p.repl)
	}
	return input
}

// IsSensitiveKey reports whether a config or field key names a secret
func IsSensitiveKey(key string) bool {
	lower := strings.ToLower(key)
	for _, kw := range sensitiveKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
