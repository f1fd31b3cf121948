// Package redact masks secrets in values destined for logs and terminal
// output. API keys, bearer tokens, and credentials embedded in URLs are
// reduced to a short masked form so diagnostic output stays safe to share.
package redact

import (
	"net/url"
	"strings"
)

// SecretKeyPatterns contains substrings that indicate a key likely contains
// sensitive data. Keys are matched case-insensitively.
var SecretKeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes that indicate sensitive
// values regardless of key name.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghs_",  // GitHub server-to-server token
	"sk-",   // OpenAI/Anthropic keys
	"pk-",   // Public keys that shouldn't be exposed
	"AKIA",  // AWS access key prefix
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// Value masks a potentially sensitive string value.
// Values with 4 or fewer characters are fully masked as "********".
// Longer values show the last 4 characters: "****xxxx".
func Value(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// Secrets masks sensitive values in the given environment variable map.
// Keys matching SecretKeyPatterns or values matching TokenPrefixes are
// masked. Returns a new map with sensitive values redacted.
func Secrets(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}

	masked := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) || HasTokenPrefix(v) {
			masked[k] = Value(v)
		} else {
			masked[k] = v
		}
	}
	return masked
}

// Bearer masks the token portion of an "Authorization: Bearer <token>"
// header value. Strings without a bearer token are returned unchanged.
func Bearer(s string) string {
	const marker = "Bearer "
	idx := strings.Index(s, marker)
	if idx < 0 {
		return s
	}
	token := strings.TrimSpace(s[idx+len(marker):])
	if token == "" {
		return s
	}
	return s[:idx+len(marker)] + Value(token)
}

// URL redacts credentials from URLs. Embedded userinfo passwords
// (user:pass@host) and query parameters with sensitive names are masked.
// If the URL cannot be parsed, it is returned unchanged. Masking query
// parameters re-encodes the query string, which sorts parameters by name.
func URL(rawURL string) string {
	if rawURL == "" {
		return rawURL
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	masked := false
	if parsed.User != nil {
		if password, ok := parsed.User.Password(); ok && password != "" {
			parsed.User = url.UserPassword(parsed.User.Username(), Value(password))
			masked = true
		}
	}

	if parsed.RawQuery != "" {
		q := parsed.Query()
		qChanged := false
		for key, vals := range q {
			if !ShouldMask(key) {
				continue
			}
			for i, v := range vals {
				if v != "" {
					vals[i] = Value(v)
				}
			}
			q[key] = vals
			qChanged = true
		}
		if qChanged {
			parsed.RawQuery = q.Encode()
			masked = true
		}
	}

	if !masked {
		return rawURL
	}
	return parsed.String()
}

// ShouldMask returns true if the key name suggests it contains sensitive
// data. Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range SecretKeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// HasTokenPrefix returns true if the value starts with a known token prefix.
// This catches cases where the key name doesn't indicate sensitivity but the
// value is clearly a token (e.g., "MY_VAR=ghp_abc123").
func HasTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}
