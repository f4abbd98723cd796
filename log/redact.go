package log

import (
	"net/url"
	"strings"
)

var sensitiveKeys = map[string]struct{}{
	"signature":     {},
	"apikey":        {},
	"apisecret":     {},
	"secret":        {},
	"x-mexc-apikey": {},
	"x-coinex-key":  {},
	"x-coinex-sign": {},
	"authorization": {},
}

// IsSensitiveKey returns true when a field, header or query parameter name
// carries credential material
func IsSensitiveKey(k string) bool {
	_, ok := sensitiveKeys[strings.ToLower(k)]
	return ok
}

// RedactHeaders returns a copy of the headers with credential values masked
func RedactHeaders(h map[string]string) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if IsSensitiveKey(k) {
			v = redactedValue
		}
		out[k] = v
	}
	return out
}

// RedactURL masks credential-bearing query parameters in a request path
func RedactURL(path string) string {
	idx := strings.IndexByte(path, '?')
	if idx == -1 {
		return path
	}
	parts := strings.Split(path[idx+1:], "&")
	for i, p := range parts {
		k, _, found := strings.Cut(p, "=")
		if !found {
			continue
		}
		if unescaped, err := url.QueryUnescape(k); err == nil {
			k = unescaped
		}
		if IsSensitiveKey(k) {
			parts[i] = k + "=" + redactedValue
		}
	}
	return path[:idx+1] + strings.Join(parts, "&")
}
