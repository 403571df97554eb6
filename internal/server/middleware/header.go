package middleware

import (
	"net/http"
	"strings"
)

// TokenConfig controls where session tokens are looked for.
type TokenConfig struct {
	// Headers are checked in order; the first non-empty one wins.
	Headers []string
	// CookieName is the fallback session cookie. Empty disables the
	// cookie path.
	CookieName string
}

var DefaultTokenConfig = TokenConfig{
	Headers:    []string{"Authorization"},
	CookieName: "fulexo_token",
}

// ExtractToken pulls the bearer token from the request. Header values may
// carry a "Bearer " prefix; cookie values are used as-is.
func ExtractToken(r *http.Request, cfg TokenConfig) (string, bool) {
	for _, header := range cfg.Headers {
		value := strings.TrimSpace(r.Header.Get(header))
		if value == "" {
			continue
		}

		if after, found := strings.CutPrefix(value, "Bearer "); found {
			value = strings.TrimSpace(after)
		}

		if value != "" {
			return value, true
		}
	}

	if cfg.CookieName != "" {
		if cookie, err := r.Cookie(cfg.CookieName); err == nil && cookie.Value != "" {
			return cookie.Value, true
		}
	}

	return "", false
}
