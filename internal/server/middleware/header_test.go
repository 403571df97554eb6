package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractToken(t *testing.T) {
	newReq := func() *http.Request {
		return httptest.NewRequest(http.MethodGet, "/", nil)
	}

	t.Run("bearer header", func(t *testing.T) {
		r := newReq()
		r.Header.Set("Authorization", "Bearer abc123")

		token, ok := ExtractToken(r, DefaultTokenConfig)
		assert.True(t, ok)
		assert.Equal(t, "abc123", token)
	})

	t.Run("raw header value", func(t *testing.T) {
		r := newReq()
		r.Header.Set("Authorization", "abc123")

		token, ok := ExtractToken(r, DefaultTokenConfig)
		assert.True(t, ok)
		assert.Equal(t, "abc123", token)
	})

	t.Run("bearer prefix with no token", func(t *testing.T) {
		r := newReq()
		r.Header.Set("Authorization", "Bearer ")

		_, ok := ExtractToken(r, DefaultTokenConfig)
		assert.False(t, ok)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		r := newReq()
		r.AddCookie(&http.Cookie{Name: "fulexo_token", Value: "cookie-token"})

		token, ok := ExtractToken(r, DefaultTokenConfig)
		assert.True(t, ok)
		assert.Equal(t, "cookie-token", token)
	})

	t.Run("header wins over cookie", func(t *testing.T) {
		r := newReq()
		r.Header.Set("Authorization", "Bearer header-token")
		r.AddCookie(&http.Cookie{Name: "fulexo_token", Value: "cookie-token"})

		token, _ := ExtractToken(r, DefaultTokenConfig)
		assert.Equal(t, "header-token", token)
	})

	t.Run("nothing present", func(t *testing.T) {
		_, ok := ExtractToken(newReq(), DefaultTokenConfig)
		assert.False(t, ok)
	})
}
