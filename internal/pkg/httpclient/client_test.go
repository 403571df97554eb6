package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHttpClient_Do(t *testing.T) {
	t.Run("successful request", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "application/json", r.Header.Get("Accept"))
			w.Write([]byte(`{"ok":true}`))
		}))
		defer srv.Close()

		resp, err := NewHttpClientWithClient(srv.Client()).Do(context.Background(), &Request{
			Method: http.MethodGet,
			URL:    srv.URL,
		})
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.JSONEq(t, `{"ok":true}`, string(resp.Body))
	})

	t.Run("basic auth and query", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, pass, ok := r.BasicAuth()
			require.True(t, ok)
			require.Equal(t, "ck_key", user)
			require.Equal(t, "cs_secret", pass)
			require.Equal(t, "2", r.URL.Query().Get("page"))
			w.Write([]byte(`[]`))
		}))
		defer srv.Close()

		_, err := NewHttpClientWithClient(srv.Client()).Do(context.Background(), &Request{
			Method: http.MethodGet,
			URL:    srv.URL,
			Query:  url.Values{"page": []string{"2"}},
			Auth:   &BasicAuth{Username: "ck_key", Password: "cs_secret"},
		})
		require.NoError(t, err)
	})

	t.Run("error status becomes Error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":"rest_no_route"}`))
		}))
		defer srv.Close()

		_, err := NewHttpClientWithClient(srv.Client()).Do(context.Background(), &Request{
			Method: http.MethodGet,
			URL:    srv.URL,
		})
		require.Error(t, err)
		require.True(t, IsNotFoundErr(err))

		var httpErr *Error
		require.ErrorAs(t, err, &httpErr)
		require.False(t, httpErr.IsRetryable())
		require.Contains(t, string(httpErr.Body), "rest_no_route")
	})

	t.Run("server errors are retryable", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		_, err := NewHttpClientWithClient(srv.Client()).Do(context.Background(), &Request{
			Method: http.MethodGet,
			URL:    srv.URL,
		})

		var httpErr *Error
		require.ErrorAs(t, err, &httpErr)
		require.True(t, httpErr.IsRetryable())
	})
}
