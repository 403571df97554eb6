package httpclient

import (
	"net/http"
	"net/url"
)

// BasicAuth carries credentials for HTTP basic authentication.
type BasicAuth struct {
	Username string
	Password string
}

type Request struct {
	Method  string
	URL     string
	Headers http.Header
	Query   url.Values
	Body    []byte
	Auth    *BasicAuth
}

type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}
