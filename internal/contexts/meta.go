package contexts

import "context"

// RequestMeta is the captured request metadata used for rate keying and audit.
type RequestMeta struct {
	Method    string
	Path      string
	ClientIP  string
	UserAgent string
}

// WithRequestMeta stores the request metadata in the context.
func WithRequestMeta(ctx context.Context, meta RequestMeta) context.Context {
	container := getContainer(ctx)
	container.Meta = &meta

	return withContainer(ctx, container)
}

// GetRequestMeta retrieves the request metadata from the context.
func GetRequestMeta(ctx context.Context) (RequestMeta, bool) {
	container := getContainer(ctx)
	if container.Meta != nil {
		return *container.Meta, true
	}

	return RequestMeta{}, false
}
