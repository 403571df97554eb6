package objects

import "time"

// Response is the standard envelope for all API responses.
type Response struct {
	Success    bool   `json:"success"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
}

// ErrorResponse is the envelope for failed requests. Error carries the
// stable errorCode string of the failure kind.
type ErrorResponse struct {
	Success    bool           `json:"success"`
	Error      string         `json:"error"`
	Message    string         `json:"message"`
	StatusCode int            `json:"statusCode"`
	Timestamp  string         `json:"timestamp"`
	Path       string         `json:"path"`
	Details    map[string]any `json:"details,omitempty"`
	RetryAfter int            `json:"retryAfter,omitempty"`
}

// Pagination describes the page window of a list response.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// PaginatedResponse is the envelope for list endpoints.
type PaginatedResponse struct {
	Response

	Pagination Pagination `json:"pagination"`
}

// NewResponse builds a success envelope.
func NewResponse(data any, message string, statusCode int, path string) Response {
	return Response{
		Success:    true,
		Data:       data,
		Message:    message,
		StatusCode: statusCode,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       path,
	}
}

// NewPaginatedResponse builds a success envelope with pagination.
func NewPaginatedResponse(data any, page, limit int, total int64, statusCode int, path string) PaginatedResponse {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}

	return PaginatedResponse{
		Response: NewResponse(data, "Success", statusCode, path),
		Pagination: Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}

// PageParams are common list query parameters.
type PageParams struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps page params to sane bounds.
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = 1
	}

	if p.Limit < 1 {
		p.Limit = 20
	}

	if p.Limit > 100 {
		p.Limit = 100
	}

	return p
}

// Offset returns the SQL offset for the page window.
func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}
