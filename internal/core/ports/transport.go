// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"io"
	"net/http"
	"net/url"
)

// ResponseType selects how a response body is handed back to the caller.
type ResponseType uint8

const (
	// ResponseJSON decodes the body into Request.Result.
	ResponseJSON ResponseType = iota
	// ResponseBinary returns the raw body in Response.Body.
	ResponseBinary
)

// Upload is a single multipart file part.
type Upload struct {
	Field    string
	FileName string
	Reader   io.Reader
}

// Request describes one backend call relative to the configured base URL.
type Request struct {
	Method       string
	Path         string
	Query        url.Values
	Body         any
	Headers      map[string]string
	ResponseType ResponseType
	// Result receives the decoded JSON body; nil discards it.
	Result any
	Upload *Upload
}

// Response is what the transport returns for a 2xx answer.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
}

// Transport sends requests to the backend.
//
// It attaches the session token, turns 401 into a session reset, and
// normalizes every other non-2xx answer into a *domain.APIError.
// It never retries.
//
//go:generate mockgen -source=transport.go -destination=mocks/mock_transport.go -package=mocks
type Transport interface {
	Do(ctx context.Context, req *Request) (*Response, error)
}
