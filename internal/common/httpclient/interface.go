// Package httpclient provides a configurable HTTP client for making requests to the
// SkillSwap REST API. Every call is a single attempt. Responses are classified once
// into the apperrors taxonomy: transport failures, API failures carrying the server's
// reason, or success with the raw body.
package httpclient

import (
	"context"
)

// HTTPClientInterface defines the interface for HTTP client implementations.
// Implementations must build requests from RequestOptions and classify responses
// with DecodeResponse.
type HTTPClientInterface interface {
	// DoRequest makes an HTTP request with the given options and returns the response body.
	DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error)

	// GetResource issues a GET for resourcePath with optional query parameters.
	GetResource(ctx context.Context, resourcePath string, queryParams map[string]string, failure string) ([]byte, error)

	// CreateResource POSTs data to resourcePath.
	CreateResource(ctx context.Context, resourcePath string, data []byte, failure string) ([]byte, error)

	// PatchResource PATCHes resourcePath. data may be nil when the change is carried by
	// query parameters.
	PatchResource(ctx context.Context, resourcePath string, queryParams map[string]string, data []byte, failure string) ([]byte, error)
}

// Verify that the HTTPClient and TestHTTPClient implement the HTTPClientInterface.
var _ HTTPClientInterface = &HTTPClient{}
var _ HTTPClientInterface = &TestHTTPClient{}
