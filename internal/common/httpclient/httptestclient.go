package httpclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"
)

// TestHTTPClient serves requests directly from an http.Handler. It uses
// httptest.NewRecorder to capture responses without making network calls, and
// classifies them exactly like HTTPClient.
type TestHTTPClient struct {
	config  Configurator
	handler http.Handler
}

// NewTestClient creates a test client that routes every request to handler.
func NewTestClient(config Configurator, handler http.Handler) *TestHTTPClient {
	return &TestHTTPClient{
		config:  config,
		handler: handler,
	}
}

// DoRequest builds the request like HTTPClient and serves it in process. A
// cancelled context fails before the handler runs.
func (c *TestHTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	req, err := newRequest(ctx, c.config, opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	if err := ctx.Err(); err != nil {
		logRequest(req, 0, start, err)
		return nil, transportError(opts, err)
	}

	rr := httptest.NewRecorder()
	c.handler.ServeHTTP(rr, req)
	logRequest(req, rr.Code, start, nil)

	return DecodeResponse(rr.Code, rr.Body.Bytes(), opts.failure())
}

// GetResource issues a GET for resourcePath.
func (c *TestHTTPClient) GetResource(ctx context.Context, resourcePath string, queryParams map[string]string, failure string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:         http.MethodGet,
		Path:           resourcePath,
		QueryParams:    queryParams,
		FailureMessage: failure,
	})
}

// CreateResource POSTs data to resourcePath.
func (c *TestHTTPClient) CreateResource(ctx context.Context, resourcePath string, data []byte, failure string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:         http.MethodPost,
		Path:           resourcePath,
		Body:           data,
		FailureMessage: failure,
	})
}

// PatchResource PATCHes resourcePath.
func (c *TestHTTPClient) PatchResource(ctx context.Context, resourcePath string, queryParams map[string]string, data []byte, failure string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:         http.MethodPatch,
		Path:           resourcePath,
		QueryParams:    queryParams,
		Body:           data,
		FailureMessage: failure,
	})
}

// StaticConfig is a Configurator with a fixed server URL.
type StaticConfig string

// GetServerURL returns the URL.
func (s StaticConfig) GetServerURL() string {
	return string(s)
}
