package httpclient

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/skillswap/skillswap/internal/common/logtrace"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// defaultFailure is used when a caller does not name the operation.
const defaultFailure = "request failed"

// Configurator provides the server location.
type Configurator interface {
	GetServerURL() string
}

// HTTPClient represents a client for making HTTP requests to a REST API server.
type HTTPClient struct {
	config     Configurator
	httpClient *http.Client
}

// ClientOptions contains options for configuring the HTTP client.
type ClientOptions struct {
	DisableCertValidation bool              // If true, skips SSL certificate validation
	Transport             http.RoundTripper // Base transport, defaults to http.DefaultTransport
}

// NewClient creates a new HTTP client using the provided configuration.
func NewClient(config Configurator, opts ...ClientOptions) *HTTPClient {
	clientOpts := ClientOptions{}
	if len(opts) > 0 {
		clientOpts = opts[0]
	}
	return NewClientWithOptions(config, clientOpts)
}

// NewClientWithOptions creates a new HTTP client using the provided configuration and options.
// The transport is instrumented with OpenTelemetry; without a registered tracer
// provider the instrumentation is a no-op. No client timeout is set: a request
// lives as long as its context.
func NewClientWithOptions(config Configurator, opts ClientOptions) *HTTPClient {
	base := opts.Transport
	if base == nil {
		t := http.DefaultTransport.(*http.Transport).Clone()
		if opts.DisableCertValidation {
			t.TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
		}
		base = t
	}

	return &HTTPClient{
		config: config,
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(base),
		},
	}
}

// RequestOptions contains options for making HTTP requests.
type RequestOptions struct {
	Method         string            // HTTP method (GET, POST, PATCH)
	Path           string            // API endpoint path
	QueryParams    map[string]string // Optional query parameters
	QueryValues    url.Values        // Optional repeated query parameters
	Body           []byte            // Optional request body
	FailureMessage string            // Message used when the server gives no reason
}

func (o RequestOptions) failure() string {
	if o.FailureMessage == "" {
		return defaultFailure
	}
	return o.FailureMessage
}

// DoRequest makes an HTTP request with the given options and returns the body of a
// 2xx response. Any other outcome is an apperrors.ErrTransport or apperrors.ErrAPI.
func (c *HTTPClient) DoRequest(ctx context.Context, opts RequestOptions) ([]byte, error) {
	req, err := newRequest(ctx, c.config, opts)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logRequest(req, 0, start, err)
		return nil, transportError(opts, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logRequest(req, resp.StatusCode, start, err)
		return nil, transportError(opts, fmt.Errorf("failed to read response body: %w", err))
	}
	logRequest(req, resp.StatusCode, start, nil)

	return DecodeResponse(resp.StatusCode, body, opts.failure())
}

// GetResource issues a GET for resourcePath.
func (c *HTTPClient) GetResource(ctx context.Context, resourcePath string, queryParams map[string]string, failure string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:         http.MethodGet,
		Path:           resourcePath,
		QueryParams:    queryParams,
		FailureMessage: failure,
	})
}

// CreateResource POSTs data to resourcePath.
func (c *HTTPClient) CreateResource(ctx context.Context, resourcePath string, data []byte, failure string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:         http.MethodPost,
		Path:           resourcePath,
		Body:           data,
		FailureMessage: failure,
	})
}

// PatchResource PATCHes resourcePath.
func (c *HTTPClient) PatchResource(ctx context.Context, resourcePath string, queryParams map[string]string, data []byte, failure string) ([]byte, error) {
	return c.DoRequest(ctx, RequestOptions{
		Method:         http.MethodPatch,
		Path:           resourcePath,
		QueryParams:    queryParams,
		Body:           data,
		FailureMessage: failure,
	})
}

// DecodeResponse classifies a completed round trip. 2xx returns the body. Any other
// status becomes an apperrors.ErrAPI whose message is the server's reason, read
// from a "detail" or "error" field, or failure when the body carries none.
func DecodeResponse(statusCode int, body []byte, failure string) ([]byte, error) {
	if statusCode >= 200 && statusCode < 300 {
		return body, nil
	}
	msg := ServerReason(body)
	if msg == "" {
		msg = failure
	}
	return nil, apperrors.ErrAPI.New(msg).SetStatusCode(statusCode)
}

// ServerReason extracts a human readable reason from an error body. FastAPI style
// {"detail": "..."} and {"error": "..."} are read directly; a list of validation
// problems yields the first message.
func ServerReason(body []byte) string {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return ""
	}
	for _, key := range []string{"detail", "error"} {
		r := gjson.GetBytes(body, key)
		if r.Type == gjson.String && r.String() != "" {
			return r.String()
		}
	}
	if r := gjson.GetBytes(body, "detail.0.msg"); r.Type == gjson.String {
		return r.String()
	}
	return ""
}

func newRequest(ctx context.Context, config Configurator, opts RequestOptions) (*http.Request, error) {
	u, err := url.Parse(config.GetServerURL())
	if err != nil {
		return nil, apperrors.ErrTransport.MsgErr(fmt.Sprintf("invalid server URL: %v", err), err)
	}
	if u.Path == "" {
		u.Path = "/"
	}
	u.Path = path.Join(u.Path, opts.Path)

	q := u.Query()
	for k, v := range opts.QueryParams {
		q.Set(k, v)
	}
	for k, vs := range opts.QueryValues {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var body io.Reader
	if opts.Body != nil {
		body = bytes.NewReader(opts.Body)
	}
	req, err := http.NewRequestWithContext(ctx, opts.Method, u.String(), body)
	if err != nil {
		return nil, apperrors.ErrTransport.MsgErr(fmt.Sprintf("failed to create request: %v", err), err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	requestID := logtrace.RequestIdFromContext(ctx)
	if requestID == "" {
		requestID = logtrace.NewRequestId()
	}
	req.Header.Set(logtrace.RequestIDHeader, requestID)
	return req, nil
}

func transportError(opts RequestOptions, err error) error {
	return apperrors.ErrTransport.MsgErr(fmt.Sprintf("%s: %v", opts.failure(), err), err)
}

func logRequest(req *http.Request, status int, start time.Time, err error) {
	ev := log.Debug()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("request_id", req.Header.Get(logtrace.RequestIDHeader)).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", status).
		Str("duration", fmt.Sprintf("%dms", time.Since(start).Milliseconds())).
		Msg("api request")
}
