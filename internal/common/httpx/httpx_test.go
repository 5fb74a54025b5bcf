package httpx

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skillswap/skillswap/internal/common/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapHttpRsp(t *testing.T) {
	tests := []struct {
		name    string
		handler RequestHandler
		status  int
		body    string
	}{
		{
			name: "ok",
			handler: func(r *http.Request) (*Response, error) {
				return &Response{StatusCode: http.StatusOK, Response: map[string]int{"skill_id": 5}}, nil
			},
			status: http.StatusOK,
			body:   `{"skill_id":5}`,
		},
		{
			name: "http error",
			handler: func(r *http.Request) (*Response, error) {
				return nil, ErrInvalidRequest("Time slot already booked.")
			},
			status: http.StatusBadRequest,
			body:   `{"detail":"Time slot already booked."}`,
		},
		{
			name: "app error with status",
			handler: func(r *http.Request) (*Response, error) {
				return nil, apperrors.ErrAPI.New("conflict").SetStatusCode(http.StatusConflict)
			},
			status: http.StatusConflict,
			body:   `{"detail":"conflict"}`,
		},
		{
			name: "plain error",
			handler: func(r *http.Request) (*Response, error) {
				return nil, errors.New("database unavailable")
			},
			status: http.StatusInternalServerError,
			body:   `{"detail":"database unavailable"}`,
		},
		{
			name: "no response",
			handler: func(r *http.Request) (*Response, error) {
				return nil, nil
			},
			status: http.StatusInternalServerError,
			body:   `{"detail":"unable to process request"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			WrapHttpRsp(tt.handler).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.status, rr.Code)
			assert.JSONEq(t, tt.body, rr.Body.String())
		})
	}
}

func TestGetRequestData(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}
	r := httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(`{"name":"Dana"}`))
	require.NoError(t, GetRequestData(r, &v))
	assert.Equal(t, "Dana", v.Name)

	r = httptest.NewRequest(http.MethodPost, "/users/register", strings.NewReader(`{`))
	assert.Equal(t, ErrUnableToParseReqData(), GetRequestData(r, &v))

	r = httptest.NewRequest(http.MethodGet, "/users/register", nil)
	assert.Equal(t, ErrReqMethodNotSupported(), GetRequestData(r, &v))
}

func TestResponseWriter(t *testing.T) {
	rr := httptest.NewRecorder()
	rw := NewResponseWriter(rr)
	assert.False(t, rw.Written())
	assert.Equal(t, http.StatusOK, rw.Status())

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusBadRequest)
	_, err := rw.Write([]byte("hello"))
	require.NoError(t, err)

	assert.True(t, rw.Written())
	assert.Equal(t, http.StatusCreated, rw.Status())
	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, 5, rw.BytesWritten())
}
