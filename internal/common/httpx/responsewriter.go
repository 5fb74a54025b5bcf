package httpx

import (
	"net/http"
)

// ResponseWriter records what a handler sent so middleware can log it and
// avoid writing a second error body after a panic.
type ResponseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

// NewResponseWriter wraps w.
func NewResponseWriter(w http.ResponseWriter) *ResponseWriter {
	return &ResponseWriter{ResponseWriter: w}
}

// WriteHeader sends the status line once. Later calls are dropped.
func (rw *ResponseWriter) WriteHeader(code int) {
	if rw.status != 0 {
		return
	}
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// Write sends b, with a 200 status if none was sent yet.
func (rw *ResponseWriter) Write(b []byte) (int, error) {
	rw.WriteHeader(http.StatusOK)
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// Written reports whether the status line went out.
func (rw *ResponseWriter) Written() bool {
	return rw.status != 0
}

// Status is the status sent, or 200 when the handler sent nothing.
func (rw *ResponseWriter) Status() int {
	if rw.status == 0 {
		return http.StatusOK
	}
	return rw.status
}

// BytesWritten is the size of the body sent so far.
func (rw *ResponseWriter) BytesWritten() int {
	return rw.bytes
}
