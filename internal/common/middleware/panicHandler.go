// Package middleware provides HTTP middleware components for request logging and panic
// recovery. It integrates with zerolog for structured logging and propagates the
// X-Request-ID header sent by the SkillSwap client.
package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/skillswap/skillswap/internal/common/httpx"
)

// PanicHandler creates middleware that recovers from panics in HTTP handlers. When a panic
// occurs, it logs the panic details and stack trace, then returns a generic error response
// to the client.
func PanicHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rw := httpx.NewResponseWriter(w)
		defer func() {
			if err := recover(); err != nil {
				log.Ctx(r.Context()).Error().
					Str("panic", fmt.Sprintf("%v", err)).
					Str("stack_trace", string(debug.Stack())).
					Msg("panic occurred")

				if !rw.Written() {
					httpx.ErrApplicationError().Send(rw)
				}
			}
		}()
		next.ServeHTTP(rw, r)
	})
}
