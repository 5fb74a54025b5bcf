// Package view ties outstanding API requests to the lifetime of the view that
// issued them. A result that arrives after its view is closed is dropped and
// never reaches view state.
package view

import (
	"context"
	"errors"
	"sync"
)

// ErrReleased is returned for results that arrived after the owning scope closed.
var ErrReleased = errors.New("view released")

// Scope owns the requests of one view.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewScope opens a scope whose requests are cancelled when parent is done or
// the scope is closed.
func NewScope(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel}
}

// Context returns the context requests of this scope run under.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Closed reports whether Close has been called.
func (s *Scope) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close cancels in-flight requests. Once Close returns no further result is
// delivered. Close is idempotent.
func (s *Scope) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}

// Wait blocks until every request started with Go has finished.
func (s *Scope) Wait() {
	s.wg.Wait()
}

// deliver runs fn only if the scope is still open. It holds the scope lock so
// a concurrent Close waits for an in-progress delivery.
func (s *Scope) deliver(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	fn()
	return true
}

// Handle is a cancellable reference to one request started with Go.
type Handle struct {
	done   chan struct{}
	cancel context.CancelFunc
	err    error
}

// Wait blocks until the request finished and returns its error, or
// ErrReleased if the result was dropped.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Cancel cancels this request only.
func (h *Handle) Cancel() {
	h.cancel()
}

// Go runs fetch concurrently under the scope. When it finishes, deliver is
// called with the result while the scope is open; after Close the result is
// dropped. deliver must not call Close.
func Go[T any](s *Scope, fetch func(ctx context.Context) (T, error), deliver func(T, error)) *Handle {
	ctx, cancel := context.WithCancel(s.ctx)
	h := &Handle{done: make(chan struct{}), cancel: cancel}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(h.done)
		defer cancel()

		v, err := fetch(ctx)
		delivered := s.deliver(func() {
			if deliver != nil {
				deliver(v, err)
			}
		})
		if !delivered {
			err = ErrReleased
		}
		h.err = err
	}()
	return h
}

// Run calls fetch with a context cancelled when either ctx is done or the
// scope closes. It returns ErrReleased if the scope was closed before the
// result arrived.
func Run[T any](s *Scope, ctx context.Context, fetch func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if s.Closed() {
		return zero, ErrReleased
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	v, err := fetch(ctx)
	if s.Closed() {
		return zero, ErrReleased
	}
	return v, err
}

// Apply is Run for callers that change view state with the result. apply
// runs under the scope lock, so a Close racing the result either happens
// before apply, and the result is dropped with ErrReleased, or waits for it.
// The returned error is fetch's error when the result was applied.
func Apply[T any](s *Scope, ctx context.Context, fetch func(ctx context.Context) (T, error), apply func(T, error)) error {
	if s.Closed() {
		return ErrReleased
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.ctx, cancel)
	defer stop()

	v, err := fetch(ctx)
	if !s.deliver(func() { apply(v, err) }) {
		return ErrReleased
	}
	return err
}
