// Package signal turns SIGINT and SIGTERM into context cancellation so a
// running playback loop can be stopped deterministically from the terminal.
//
// Import rules:
//   - CAN import: std lib only
//   - MUST NOT import: internal packages (to avoid circular dependencies)
package signal

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// ErrInterrupted is the context cause recorded when a signal arrives.
var ErrInterrupted = errors.New("interrupted by signal")

// Handler cancels its context when one of the watched signals is received.
type Handler struct {
	ctx         context.Context //nolint:containedctx // handler owns the context lifecycle
	cancel      context.CancelCauseFunc
	interrupted chan struct{}
	done        chan struct{}
	once        sync.Once
	stopOnce    sync.Once
	sigChan     chan os.Signal

	mu       sync.Mutex
	received os.Signal
}

// NewHandler watches SIGINT and SIGTERM.
//
// Usage:
//
//	h := signal.NewHandler(ctx)
//	defer h.Stop()
//	runner.Start(h.Context())
func NewHandler(parent context.Context) *Handler {
	return NewHandlerFor(parent, syscall.SIGINT, syscall.SIGTERM)
}

// NewHandlerFor watches the given signals.
func NewHandlerFor(parent context.Context, sigs ...os.Signal) *Handler {
	ctx, cancel := context.WithCancelCause(parent)
	h := &Handler{
		ctx:         ctx,
		cancel:      cancel,
		interrupted: make(chan struct{}),
		done:        make(chan struct{}),
		// Buffer of 1 so signal.Notify never drops a signal while we are busy.
		sigChan: make(chan os.Signal, 1),
	}

	signal.Notify(h.sigChan, sigs...)
	go h.listen()

	return h
}

// Context returns the context that is canceled on interrupt or Stop.
func (h *Handler) Context() context.Context {
	return h.ctx
}

// Interrupted returns a channel that closes when a signal is received.
func (h *Handler) Interrupted() <-chan struct{} {
	return h.interrupted
}

// Signal returns the signal that interrupted the handler, or nil.
func (h *Handler) Signal() os.Signal {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.received
}

// WasInterrupted reports whether ctx ended because of a signal.
func WasInterrupted(ctx context.Context) bool {
	return errors.Is(context.Cause(ctx), ErrInterrupted)
}

// Stop stops listening and cancels the context. Safe to call more than once.
func (h *Handler) Stop() {
	h.stopOnce.Do(func() {
		signal.Stop(h.sigChan)
		close(h.done)
		h.cancel(context.Canceled)
	})
}

func (h *Handler) handleSignal(sig os.Signal) {
	h.once.Do(func() {
		h.mu.Lock()
		h.received = sig
		h.mu.Unlock()
		h.cancel(ErrInterrupted)
		close(h.interrupted)
	})
}

// listen handles signals until Stop is called or the context ends. Only the
// first signal has an effect; later ones are drained.
func (h *Handler) listen() {
	for {
		select {
		case <-h.ctx.Done():
			return
		case <-h.done:
			return
		case sig := <-h.sigChan:
			h.handleSignal(sig)
		}
	}
}
