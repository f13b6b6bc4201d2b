// Package events provides a small thread-safe publish/subscribe mechanism
// used to report long-running progress (archive download, extraction,
// per-version loads) without forcing a particular logging backend on
// importers.
package events

import "sync"

// Emitter registers listeners and emits named events to them. It is safe
// for concurrent use; a nil *Emitter is a valid, silent no-op emitter so
// callers can pass one optionally.
type Emitter struct {
	listeners map[string][]func(data any)
	mu        sync.RWMutex
}

// New creates an initialized Emitter.
func New() *Emitter {
	return &Emitter{listeners: make(map[string][]func(data any))}
}

// On registers a handler for the named event. Multiple handlers may be
// registered for the same event; they run in registration order.
func (e *Emitter) On(event string, handler func(data any)) {
	if e == nil {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], handler)
}

// Emit calls every handler registered for event, synchronously, in the
// calling goroutine. The handler slice is copied under the read lock so the
// lock is released before any handler runs.
func (e *Emitter) Emit(event string, data any) {
	if e == nil {
		return
	}
	e.mu.RLock()
	handlers := e.listeners[event]
	e.mu.RUnlock()

	for _, handler := range handlers {
		handler(data)
	}
}
