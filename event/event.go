// Package event implements a typed, ordered event emitter.
package event

// Handler receives the payload of a dispatched event.
type Handler[P any] func(P)

// Emitter dispatches events of kind K carrying payload P.
// Handlers fire synchronously in registration order. The zero value is ready to use.
type Emitter[K comparable, P any] struct {
	handlers map[K][]Handler[P]
}

// On registers h for kind.
func (e *Emitter[K, P]) On(kind K, h Handler[P]) {
	if h == nil {
		return
	}
	if e.handlers == nil {
		e.handlers = make(map[K][]Handler[P])
	}
	e.handlers[kind] = append(e.handlers[kind], h)
}

// Emit invokes the handlers registered for kind and returns how many ran.
// Handlers registered while dispatching are not invoked for the current event.
func (e *Emitter[K, P]) Emit(kind K, payload P) int {
	handlers := e.handlers[kind]
	for _, h := range handlers {
		h(payload)
	}
	return len(handlers)
}

// Count returns the number of handlers registered for kind.
func (e *Emitter[K, P]) Count(kind K) int {
	return len(e.handlers[kind])
}
