package webhook

import (
	"context"
	"fmt"
)

// Handler applies the side effects for one event category. Implementations
// mutate domain records and enqueue notifications; they never touch the
// dedup marker, and their errors bubble to the engine unmodified.
type Handler interface {
	Handle(ctx context.Context, ev Event) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, ev Event) error

func (f HandlerFunc) Handle(ctx context.Context, ev Event) error {
	return f(ctx, ev)
}

// Registry is the static event-type to handler mapping, populated once at
// startup. Adding an event type is a registration, not a new branch in
// shared dispatch code.
type Registry struct {
	handlers map[string]Handler
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

func (r *Registry) Register(eventType string, h Handler) {
	if _, dup := r.handlers[eventType]; dup {
		panic(fmt.Sprintf("webhook: duplicate handler registration for %q", eventType))
	}
	r.handlers[eventType] = h
}

// Dispatch routes the event to its handler. Unknown types are a successful
// no-op so that new event types introduced by the platform never turn into
// failures or redelivery loops.
func (r *Registry) Dispatch(ctx context.Context, ev Event) (handled bool, err error) {
	h, ok := r.handlers[ev.Type]
	if !ok {
		return false, nil
	}
	return true, h.Handle(ctx, ev)
}

// Types returns the registered event types, for startup logging.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.handlers))
	for t := range r.handlers {
		types = append(types, t)
	}
	return types
}
