package events

// Handler processes specific event types. Subscribers implement this to
// receive routed diagnostics
type Handler interface {
	// HandleEvent processes a single event, synchronously during dispatch
	HandleEvent(event Event)

	// EventTypes returns the event types this handler subscribes to
	EventTypes() []EventType
}

// Router dispatches consumed events to registered handlers
//
// Dispatch is single-threaded: multiple handlers may register for the
// same type and are invoked in registration order. Routing happens out of
// band of the presentation cycle and must never block it
type Router struct {
	handlers map[EventType][]Handler
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(handler Handler) {
	for _, t := range handler.EventTypes() {
		r.handlers[t] = append(r.handlers[t], handler)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order
func (r *Router) DispatchAll() {
	for _, ev := range r.queue.Consume() {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
}

// HasHandlers returns true if any handlers are registered for the type
func (r *Router) HasHandlers(t EventType) bool {
	return len(r.handlers[t]) > 0
}
