package event

// Observer receives dispatched events
// Called synchronously on the stepping goroutine
type Observer interface {
	OnEvent(ev GameEvent)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ev GameEvent)

func (f ObserverFunc) OnEvent(ev GameEvent) { f(ev) }

// Router dispatches events to registered observers
//
// Architecture:
//   - Single-threaded dispatch
//   - Observers for a type run in registration order, then catch-all observers
//   - Events are delivered in emission order
type Router struct {
	handlers map[EventType][]Observer
	all      []Observer
}

func NewRouter() *Router {
	return &Router{
		handlers: make(map[EventType][]Observer),
	}
}

// Subscribe registers an observer for specific event types
func (r *Router) Subscribe(o Observer, types ...EventType) {
	for _, t := range types {
		r.handlers[t] = append(r.handlers[t], o)
	}
}

// SubscribeAll registers an observer for every event type
func (r *Router) SubscribeAll(o Observer) {
	r.all = append(r.all, o)
}

// Dispatch routes events in order
func (r *Router) Dispatch(events []GameEvent) {
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.OnEvent(ev)
		}
		for _, h := range r.all {
			h.OnEvent(ev)
		}
	}
}

// HandlerCount returns the number of observers that receive the given type
func (r *Router) HandlerCount(t EventType) int {
	return len(r.handlers[t]) + len(r.all)
}
