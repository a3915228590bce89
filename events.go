package vlist

import "github.com/rs/zerolog"

// EventKind identifies the event types the bus dispatches.
type EventKind string

const (
	EventScroll       EventKind = "scroll"
	EventSelect       EventKind = "select"
	EventFocus        EventKind = "focus"
	EventRangeChange  EventKind = "rangeChange"
	EventLoadMore     EventKind = "loadMore"
	EventError        EventKind = "error"
	EventDestroy      EventKind = "destroy"
)

// Event is the payload dispatched to listeners. Data's concrete type
// depends on Kind: ScrollEvent, SelectEvent, FocusEvent, RangeEvent,
// or ErrorEvent.
type Event struct {
	Kind EventKind
	Data any
}

type ScrollEvent struct {
	ScrollActual float64
	Velocity     float64
}

type SelectEvent struct {
	Index    int
	Selected bool
}

type FocusEvent struct {
	Index int
}

type RangeEvent struct {
	RenStart, RenEnd int
}

// ErrorEvent carries an adapter failure. Context names the operation
// that failed, matching DataManagerErrorContext. Configuration errors
// are returned from Mount, not emitted.
type ErrorEvent struct {
	Err     error
	Context string
}

// Listener receives dispatched events.
type Listener func(Event)

// EventBus is a synchronous, registration-order listener list.
// Dispatch calls every listener on the caller's goroutine; a panicking
// listener is recovered, logged, and does not stop the remaining
// listeners from running. Grounded on the teacher's Observable/notify
// pattern (observable.go), generalized from a single typed payload to
// a tagged Event so one bus serves every event kind the engine emits.
type EventBus struct {
	listeners []Listener
	log       zerolog.Logger
}

// NewEventBus creates an empty bus that logs recovered listener
// panics through log.
func NewEventBus(log zerolog.Logger) *EventBus {
	return &EventBus{log: log}
}

// On registers a listener, called in the order registered. Returns an
// unsubscribe function.
func (b *EventBus) On(fn Listener) (unsubscribe func()) {
	b.listeners = append(b.listeners, fn)
	idx := len(b.listeners) - 1
	return func() {
		if idx < len(b.listeners) {
			b.listeners[idx] = nil
		}
	}
}

// Emit dispatches ev to every registered listener in registration
// order.
func (b *EventBus) Emit(ev Event) {
	for _, fn := range b.listeners {
		if fn == nil {
			continue
		}
		b.dispatchOne(fn, ev)
	}
}

func (b *EventBus) dispatchOne(fn Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().Interface("panic", r).Str("kind", string(ev.Kind)).Msg("event listener panicked")
		}
	}()
	fn(ev)
}
