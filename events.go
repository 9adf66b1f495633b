package listui

import "sync"

// EventKind identifies an input event.
type EventKind int

const (
	EventNone EventKind = iota
	EventUp
	EventDown
	EventActivate
	EventCancel
	EventLeft
	EventRight
	EventResize
	EventQuit
)

var eventNames = [...]string{
	EventNone:     "none",
	EventUp:       "up",
	EventDown:     "down",
	EventActivate: "activate",
	EventCancel:   "cancel",
	EventLeft:     "left",
	EventRight:    "right",
	EventResize:   "resize",
	EventQuit:     "quit",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventNames) {
		return eventNames[k]
	}
	return "unknown"
}

// Event is a backend-neutral input event. Width and Height are set for
// EventResize only.
type Event struct {
	Kind          EventKind
	Width, Height int
}

// Key returns a navigation or action event.
func Key(kind EventKind) Event { return Event{Kind: kind} }

// Resize returns a viewport resize event.
func Resize(width, height int) Event {
	return Event{Kind: EventResize, Width: width, Height: height}
}

// EventQueue hands events from input callbacks to the frame loop. It is
// safe for concurrent use.
type EventQueue struct {
	mu     sync.Mutex
	events []Event
}

// Push appends ev.
func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in arrival order.
func (q *EventQueue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
