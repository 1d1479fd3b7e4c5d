package despawn

import "sync"

// EventQueue collects despawn requests from any goroutine until the plugin
// consumes them at the start of its tick.
type EventQueue struct {
	mu      sync.Mutex
	pending []Event
}

func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

func (q *EventQueue) Push(ev Event) {
	q.mu.Lock()
	q.pending = append(q.pending, ev)
	q.mu.Unlock()
}

// Consume returns every pending event in push order and empties the queue.
func (q *EventQueue) Consume() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}

func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}
