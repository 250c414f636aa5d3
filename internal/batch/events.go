package batch

import (
	"sync"
	"time"
)

// EventType classifies activity-log entries emitted during generation.
type EventType string

const (
	EventTypeRunStarted    EventType = "run_started"
	EventTypeRunFinished   EventType = "run_finished"
	EventTypeRunStopped    EventType = "run_stopped"
	EventTypeItemStarted   EventType = "item_started"
	EventTypeItemSucceeded EventType = "item_succeeded"
	EventTypeItemFailed    EventType = "item_failed"
	EventTypeAttempt       EventType = "attempt"
	EventTypeError         EventType = "error"
)

// Event is one sequenced activity-log entry consumed by UI subscribers.
// Credentials are referenced by ordinal position only.
type Event struct {
	Seq       int64     `json:"seq"`
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	ItemID    string    `json:"itemId,omitempty"`
	FileName  string    `json:"fileName,omitempty"`
	Message   string    `json:"message,omitempty"`
	Ordinal   int       `json:"ordinal,omitempty"`
	Total     int       `json:"total,omitempty"`
	Queued    int       `json:"queued,omitempty"`
	Succeeded int       `json:"succeeded,omitempty"`
	Failed    int       `json:"failed,omitempty"`
}

// EventBus stores recent activity entries and provides incremental reads.
type EventBus struct {
	mu        sync.RWMutex
	nextSeq   int64
	maxEvents int
	events    []Event
}

// NewEventBus creates a bounded in-memory activity buffer.
func NewEventBus(maxEvents int) *EventBus {
	if maxEvents <= 0 {
		maxEvents = 500
	}

	return &EventBus{
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
}

// Publish appends one entry, assigning its sequence and timestamp.
func (b *EventBus) Publish(event Event) Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSeq++
	event.Seq = b.nextSeq
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	b.events = append(b.events, event)
	if len(b.events) > b.maxEvents {
		trim := len(b.events) - b.maxEvents
		b.events = append([]Event(nil), b.events[trim:]...)
	}

	return event
}

// Since returns entries with sequence strictly greater than seq.
func (b *EventBus) Since(seq int64) []Event {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.events) == 0 {
		return nil
	}

	out := make([]Event, 0, len(b.events))
	for _, event := range b.events {
		if event.Seq > seq {
			out = append(out, event)
		}
	}
	return out
}

// Reset discards buffered history; sequence numbers keep increasing so
// subscribers polling with Since never see stale entries again.
func (b *EventBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = b.events[:0]
}
