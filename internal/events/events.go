package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCompleted = "booking_completed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingStatus    = "booking_status_changed"
	EventPostCreated      = "post_created"
	EventPostDeleted      = "post_deleted"
)

// StatusEventType maps a new booking status to its event type.
func StatusEventType(status string) string {
	switch status {
	case "confirmed":
		return EventBookingConfirmed
	case "completed":
		return EventBookingCompleted
	case "cancelled":
		return EventBookingCancelled
	}
	return EventBookingStatus
}

// BookingEventPayload describes the minimal booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID  int64     `json:"booking_id"`
	UserID     int64     `json:"user_id"`
	Status     string    `json:"status"`
	PrevStatus string    `json:"prev_status,omitempty"`
	EventDate  time.Time `json:"event_date"`
	ChangedBy  int64     `json:"changed_by,omitempty"`
}

// PostEventPayload describes a post mutation for event consumers.
type PostEventPayload struct {
	PostID    int64  `json:"post_id"`
	Title     string `json:"title"`
	IsSpecial bool   `json:"is_special"`
}

// Event represents a lightweight domain event.
type Event struct {
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	mu          sync.RWMutex
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.RLock()
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	b.mu.RUnlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
