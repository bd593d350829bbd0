// Package events publishes booking lifecycle notifications. Publishing is
// best effort and always happens after the owning transaction committed.
package events

import (
	"context"
	"time"

	"coworkspace/internal/domain"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

const (
	BookingCreated   = "booking.created"
	BookingCheckedIn = "booking.checked_in"
	BookingDeleted   = "booking.deleted"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Publisher sends an event under a routing key.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// Event is the envelope written to the broker.
type Event struct {
	ID         uuid.UUID   `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    BookingData `json:"payload"`
}

type BookingData struct {
	BookingID      int64                `json:"booking_id"`
	UserID         int64                `json:"user_id"`
	WorkingSpaceID int64                `json:"working_space_id"`
	BookingDate    time.Time            `json:"booking_date"`
	Status         domain.BookingStatus `json:"status"`
	Cost           int64                `json:"cost"`
}

// NewBookingEvent builds an envelope for b.
func NewBookingEvent(typ string, b *domain.Booking, at time.Time) Event {
	return Event{
		ID:         uuid.New(),
		Type:       typ,
		OccurredAt: at.UTC(),
		Payload: BookingData{
			BookingID:      b.ID,
			UserID:         b.UserID,
			WorkingSpaceID: b.WorkingSpaceID,
			BookingDate:    b.BookingDate,
			Status:         b.Status,
			Cost:           b.Cost,
		},
	}
}

// Encode returns the wire form of e.
func Encode(e Event) ([]byte, error) {
	return json.Marshal(e)
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                        { return nil }
