package events

import (
	"time"

	"github.com/google/uuid"
)

// TopicBookingEvents carries all booking lifecycle events.
const TopicBookingEvents = "rental.booking.events"

// Booking lifecycle event types.
const (
	BookingCreated  = "rental.booking.created"
	BookingApproved = "rental.booking.approved"
	BookingRejected = "rental.booking.rejected"
)

// BookingEvent is the payload for every booking lifecycle event.
type BookingEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ItemID     uuid.UUID `json:"item_id"`
	BookerID   uuid.UUID `json:"booker_id"`
	OwnerID    uuid.UUID `json:"owner_id"`
	Status     string    `json:"status"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	OccurredAt time.Time `json:"occurred_at"`
}
