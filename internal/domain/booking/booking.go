package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
)

// ItemRef is the read-only item summary a booking carries. The booking never
// mutates the item it references.
type ItemRef struct {
	ID        uuid.UUID
	Name      string
	OwnerID   uuid.UUID
	Available bool
}

// UserRef is the read-only summary of the requesting user.
type UserRef struct {
	ID   uuid.UUID
	Name string
}

// Booking is the aggregate root for one rental request/agreement.
type Booking struct {
	id        uuid.UUID
	start     time.Time
	end       time.Time
	item      ItemRef
	booker    UserRef
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// ValidateRentPeriod checks the temporal invariants of a booking request:
// start strictly before end (equality rejected) and start not strictly in the
// past relative to submission. It is checked before any entity is loaded so
// that a bad period fails regardless of the other arguments.
func ValidateRentPeriod(start, end, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return domain.NewRentTimeError("start and end are required")
	}
	if !start.Before(end) {
		return domain.NewRentTimeError("start must be strictly before end")
	}
	if start.Before(now) {
		return domain.NewRentTimeError("start must not be in the past")
	}
	return nil
}

// NewBooking creates a new Booking aggregate with status WAITING.
func NewBooking(start, end time.Time, item ItemRef, booker UserRef, now time.Time) (*Booking, error) {
	if err := ValidateRentPeriod(start, end, now); err != nil {
		return nil, err
	}
	if item.ID == uuid.Nil {
		return nil, domain.NewValidationError("item is required")
	}
	if booker.ID == uuid.Nil {
		return nil, domain.NewValidationError("booker is required")
	}
	if !item.Available {
		return nil, domain.NewItemUnavailableError(item.ID.String())
	}
	if item.OwnerID == booker.ID {
		return nil, domain.NewOwnItemError()
	}

	created := now.UTC()
	return &Booking{
		id:        uuid.New(),
		start:     start.UTC(),
		end:       end.UTC(),
		item:      item,
		booker:    booker,
		status:    StatusWaiting,
		createdAt: created,
		updatedAt: created,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	start, end time.Time,
	item ItemRef,
	booker UserRef,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		start:     start,
		end:       end,
		item:      item,
		booker:    booker,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// Start returns the rental period start.
func (b *Booking) Start() time.Time { return b.start }

// End returns the rental period end.
func (b *Booking) End() time.Time { return b.end }

// Item returns the referenced item summary.
func (b *Booking) Item() ItemRef { return b.item }

// Booker returns the requesting user summary.
func (b *Booking) Booker() UserRef { return b.booker }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsParty reports whether the given user is the booker or the item's owner.
// Booking details are visible only to these two parties.
func (b *Booking) IsParty(userID uuid.UUID) bool {
	return userID == b.booker.ID || userID == b.item.OwnerID
}

// Decide applies the owner's one-shot decision, moving the booking from
// WAITING to APPROVED or REJECTED. Re-deciding a non-WAITING booking is an
// error even when the requested outcome matches the current status.
func (b *Booking) Decide(approve bool) error {
	target := StatusRejected
	if approve {
		target = StatusApproved
	}
	if !b.status.CanTransitionTo(target) {
		return domain.NewAlreadyDecidedError(b.id.String())
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}
