package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
)

// ShortInfo is the minimal booking projection attached to items as their
// nearest past ("last") and nearest future ("next") approved booking.
type ShortInfo struct {
	ID       uuid.UUID
	BookerID uuid.UUID
}

// Repository defines the persistence contract for booking aggregates.
//
// All list queries return bookings with item and booker summaries populated.
// Temporal orderings are by start: descending everywhere except the future
// queries, which are ascending by design.
type Repository interface {
	// Create persists a new booking.
	Create(ctx context.Context, b *Booking) error

	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// DecideLocked loads the booking under a row-level lock within a single
	// transaction, applies fn, and persists the resulting status. Two
	// concurrent calls on the same booking serialize: exactly one sees
	// WAITING.
	DecideLocked(ctx context.Context, id uuid.UUID, fn func(b *Booking) error) (*Booking, error)

	// Booker-side category queries.
	FindByBooker(ctx context.Context, bookerID uuid.UUID, page domain.PageRequest) ([]*Booking, error)
	FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*Booking, error)
	FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*Booking, error)
	FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*Booking, error)
	FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status Status, page domain.PageRequest) ([]*Booking, error)

	// Owner-side category queries over all bookings of the owner's items.
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*Booking, error)
	FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*Booking, error)
	FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*Booking, error)
	FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*Booking, error)
	FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status Status, page domain.PageRequest) ([]*Booking, error)

	// ExistsApprovedPast reports whether the booker has at least one
	// approved booking for the item that ended before now. Gates comments.
	ExistsApprovedPast(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error)

	// LastApprovedForItems resolves, per item, the approved booking with
	// start <= now having the greatest start (ties broken by largest id).
	// One bulk query regardless of item count; absent entries mean "none".
	LastApprovedForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]ShortInfo, error)

	// NextApprovedForItems resolves, per item, the approved booking with
	// start >= now having the smallest start.
	NextApprovedForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]ShortInfo, error)
}
