package application

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
)

// searchFunc runs one category query for one side (booker or owner).
type searchFunc func(ctx context.Context, userID uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error)

// searchStrategy pairs the booker-side and owner-side queries of a category.
type searchStrategy struct {
	forBooker searchFunc
	forOwner  searchFunc
}

// resolveStrategy maps a raw state value to its search strategy. The set is
// closed: the switch enumerates the six categories, and anything else is an
// unknown-state error rather than a not-found, because an unresolved category
// signals a missing strategy registration, not bad client input.
func (s *BookingService) resolveStrategy(state string) (searchStrategy, error) {
	switch bookingDomain.ParseCategory(state) {
	case bookingDomain.CategoryAll:
		return searchStrategy{
			forBooker: s.repo.FindByBooker,
			forOwner:  s.repo.FindByOwner,
		}, nil

	case bookingDomain.CategoryCurrent:
		return searchStrategy{
			forBooker: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindCurrentByBooker(ctx, id, s.now(), page)
			},
			forOwner: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindCurrentByOwner(ctx, id, s.now(), page)
			},
		}, nil

	case bookingDomain.CategoryFuture:
		return searchStrategy{
			forBooker: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindFutureByBooker(ctx, id, s.now(), page)
			},
			forOwner: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindFutureByOwner(ctx, id, s.now(), page)
			},
		}, nil

	case bookingDomain.CategoryPast:
		return searchStrategy{
			forBooker: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindPastByBooker(ctx, id, s.now(), page)
			},
			forOwner: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindPastByOwner(ctx, id, s.now(), page)
			},
		}, nil

	case bookingDomain.CategoryWaiting:
		return searchStrategy{
			forBooker: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindByBookerAndStatus(ctx, id, bookingDomain.StatusWaiting, page)
			},
			forOwner: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindByOwnerAndStatus(ctx, id, bookingDomain.StatusWaiting, page)
			},
		}, nil

	case bookingDomain.CategoryRejected:
		return searchStrategy{
			forBooker: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindByBookerAndStatus(ctx, id, bookingDomain.StatusRejected, page)
			},
			forOwner: func(ctx context.Context, id uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
				return s.repo.FindByOwnerAndStatus(ctx, id, bookingDomain.StatusRejected, page)
			},
		}, nil

	default:
		return searchStrategy{}, domain.NewUnknownStateError(strings.ToUpper(state))
	}
}
