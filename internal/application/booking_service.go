package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/domain"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
	"github.com/peershare/service-rental/internal/events"
	"github.com/peershare/service-rental/internal/kafka"
)

// CreateBookingRequest holds the data needed to create a new booking.
type CreateBookingRequest struct {
	Start  LocalDateTime `json:"start" binding:"required"`
	End    LocalDateTime `json:"end" binding:"required"`
	ItemID uuid.UUID     `json:"itemId" binding:"required"`
}

// UserShortDTO is the booker summary embedded in booking responses.
type UserShortDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ItemShortDTO is the item summary embedded in booking responses.
type ItemShortDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID     uuid.UUID     `json:"id"`
	Start  LocalDateTime `json:"start"`
	End    LocalDateTime `json:"end"`
	Status string        `json:"status"`
	Booker UserShortDTO  `json:"booker"`
	Item   ItemShortDTO  `json:"item"`
}

// ShortBookingDTO is the last/next projection attached to items.
type ShortBookingDTO struct {
	ID       uuid.UUID `json:"id"`
	BookerID uuid.UUID `json:"bookerId"`
}

// BookingService is the application service orchestrating the booking
// lifecycle and the state-dependent list queries.
type BookingService struct {
	repo     bookingDomain.Repository
	items    itemDomain.Repository
	users    userDomain.Repository
	producer *kafka.Producer
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	repo bookingDomain.Repository,
	items itemDomain.Repository,
	users userDomain.Repository,
	producer *kafka.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		repo:     repo,
		items:    items,
		users:    users,
		producer: producer,
		logger:   logger,
		now:      time.Now,
	}
}

// Create validates and persists a new WAITING booking for the given booker.
func (s *BookingService) Create(ctx context.Context, bookerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	now := s.now()

	// The rent period is checked before any entity load so an invalid
	// period fails regardless of the other arguments.
	if err := bookingDomain.ValidateRentPeriod(req.Start.Time(), req.End.Time(), now); err != nil {
		return nil, err
	}

	it, err := s.items.FindByID(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !it.Available() {
		return nil, domain.NewItemUnavailableError(it.ID().String())
	}
	if it.IsOwnedBy(bookerID) {
		return nil, domain.NewOwnItemError()
	}

	booker, err := s.users.FindByID(ctx, bookerID)
	if err != nil {
		return nil, err
	}

	bk, err := bookingDomain.NewBooking(
		req.Start.Time(), req.End.Time(),
		bookingDomain.ItemRef{ID: it.ID(), Name: it.Name(), OwnerID: it.OwnerID(), Available: it.Available()},
		bookingDomain.UserRef{ID: booker.ID(), Name: booker.Name()},
		now,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("item_id", it.ID().String()),
		zap.String("booker_id", bookerID.String()),
	)
	s.publishBookingEvent(ctx, events.BookingCreated, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// Decide applies the owner's approve/reject decision. The WAITING check and
// the status write run under a row-level lock within one transaction, so two
// concurrent decisions on the same booking yield exactly one success.
func (s *BookingService) Decide(ctx context.Context, bookingID, actingUserID uuid.UUID, approve bool) (*BookingDTO, error) {
	bk, err := s.repo.DecideLocked(ctx, bookingID, func(b *bookingDomain.Booking) error {
		if b.Item().OwnerID != actingUserID {
			return domain.NewOwnershipError(fmt.Sprintf("booking %s is not managed by user %s", bookingID, actingUserID))
		}
		return b.Decide(approve)
	})
	if err != nil {
		return nil, err
	}

	eventType := events.BookingRejected
	if approve {
		eventType = events.BookingApproved
	}
	s.logger.Info("booking decided",
		zap.String("booking_id", bk.ID().String()),
		zap.String("status", bk.Status().String()),
	)
	s.publishBookingEvent(ctx, eventType, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetByID retrieves one booking, visible only to its booker or item owner.
func (s *BookingService) GetByID(ctx context.Context, bookingID, requestingUserID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.repo.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !bk.IsParty(requestingUserID) {
		return nil, domain.NewOwnershipError(fmt.Sprintf("booking %s is not visible to user %s", bookingID, requestingUserID))
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// ListForBooker returns the booker's bookings matching the given state
// category, sliced by from/limit.
func (s *BookingService) ListForBooker(ctx context.Context, bookerID uuid.UUID, state string, from, limit int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, bookerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPageRequest(from, limit)
	if err != nil {
		return nil, err
	}

	strategy, err := s.resolveStrategy(state)
	if err != nil {
		return nil, err
	}

	bookings, err := strategy.forBooker(ctx, bookerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for booker: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

// ListForOwner returns all bookings of the owner's items matching the given
// state category, sliced by from/limit.
func (s *BookingService) ListForOwner(ctx context.Context, ownerID uuid.UUID, state string, from, limit int) ([]BookingDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPageRequest(from, limit)
	if err != nil {
		return nil, err
	}

	strategy, err := s.resolveStrategy(state)
	if err != nil {
		return nil, err
	}

	bookings, err := strategy.forOwner(ctx, ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for owner: %w", err)
	}
	return toBookingDTOs(bookings), nil
}

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	if s.producer == nil {
		return
	}

	evt := events.BookingEvent{
		BookingID:  bk.ID(),
		ItemID:     bk.Item().ID,
		BookerID:   bk.Booker().ID,
		OwnerID:    bk.Item().OwnerID,
		Status:     bk.Status().String(),
		Start:      bk.Start(),
		End:        bk.End(),
		OccurredAt: time.Now().UTC(),
	}
	cloudEvent, err := kafka.NewCloudEvent("service-rental", eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicBookingEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("event_type", eventType),
			zap.String("booking_id", bk.ID().String()),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:     bk.ID(),
		Start:  LocalDateTime(bk.Start()),
		End:    LocalDateTime(bk.End()),
		Status: bk.Status().String(),
		Booker: UserShortDTO{ID: bk.Booker().ID, Name: bk.Booker().Name},
		Item:   ItemShortDTO{ID: bk.Item().ID, Name: bk.Item().Name},
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}
