package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/peershare/service-rental/internal/domain"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	StartDate time.Time `gorm:"not null;index"`
	EndDate   time.Time `gorm:"not null"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	BookerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status    string    `gorm:"not null;size:16;index"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	Item   ItemModel `gorm:"foreignKey:ItemID"`
	Booker UserModel `gorm:"foreignKey:BookerID"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking
// repository contract.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// Create persists a new booking.
func (r *GormBookingRepository) Create(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)
	if err := r.db.WithContext(ctx).Omit("Item", "Booker").Create(model).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// FindByID retrieves a booking with its item and booker populated.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	err := r.db.WithContext(ctx).
		Preload("Item").
		Preload("Booker").
		Where("id = ?", id).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model), nil
}

// DecideLocked loads the booking under FOR UPDATE inside one transaction,
// applies fn, and persists the resulting status. The row lock serializes
// concurrent decisions: the second caller observes the first caller's write.
func (r *GormBookingRepository) DecideLocked(ctx context.Context, id uuid.UUID, fn func(b *bookingDomain.Booking) error) (*bookingDomain.Booking, error) {
	var decided *bookingDomain.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model BookingModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&model).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewNotFoundError("booking", id.String())
			}
			return fmt.Errorf("failed to lock booking: %w", err)
		}

		// Item and booker are never mutated here, so they load without a lock.
		if err := tx.First(&model.Item, "id = ?", model.ItemID).Error; err != nil {
			return fmt.Errorf("failed to load booking item: %w", err)
		}
		if err := tx.First(&model.Booker, "id = ?", model.BookerID).Error; err != nil {
			return fmt.Errorf("failed to load booking booker: %w", err)
		}

		bk := toDomainBooking(&model)
		if err := fn(bk); err != nil {
			return err
		}

		result := tx.Model(&BookingModel{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     bk.Status().String(),
				"updated_at": bk.UpdatedAt(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to update booking status: %w", result.Error)
		}

		decided = bk
		return nil
	})
	if err != nil {
		return nil, err
	}
	return decided, nil
}

// --- Booker-side category queries ---

// FindByBooker retrieves all of a booker's bookings, newest start first.
func (r *GormBookingRepository) FindByBooker(ctx context.Context, bookerID uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.booker_id = ?", bookerID)
	})
}

// FindCurrentByBooker retrieves bookings spanning now (start <= now <= end).
func (r *GormBookingRepository) FindCurrentByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.booker_id = ? AND bookings.start_date <= ? AND bookings.end_date >= ?", bookerID, now, now)
	})
}

// FindFutureByBooker retrieves bookings starting after now. Ascending order
// is intentional and unique to the future category.
func (r *GormBookingRepository) FindFutureByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date ASC", func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.booker_id = ? AND bookings.start_date > ?", bookerID, now)
	})
}

// FindPastByBooker retrieves bookings that ended before now.
func (r *GormBookingRepository) FindPastByBooker(ctx context.Context, bookerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.booker_id = ? AND bookings.end_date < ?", bookerID, now)
	})
}

// FindByBookerAndStatus retrieves a booker's bookings in the given status.
func (r *GormBookingRepository) FindByBookerAndStatus(ctx context.Context, bookerID uuid.UUID, status bookingDomain.Status, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", func(q *gorm.DB) *gorm.DB {
		return q.Where("bookings.booker_id = ? AND bookings.status = ?", bookerID, status.String())
	})
}

// --- Owner-side category queries ---

func ownerScope(ownerID uuid.UUID) func(q *gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		return q.Joins("JOIN items ON items.id = bookings.item_id").
			Where("items.owner_id = ?", ownerID)
	}
}

// FindByOwner retrieves all bookings of the owner's items, newest start first.
func (r *GormBookingRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", ownerScope(ownerID))
}

// FindCurrentByOwner retrieves the owner's bookings spanning now.
func (r *GormBookingRepository) FindCurrentByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", func(q *gorm.DB) *gorm.DB {
		return ownerScope(ownerID)(q).Where("bookings.start_date <= ? AND bookings.end_date >= ?", now, now)
	})
}

// FindFutureByOwner retrieves the owner's bookings starting after now.
func (r *GormBookingRepository) FindFutureByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date ASC", func(q *gorm.DB) *gorm.DB {
		return ownerScope(ownerID)(q).Where("bookings.start_date > ?", now)
	})
}

// FindPastByOwner retrieves the owner's bookings that ended before now.
func (r *GormBookingRepository) FindPastByOwner(ctx context.Context, ownerID uuid.UUID, now time.Time, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", func(q *gorm.DB) *gorm.DB {
		return ownerScope(ownerID)(q).Where("bookings.end_date < ?", now)
	})
}

// FindByOwnerAndStatus retrieves the owner's bookings in the given status.
func (r *GormBookingRepository) FindByOwnerAndStatus(ctx context.Context, ownerID uuid.UUID, status bookingDomain.Status, page domain.PageRequest) ([]*bookingDomain.Booking, error) {
	return r.find(ctx, page, "bookings.start_date DESC", func(q *gorm.DB) *gorm.DB {
		return ownerScope(ownerID)(q).Where("bookings.status = ?", status.String())
	})
}

// ExistsApprovedPast reports whether the booker has a finished approved
// booking for the item.
func (r *GormBookingRepository) ExistsApprovedPast(ctx context.Context, itemID, bookerID uuid.UUID, now time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("item_id = ? AND booker_id = ? AND status = ? AND end_date < ?",
			itemID, bookerID, bookingDomain.StatusApproved.String(), now).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check booking history: %w", err)
	}
	return count > 0, nil
}

// shortRow is the scan target for the bulk last/next projection queries.
type shortRow struct {
	ItemID   uuid.UUID
	ID       uuid.UUID
	BookerID uuid.UUID
}

// LastApprovedForItems resolves the nearest past approved booking per item in
// a single query. DISTINCT ON keeps the first row per item under the order,
// with id as a deterministic tie-break.
func (r *GormBookingRepository) LastApprovedForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]bookingDomain.ShortInfo, error) {
	var rows []shortRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (item_id) item_id, id, booker_id
		FROM bookings
		WHERE item_id IN ? AND status = ? AND start_date <= ?
		ORDER BY item_id, start_date DESC, id DESC`,
		itemIDs, bookingDomain.StatusApproved.String(), now,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load last bookings: %w", err)
	}
	return toShortInfoMap(rows), nil
}

// NextApprovedForItems resolves the nearest future approved booking per item
// in a single query.
func (r *GormBookingRepository) NextApprovedForItems(ctx context.Context, itemIDs []uuid.UUID, now time.Time) (map[uuid.UUID]bookingDomain.ShortInfo, error) {
	var rows []shortRow
	err := r.db.WithContext(ctx).Raw(`
		SELECT DISTINCT ON (item_id) item_id, id, booker_id
		FROM bookings
		WHERE item_id IN ? AND status = ? AND start_date >= ?
		ORDER BY item_id, start_date ASC, id ASC`,
		itemIDs, bookingDomain.StatusApproved.String(), now,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load next bookings: %w", err)
	}
	return toShortInfoMap(rows), nil
}

// --- Helpers ---

func (r *GormBookingRepository) find(ctx context.Context, page domain.PageRequest, order string, scope func(q *gorm.DB) *gorm.DB) ([]*bookingDomain.Booking, error) {
	var models []BookingModel
	err := scope(r.db.WithContext(ctx).Model(&BookingModel{})).
		Preload("Item").
		Preload("Booker").
		Order(order).
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}

	bookings := make([]*bookingDomain.Booking, len(models))
	for i := range models {
		bookings[i] = toDomainBooking(&models[i])
	}
	return bookings, nil
}

func toShortInfoMap(rows []shortRow) map[uuid.UUID]bookingDomain.ShortInfo {
	byItem := make(map[uuid.UUID]bookingDomain.ShortInfo, len(rows))
	for _, row := range rows {
		byItem[row.ItemID] = bookingDomain.ShortInfo{ID: row.ID, BookerID: row.BookerID}
	}
	return byItem
}

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:        bk.ID(),
		StartDate: bk.Start(),
		EndDate:   bk.End(),
		ItemID:    bk.Item().ID,
		BookerID:  bk.Booker().ID,
		Status:    bk.Status().String(),
		CreatedAt: bk.CreatedAt(),
		UpdatedAt: bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) *bookingDomain.Booking {
	return bookingDomain.Reconstruct(
		m.ID,
		m.StartDate,
		m.EndDate,
		bookingDomain.ItemRef{
			ID:        m.Item.ID,
			Name:      m.Item.Name,
			OwnerID:   m.Item.OwnerID,
			Available: m.Item.Available,
		},
		bookingDomain.UserRef{
			ID:   m.Booker.ID,
			Name: m.Booker.Name,
		},
		bookingDomain.Status(m.Status),
		m.CreatedAt,
		m.UpdatedAt,
	)
}
