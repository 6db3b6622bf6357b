package item

import (
	"time"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
)

// Item is the aggregate root for a listed rental item.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	available   bool
	createdAt   time.Time
	updatedAt   time.Time
}

// Update carries an explicit optional-field patch. Nil fields are left
// untouched; set fields are validated individually.
type Update struct {
	Name        *string
	Description *string
	Available   *bool
}

// NewItem creates a new item listing with validated fields.
func NewItem(ownerID uuid.UUID, name, description string, available bool) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("item name is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("item description is required")
	}

	now := time.Now().UTC()
	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Item from persistence data (no validation).
func Reconstruct(id, ownerID uuid.UUID, name, description string, available bool, createdAt, updatedAt time.Time) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		available:   available,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the item's unique identifier.
func (i *Item) ID() uuid.UUID { return i.id }

// OwnerID returns the listing owner's user ID.
func (i *Item) OwnerID() uuid.UUID { return i.ownerID }

// Name returns the item name.
func (i *Item) Name() string { return i.name }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// Available reports whether the item accepts new bookings.
func (i *Item) Available() bool { return i.available }

// CreatedAt returns the creation timestamp.
func (i *Item) CreatedAt() time.Time { return i.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (i *Item) UpdatedAt() time.Time { return i.updatedAt }

// IsOwnedBy reports whether the given user owns this item.
func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

// Apply merges the set fields of the patch into the item.
func (i *Item) Apply(upd Update) error {
	if upd.Name != nil {
		if *upd.Name == "" {
			return domain.NewValidationError("item name must not be blank")
		}
		i.name = *upd.Name
	}
	if upd.Description != nil {
		if *upd.Description == "" {
			return domain.NewValidationError("item description must not be blank")
		}
		i.description = *upd.Description
	}
	if upd.Available != nil {
		i.available = *upd.Available
	}
	i.updatedAt = time.Now().UTC()
	return nil
}
