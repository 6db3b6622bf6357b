package item

import (
	"context"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
)

// Repository defines the persistence contract for item aggregates.
type Repository interface {
	// Save persists a new item.
	Save(ctx context.Context, i *Item) error

	// FindByID retrieves an item by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// FindByOwnerID retrieves all items listed by the owner, oldest first.
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID, page domain.PageRequest) ([]*Item, error)

	// Search finds available items whose name or description matches the
	// text, case-insensitively.
	Search(ctx context.Context, text string, page domain.PageRequest) ([]*Item, error)

	// Update persists changes to an existing item.
	Update(ctx context.Context, i *Item) error
}
