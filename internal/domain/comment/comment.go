package comment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
)

// Comment is feedback left on an item by a user who completed an approved
// booking for it. The author name is denormalized for display.
type Comment struct {
	id         uuid.UUID
	itemID     uuid.UUID
	authorID   uuid.UUID
	authorName string
	text       string
	createdAt  time.Time
}

// NewComment creates a validated comment.
func NewComment(itemID, authorID uuid.UUID, authorName, text string) (*Comment, error) {
	if text == "" {
		return nil, domain.NewValidationError("comment text must not be blank")
	}
	return &Comment{
		id:         uuid.New(),
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  time.Now().UTC(),
	}, nil
}

// Reconstruct rebuilds a Comment from persistence data (no validation).
func Reconstruct(id, itemID, authorID uuid.UUID, authorName, text string, createdAt time.Time) *Comment {
	return &Comment{
		id:         id,
		itemID:     itemID,
		authorID:   authorID,
		authorName: authorName,
		text:       text,
		createdAt:  createdAt,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// ItemID returns the commented item's identifier.
func (c *Comment) ItemID() uuid.UUID { return c.itemID }

// AuthorID returns the author's user identifier.
func (c *Comment) AuthorID() uuid.UUID { return c.authorID }

// AuthorName returns the author's display name.
func (c *Comment) AuthorName() string { return c.authorName }

// Text returns the comment body.
func (c *Comment) Text() string { return c.text }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

// Repository defines the persistence contract for comments.
type Repository interface {
	// Save persists a new comment.
	Save(ctx context.Context, c *Comment) error

	// FindByItemID retrieves comments for one item, newest first.
	FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*Comment, error)

	// FindByItemIDs retrieves comments for many items in one query, grouped
	// by item.
	FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*Comment, error)
}
