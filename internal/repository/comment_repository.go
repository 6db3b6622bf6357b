package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	commentDomain "github.com/peershare/service-rental/internal/domain/comment"
)

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	ItemID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null"`
	AuthorName string    `gorm:"not null;size:255"`
	Text       string    `gorm:"not null;type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

// GormCommentRepository is the GORM-based implementation of the comment
// repository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *commentDomain.Comment) error {
	if err := r.db.WithContext(ctx).Create(toCommentModel(c)).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// FindByItemID retrieves comments for one item, newest first.
func (r *GormCommentRepository) FindByItemID(ctx context.Context, itemID uuid.UUID) ([]*commentDomain.Comment, error) {
	var models []CommentModel
	err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by item ID: %w", err)
	}
	comments := make([]*commentDomain.Comment, len(models))
	for i := range models {
		comments[i] = toDomainComment(&models[i])
	}
	return comments, nil
}

// FindByItemIDs retrieves comments for many items in one query, grouped by
// item.
func (r *GormCommentRepository) FindByItemIDs(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID][]*commentDomain.Comment, error) {
	result := make(map[uuid.UUID][]*commentDomain.Comment, len(itemIDs))
	if len(itemIDs) == 0 {
		return result, nil
	}

	var models []CommentModel
	err := r.db.WithContext(ctx).
		Where("item_id IN ?", itemIDs).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find comments by item IDs: %w", err)
	}
	for i := range models {
		c := toDomainComment(&models[i])
		result[c.ItemID()] = append(result[c.ItemID()], c)
	}
	return result, nil
}

func toCommentModel(c *commentDomain.Comment) *CommentModel {
	return &CommentModel{
		ID:         c.ID(),
		ItemID:     c.ItemID(),
		AuthorID:   c.AuthorID(),
		AuthorName: c.AuthorName(),
		Text:       c.Text(),
		CreatedAt:  c.CreatedAt(),
	}
}

func toDomainComment(m *CommentModel) *commentDomain.Comment {
	return commentDomain.Reconstruct(m.ID, m.ItemID, m.AuthorID, m.AuthorName, m.Text, m.CreatedAt)
}
