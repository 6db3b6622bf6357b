package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/domain"
	bookingDomain "github.com/peershare/service-rental/internal/domain/booking"
	commentDomain "github.com/peershare/service-rental/internal/domain/comment"
	itemDomain "github.com/peershare/service-rental/internal/domain/item"
	userDomain "github.com/peershare/service-rental/internal/domain/user"
)

// CreateItemRequest is the request DTO for listing a new item.
type CreateItemRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	Available   *bool  `json:"available" binding:"required"`
}

// UpdateItemRequest is the explicit optional-field patch for an item.
type UpdateItemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
}

// CreateCommentRequest is the request DTO for commenting on an item.
type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

// CommentDTO is the response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID     `json:"id"`
	Text       string        `json:"text"`
	AuthorName string        `json:"authorName"`
	Created    LocalDateTime `json:"created"`
}

// ItemDTO is the response representation of an item. LastBooking and
// NextBooking are attached only when the requester owns the item.
type ItemDTO struct {
	ID          uuid.UUID        `json:"id"`
	OwnerID     uuid.UUID        `json:"ownerId"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Available   bool             `json:"available"`
	LastBooking *ShortBookingDTO `json:"lastBooking,omitempty"`
	NextBooking *ShortBookingDTO `json:"nextBooking,omitempty"`
	Comments    []CommentDTO     `json:"comments"`
}

// ItemService implements use cases for item listings, the owner-facing
// last/next booking projection, and comments.
type ItemService struct {
	repo     itemDomain.Repository
	bookings bookingDomain.Repository
	comments commentDomain.Repository
	users    userDomain.Repository
	logger   *zap.Logger
	now      func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(
	repo itemDomain.Repository,
	bookings bookingDomain.Repository,
	comments commentDomain.Repository,
	users userDomain.Repository,
	logger *zap.Logger,
) *ItemService {
	return &ItemService{
		repo:     repo,
		bookings: bookings,
		comments: comments,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// Create lists a new item for the given owner.
func (s *ItemService) Create(ctx context.Context, ownerID uuid.UUID, req CreateItemRequest) (*ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}

	available := req.Available != nil && *req.Available
	it, err := itemDomain.NewItem(ownerID, req.Name, req.Description, available)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	s.logger.Info("item listed",
		zap.String("item_id", it.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toItemDTO(it, nil, nil, nil)
	return &result, nil
}

// Update patches an item. Only the owner may update; the conflict is
// reported as not-found so non-owners cannot probe for existence.
func (s *ItemService) Update(ctx context.Context, ownerID, itemID uuid.UUID, req UpdateItemRequest) (*ItemDTO, error) {
	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !it.IsOwnedBy(ownerID) {
		return nil, domain.NewOwnershipError(fmt.Sprintf("item %s is not owned by user %s", itemID, ownerID))
	}

	if err := it.Apply(itemDomain.Update{
		Name:        req.Name,
		Description: req.Description,
		Available:   req.Available,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, it); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("item updated", zap.String("item_id", itemID.String()))
	result := toItemDTO(it, nil, nil, nil)
	return &result, nil
}

// GetByID returns one item with its comments. The last/next booking summary
// is attached only for the item's owner.
func (s *ItemService) GetByID(ctx context.Context, requesterID, itemID uuid.UUID) (*ItemDTO, error) {
	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	comments, err := s.comments.FindByItemID(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	var last, next *bookingDomain.ShortInfo
	if it.IsOwnedBy(requesterID) {
		lastByItem, nextByItem, err := s.bookingProjection(ctx, []uuid.UUID{itemID})
		if err != nil {
			return nil, err
		}
		last = shortInfoFor(lastByItem, itemID)
		next = shortInfoFor(nextByItem, itemID)
	}

	result := toItemDTO(it, last, next, comments)
	return &result, nil
}

// ListByOwner returns the owner's items, each decorated with its last/next
// approved booking and comments. The projection uses bulk queries so the
// round-trip count does not grow with the number of items.
func (s *ItemService) ListByOwner(ctx context.Context, ownerID uuid.UUID, from, limit int) ([]ItemDTO, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	page, err := domain.NewPageRequest(from, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.FindByOwnerID(ctx, ownerID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	if len(items) == 0 {
		return []ItemDTO{}, nil
	}

	itemIDs := make([]uuid.UUID, len(items))
	for i, it := range items {
		itemIDs[i] = it.ID()
	}

	lastByItem, nextByItem, err := s.bookingProjection(ctx, itemIDs)
	if err != nil {
		return nil, err
	}
	commentsByItem, err := s.comments.FindByItemIDs(ctx, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(
			it,
			shortInfoFor(lastByItem, it.ID()),
			shortInfoFor(nextByItem, it.ID()),
			commentsByItem[it.ID()],
		)
	}
	return dtos, nil
}

// Search finds available items matching the text. A blank query yields an
// empty result rather than everything.
func (s *ItemService) Search(ctx context.Context, text string, from, limit int) ([]ItemDTO, error) {
	if strings.TrimSpace(text) == "" {
		return []ItemDTO{}, nil
	}
	page, err := domain.NewPageRequest(from, limit)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Search(ctx, text, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	dtos := make([]ItemDTO, len(items))
	for i, it := range items {
		dtos[i] = toItemDTO(it, nil, nil, nil)
	}
	return dtos, nil
}

// AddComment stores feedback on an item. Only a user with at least one
// approved booking for the item that already ended may comment.
func (s *ItemService) AddComment(ctx context.Context, authorID, itemID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	it, err := s.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	author, err := s.users.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.bookings.ExistsApprovedPast(ctx, it.ID(), author.ID(), s.now())
	if err != nil {
		return nil, fmt.Errorf("failed to check booking history: %w", err)
	}
	if !allowed {
		return nil, domain.NewValidationError("commenting requires a finished approved booking for this item")
	}

	cm, err := commentDomain.NewComment(it.ID(), author.ID(), author.Name(), req.Text)
	if err != nil {
		return nil, err
	}
	if err := s.comments.Save(ctx, cm); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	s.logger.Info("comment added",
		zap.String("item_id", itemID.String()),
		zap.String("author_id", authorID.String()),
	)
	result := toCommentDTO(cm)
	return &result, nil
}

// bookingProjection resolves the last and next approved booking per item.
func (s *ItemService) bookingProjection(ctx context.Context, itemIDs []uuid.UUID) (map[uuid.UUID]bookingDomain.ShortInfo, map[uuid.UUID]bookingDomain.ShortInfo, error) {
	now := s.now()
	last, err := s.bookings.LastApprovedForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load last bookings: %w", err)
	}
	next, err := s.bookings.NextApprovedForItems(ctx, itemIDs, now)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load next bookings: %w", err)
	}
	return last, next, nil
}

func shortInfoFor(byItem map[uuid.UUID]bookingDomain.ShortInfo, itemID uuid.UUID) *bookingDomain.ShortInfo {
	if info, ok := byItem[itemID]; ok {
		return &info
	}
	return nil
}

func toItemDTO(it *itemDomain.Item, last, next *bookingDomain.ShortInfo, comments []*commentDomain.Comment) ItemDTO {
	dto := ItemDTO{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
		Comments:    make([]CommentDTO, len(comments)),
	}
	if last != nil {
		dto.LastBooking = &ShortBookingDTO{ID: last.ID, BookerID: last.BookerID}
	}
	if next != nil {
		dto.NextBooking = &ShortBookingDTO{ID: next.ID, BookerID: next.BookerID}
	}
	for i, cm := range comments {
		dto.Comments[i] = toCommentDTO(cm)
	}
	return dto
}

func toCommentDTO(cm *commentDomain.Comment) CommentDTO {
	return CommentDTO{
		ID:         cm.ID(),
		Text:       cm.Text(),
		AuthorName: cm.AuthorName(),
		Created:    LocalDateTime(cm.CreatedAt()),
	}
}
