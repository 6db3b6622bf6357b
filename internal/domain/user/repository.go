package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for user aggregates.
type Repository interface {
	// Save persists a new user. Duplicate email yields a conflict error.
	Save(ctx context.Context, u *User) error

	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// List retrieves all users, oldest first.
	List(ctx context.Context) ([]*User, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, u *User) error

	// Delete removes the user.
	Delete(ctx context.Context, id uuid.UUID) error
}
