package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/peershare/service-rental/internal/domain"
)

// User is the aggregate root for a platform user.
type User struct {
	id        uuid.UUID
	name      string
	email     string
	createdAt time.Time
	updatedAt time.Time
}

// Update carries an explicit optional-field patch for a user.
type Update struct {
	Name  *string
	Email *string
}

// NewUser creates a new user with validated fields.
func NewUser(name, email string) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("user name is required")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &User{
		id:        uuid.New(),
		name:      name,
		email:     email,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email string, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the user's unique identifier.
func (u *User) ID() uuid.UUID { return u.id }

// Name returns the user's display name.
func (u *User) Name() string { return u.name }

// Email returns the user's email address.
func (u *User) Email() string { return u.email }

// CreatedAt returns the creation timestamp.
func (u *User) CreatedAt() time.Time { return u.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// Apply merges the set fields of the patch into the user.
func (u *User) Apply(upd Update) error {
	if upd.Name != nil {
		if *upd.Name == "" {
			return domain.NewValidationError("user name must not be blank")
		}
		u.name = *upd.Name
	}
	if upd.Email != nil {
		if err := validateEmail(*upd.Email); err != nil {
			return err
		}
		u.email = *upd.Email
	}
	u.updatedAt = time.Now().UTC()
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return domain.NewValidationError("email is required")
	}
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return domain.NewValidationError("email is malformed")
	}
	return nil
}
