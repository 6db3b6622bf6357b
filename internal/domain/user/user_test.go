package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/service-rental/internal/domain"
)

func TestNewUser(t *testing.T) {
	u, err := NewUser("Alice", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name())
	assert.Equal(t, "alice@example.com", u.Email())

	_, err = NewUser("", "alice@example.com")
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	for _, email := range []string{"", "no-at-sign", "@leading", "trailing@"} {
		_, err := NewUser("Alice", email)
		assert.True(t, domain.IsCode(err, domain.CodeValidation), "email %q must be rejected", email)
	}
}

func TestUserApply(t *testing.T) {
	u, err := NewUser("Alice", "alice@example.com")
	require.NoError(t, err)

	name := "Alicia"
	require.NoError(t, u.Apply(Update{Name: &name}))
	assert.Equal(t, "Alicia", u.Name())
	assert.Equal(t, "alice@example.com", u.Email(), "unset fields stay untouched")

	blank := ""
	err = u.Apply(Update{Name: &blank})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	bad := "not-an-email"
	err = u.Apply(Update{Email: &bad})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
	assert.Equal(t, "Alicia", u.Name())
}
