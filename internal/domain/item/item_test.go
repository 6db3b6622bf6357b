package item

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peershare/service-rental/internal/domain"
)

func TestNewItem(t *testing.T) {
	owner := uuid.New()

	it, err := NewItem(owner, "drill", "cordless drill", true)
	require.NoError(t, err)
	assert.True(t, it.IsOwnedBy(owner))
	assert.True(t, it.Available())

	_, err = NewItem(uuid.Nil, "drill", "cordless drill", true)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	_, err = NewItem(owner, "", "cordless drill", true)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	_, err = NewItem(owner, "drill", "", true)
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
}

func TestItemApply(t *testing.T) {
	it, err := NewItem(uuid.New(), "drill", "cordless drill", true)
	require.NoError(t, err)

	unavailable := false
	require.NoError(t, it.Apply(Update{Available: &unavailable}))
	assert.False(t, it.Available())
	assert.Equal(t, "drill", it.Name(), "unset fields stay untouched")

	name := "hammer drill"
	require.NoError(t, it.Apply(Update{Name: &name}))
	assert.Equal(t, "hammer drill", it.Name())

	blank := ""
	err = it.Apply(Update{Description: &blank})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))
	assert.Equal(t, "cordless drill", it.Description())
}
