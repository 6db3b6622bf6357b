package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/peershare/service-rental/internal/domain"
)

func TestUserServiceCRUD(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewUserService(repo, zap.NewNop())

	created, err := svc.Create(ctx, CreateUserRequest{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", created.Name)

	_, err = svc.Create(ctx, CreateUserRequest{Name: "Other", Email: "alice@example.com"})
	assert.True(t, domain.IsCode(err, domain.CodeConflict), "duplicate email")

	_, err = svc.Create(ctx, CreateUserRequest{Name: "Bad", Email: "not-an-email"})
	assert.True(t, domain.IsCode(err, domain.CodeValidation))

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, got.Email)

	_, err = svc.GetByID(ctx, uuid.New())
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	name := "Alicia"
	updated, err := svc.Update(ctx, created.ID, UpdateUserRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", updated.Name)
	assert.Equal(t, "alice@example.com", updated.Email, "unset fields stay untouched")

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.GetByID(ctx, created.ID)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound))

	err = svc.Delete(ctx, created.ID)
	assert.True(t, domain.IsCode(err, domain.CodeNotFound), "deleting twice")
}
