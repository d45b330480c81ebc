package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/isdelr/linkstart-be/internal/common"
	"github.com/isdelr/linkstart-be/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testUserRepository exercises the UserRepository contract on an empty store.
func testUserRepository(t *testing.T, users UserRepository) {
	ctx := context.Background()

	alice := &models.User{Username: "alice", Email: "alice@x.com", PasswordHash: "hash-a"}
	require.NoError(t, users.Create(ctx, alice))
	assert.NotEmpty(t, alice.ID)

	got, err := users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, got.ID)
	assert.Equal(t, "alice@x.com", got.Email)
	assert.Equal(t, "hash-a", got.PasswordHash)

	got, err = users.GetByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)

	_, err = users.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, common.ErrUserNotFound)
	_, err = users.GetByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, common.ErrUserNotFound)

	err = users.Create(ctx, &models.User{Username: "alice", Email: "other@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrDuplicateUsername)

	err = users.Create(ctx, &models.User{Username: "alice2", Email: "alice@x.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, common.ErrDuplicateEmail)
}

// testServiceRepository exercises the ServiceRepository contract on an empty
// store. missingID must be well-formed for the store but never assigned.
func testServiceRepository(t *testing.T, services ServiceRepository, missingID string) {
	ctx := context.Background()

	list, err := services.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	web1 := &models.Service{Owner: "alice", Name: "web1", PublicIP: "1.2.3.4", PrivateIP: "10.0.0.1"}
	require.NoError(t, services.Create(ctx, web1))
	require.NotEmpty(t, web1.ID)

	db1 := &models.Service{Owner: "alice", Name: "db1", PublicIP: "not-an-ip", PrivateIP: ""}
	require.NoError(t, services.Create(ctx, db1))

	bobs := &models.Service{Owner: "bob", Name: "mail", PublicIP: "5.6.7.8", PrivateIP: "10.0.0.2"}
	require.NoError(t, services.Create(ctx, bobs))

	list, err = services.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.ElementsMatch(t, []models.Service{*web1, *db1}, list)

	count, err := services.CountByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(len(list)), count)

	// Foreign and missing records look the same.
	err = services.DeleteByOwner(ctx, "bob", web1.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	err = services.DeleteByOwner(ctx, "alice", missingID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	err = services.DeleteByOwner(ctx, "alice", "definitely-not-an-id")
	assert.ErrorIs(t, err, common.ErrInvalidIdentifier)
	assert.False(t, errors.Is(err, common.ErrNotFound))

	require.NoError(t, services.DeleteByOwner(ctx, "alice", web1.ID))
	err = services.DeleteByOwner(ctx, "alice", web1.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	list, err = services.ListByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, []models.Service{*db1}, list)

	count, err = services.CountByOwner(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	count, err = services.CountByOwner(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
