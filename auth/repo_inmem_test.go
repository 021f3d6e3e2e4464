package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()

	acc := NewAccount("Jane Doe", "jane@example.com", "jane", "hash")
	require.NoError(t, repo.Store(ctx, acc))
	assert.True(t, isValidID(string(acc.ID)))

	tests := []struct {
		acc       *Account
		wantField string
	}{
		{acc: NewAccount("Jane Again", "jane@example.com", "jane2", "hash"), wantField: fieldEmail},
		{acc: NewAccount("Jane Roe", "roe@example.com", "jane", "hash"), wantField: fieldUsername},
	}

	for _, tt := range tests {
		err := repo.Store(ctx, tt.acc)
		field, ok := duplicateKeyField(err)
		assert.True(t, ok)
		assert.Equal(t, tt.wantField, field)
		assert.Equal(t, ID(""), tt.acc.ID)
	}

	found, err := repo.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, acc, found)

	found, err = repo.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, acc, found)

	_, err = repo.FindByEmail(ctx, "Jane@example.com")
	assert.Equal(t, ErrNotFound, err)

	_, err = repo.FindByID(ctx, NewID())
	assert.Equal(t, ErrNotFound, err)

	exists, err := repo.ExistsByUsername(ctx, "jane")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByUsername(ctx, "john")
	assert.NoError(t, err)
	assert.False(t, exists)

	assert.NoError(t, repo.Ping(ctx))
}

func TestAccountRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository()
	acc := storeFixture(t, repo, "Jane Doe", "jane@example.com", "jane", "hash")

	found, err := repo.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	found.Credentials.Fullname = "Changed"

	again, err := repo.FindByID(ctx, acc.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", again.Credentials.Fullname)
}
