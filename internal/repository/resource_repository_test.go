package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angaddubey10/oauth-demo/internal/domain"
)

func TestMemoryResourceRepositoryListByLevel(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResourceRepository()

	user, err := repo.ListByLevel(ctx, domain.AccessLevelUser)
	require.NoError(t, err)
	require.Len(t, user, 3)
	for _, res := range user {
		assert.Equal(t, domain.AccessLevelUser, res.Level)
		assert.False(t, res.Sensitive)
	}

	admin, err := repo.ListByLevel(ctx, domain.AccessLevelAdmin)
	require.NoError(t, err)
	require.Len(t, admin, 3)
	for _, res := range admin {
		assert.Equal(t, domain.AccessLevelAdmin, res.Level)
		assert.True(t, res.Sensitive)
	}
}

func TestMemoryResourceRepositoryCountByLevel(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryResourceRepository()

	count, err := repo.CountByLevel(ctx, domain.AccessLevelUser)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = repo.CountByLevel(ctx, domain.AccessLevelAdmin)
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestMemoryDirectoryRepositoryListUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryDirectoryRepository()

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	var admins int
	for _, u := range users {
		if u.Role == domain.RoleAdmin {
			admins++
		}
	}
	assert.Equal(t, 1, admins)
}
