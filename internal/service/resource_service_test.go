package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angaddubey10/oauth-demo/internal/domain"
	"github.com/angaddubey10/oauth-demo/internal/observability"
	"github.com/angaddubey10/oauth-demo/internal/repository"
)

func newTestResourceService() *ResourceService {
	return NewResourceService(
		repository.NewMemoryResourceRepository(),
		repository.NewMemoryDirectoryRepository(),
		observability.NewMetrics(),
	)
}

var (
	regularViewer = domain.Identity{Subject: "sub-1", Email: "x@example.com", Role: domain.RoleUser}
	adminViewer   = domain.Identity{Subject: "sub-2", Email: "admin@example.com", Role: domain.RoleAdmin}
)

func TestListUserEnrichesForViewer(t *testing.T) {
	svc := newTestResourceService()

	views, err := svc.ListUser(context.Background(), regularViewer)
	require.NoError(t, err)
	require.Len(t, views, 3)
	for _, view := range views {
		assert.Equal(t, domain.AccessLevelUser, view.AccessLevel)
		assert.Equal(t, "x@example.com", view.AccessibleBy)
	}
}

func TestListAllScopedByRole(t *testing.T) {
	svc := newTestResourceService()
	ctx := context.Background()

	views, err := svc.ListAll(ctx, regularViewer)
	require.NoError(t, err)
	assert.Len(t, views, 3)

	views, err = svc.ListAll(ctx, adminViewer)
	require.NoError(t, err)
	assert.Len(t, views, 6)
}

func TestProfileForRegularUser(t *testing.T) {
	svc := newTestResourceService()

	profile, err := svc.Profile(context.Background(), regularViewer)
	require.NoError(t, err)

	assert.Equal(t, regularViewer, profile.UserInfo)
	assert.Equal(t, 3, profile.Stats.TotalAccessibleResources)
	assert.Equal(t, 0, profile.Stats.AdminResources)
	assert.True(t, profile.Permissions.CanAccessUserResources)
	assert.False(t, profile.Permissions.CanAccessAdminResources)
	assert.False(t, profile.Permissions.CanManageUsers)
}

func TestStats(t *testing.T) {
	metrics := observability.NewMetrics()
	svc := NewResourceService(
		repository.NewMemoryResourceRepository(),
		repository.NewMemoryDirectoryRepository(),
		metrics,
	)

	metrics.RecordRequest("/resources/user", "GET", 200, time.Millisecond)
	metrics.RecordRequest("/resources/user", "GET", 200, time.Millisecond)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalResources)
	assert.Equal(t, 3, stats.UserResourcesCount)
	assert.Equal(t, 3, stats.AdminResourcesCount)
	assert.Equal(t, 3, stats.ActiveUsers)
	assert.Equal(t, int64(2), stats.TotalAPICalls)
}
