package service

import (
	"context"
	"time"

	"github.com/angaddubey10/oauth-demo/internal/api/dto"
	"github.com/angaddubey10/oauth-demo/internal/domain"
	"github.com/angaddubey10/oauth-demo/internal/observability"
	"github.com/angaddubey10/oauth-demo/internal/repository"
)

// ResourceService serves role-scoped resource listings. It holds no mutable
// state beyond the injected repositories and process start time.
type ResourceService struct {
	resources repository.ResourceRepository
	directory repository.DirectoryRepository
	metrics   *observability.Metrics
	startedAt time.Time
}

// NewResourceService builds the service.
func NewResourceService(resources repository.ResourceRepository, directory repository.DirectoryRepository, metrics *observability.Metrics) *ResourceService {
	return &ResourceService{
		resources: resources,
		directory: directory,
		metrics:   metrics,
		startedAt: time.Now(),
	}
}

// ListUser returns user-level resources enriched for the caller.
func (s *ResourceService) ListUser(ctx context.Context, viewer domain.Identity) ([]dto.ResourceView, error) {
	resources, err := s.resources.ListByLevel(ctx, domain.AccessLevelUser)
	if err != nil {
		return nil, err
	}
	return enrich(resources, viewer), nil
}

// ListAdmin returns admin-level resources enriched for the caller.
func (s *ResourceService) ListAdmin(ctx context.Context, viewer domain.Identity) ([]dto.ResourceView, error) {
	resources, err := s.resources.ListByLevel(ctx, domain.AccessLevelAdmin)
	if err != nil {
		return nil, err
	}
	return enrich(resources, viewer), nil
}

// ListAll returns everything the caller's role grants access to.
func (s *ResourceService) ListAll(ctx context.Context, viewer domain.Identity) ([]dto.ResourceView, error) {
	resources, err := s.resources.ListByLevel(ctx, domain.AccessLevelUser)
	if err != nil {
		return nil, err
	}
	if viewer.Role == domain.RoleAdmin {
		admin, err := s.resources.ListByLevel(ctx, domain.AccessLevelAdmin)
		if err != nil {
			return nil, err
		}
		resources = append(resources, admin...)
	}
	return enrich(resources, viewer), nil
}

// Profile returns the caller's identity echo, stats, and permissions.
func (s *ResourceService) Profile(ctx context.Context, viewer domain.Identity) (*dto.ProfileResponse, error) {
	userCount, err := s.resources.CountByLevel(ctx, domain.AccessLevelUser)
	if err != nil {
		return nil, err
	}

	adminCount := 0
	if viewer.Role == domain.RoleAdmin {
		adminCount, err = s.resources.CountByLevel(ctx, domain.AccessLevelAdmin)
		if err != nil {
			return nil, err
		}
	}

	isAdmin := viewer.Role == domain.RoleAdmin
	return &dto.ProfileResponse{
		UserInfo: viewer,
		Stats: dto.ProfileStats{
			TotalAccessibleResources: userCount + adminCount,
			UserResources:            userCount,
			AdminResources:           adminCount,
			Role:                     viewer.Role,
			LastAccessed:             time.Now().UTC().Format(time.RFC3339),
		},
		Permissions: dto.ProfilePermissions{
			CanAccessUserResources:  true,
			CanAccessAdminResources: isAdmin,
			CanManageUsers:          isAdmin,
		},
	}, nil
}

// Stats returns system-wide counters for the admin dashboard.
func (s *ResourceService) Stats(ctx context.Context) (*dto.SystemStats, error) {
	userCount, err := s.resources.CountByLevel(ctx, domain.AccessLevelUser)
	if err != nil {
		return nil, err
	}
	adminCount, err := s.resources.CountByLevel(ctx, domain.AccessLevelAdmin)
	if err != nil {
		return nil, err
	}
	users, err := s.directory.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.SystemStats{
		TotalResources:      userCount + adminCount,
		UserResourcesCount:  userCount,
		AdminResourcesCount: adminCount,
		SystemUptime:        time.Since(s.startedAt).Round(time.Second).String(),
		ActiveUsers:         len(users),
		TotalAPICalls:       s.metrics.TotalRequests(),
		LastUpdated:         time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// Users returns the admin user directory.
func (s *ResourceService) Users(ctx context.Context) ([]domain.DirectoryUser, error) {
	return s.directory.ListUsers(ctx)
}

func enrich(resources []domain.Resource, viewer domain.Identity) []dto.ResourceView {
	views := make([]dto.ResourceView, 0, len(resources))
	for _, res := range resources {
		views = append(views, dto.ResourceView{
			Resource:     res,
			AccessLevel:  res.Level,
			AccessibleBy: viewer.Email,
		})
	}
	return views
}
