package repository

import (
	"context"
	"time"

	"github.com/angaddubey10/oauth-demo/internal/domain"
)

// DirectoryRepository lists known accounts for the admin user directory.
type DirectoryRepository interface {
	ListUsers(ctx context.Context) ([]domain.DirectoryUser, error)
}

type memoryDirectoryRepository struct {
	users []domain.DirectoryUser
}

// NewMemoryDirectoryRepository returns the static demo directory.
func NewMemoryDirectoryRepository() DirectoryRepository {
	ts := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return &memoryDirectoryRepository{users: []domain.DirectoryUser{
		{ID: 1, Email: "user1@example.com", Name: "Regular User", Role: domain.RoleUser, LastLogin: ts("2025-01-30T10:30:00Z"), Status: "active"},
		{ID: 2, Email: "admin@example.com", Name: "Admin User", Role: domain.RoleAdmin, LastLogin: ts("2025-01-31T08:15:00Z"), Status: "active"},
		{ID: 3, Email: "user2@example.com", Name: "Another User", Role: domain.RoleUser, LastLogin: ts("2025-01-29T14:45:00Z"), Status: "active"},
	}}
}

func (r *memoryDirectoryRepository) ListUsers(_ context.Context) ([]domain.DirectoryUser, error) {
	users := make([]domain.DirectoryUser, len(r.users))
	copy(users, r.users)
	return users, nil
}
