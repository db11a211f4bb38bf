package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/angaddubey10/oauth-demo/internal/domain"
)

// ResourceRepository defines read access to protected resources.
type ResourceRepository interface {
	ListByLevel(ctx context.Context, level domain.AccessLevel) ([]domain.Resource, error)
	CountByLevel(ctx context.Context, level domain.AccessLevel) (int, error)
}

type postgresResourceRepository struct {
	pool *pgxpool.Pool
}

// NewResourceRepository returns a Postgres-backed implementation.
func NewResourceRepository(pool *pgxpool.Pool) ResourceRepository {
	return &postgresResourceRepository{pool: pool}
}

func (r *postgresResourceRepository) ListByLevel(ctx context.Context, level domain.AccessLevel) ([]domain.Resource, error) {
	const query = `
        SELECT id, title, content, type, created_at, access_level, sensitive
        FROM resources WHERE access_level=$1 ORDER BY id`

	rows, err := r.pool.Query(ctx, query, string(level))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		var res domain.Resource
		var lvl string
		if err := rows.Scan(&res.ID, &res.Title, &res.Content, &res.Type, &res.CreatedAt, &lvl, &res.Sensitive); err != nil {
			return nil, err
		}
		res.Level = domain.AccessLevel(lvl)
		resources = append(resources, res)
	}
	return resources, rows.Err()
}

func (r *postgresResourceRepository) CountByLevel(ctx context.Context, level domain.AccessLevel) (int, error) {
	const query = `SELECT COUNT(*) FROM resources WHERE access_level=$1`

	var count int
	if err := r.pool.QueryRow(ctx, query, string(level)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

type memoryResourceRepository struct {
	resources []domain.Resource
}

// NewMemoryResourceRepository returns an in-memory implementation seeded with
// the demo documents. Used when no Postgres DSN is configured.
func NewMemoryResourceRepository() ResourceRepository {
	return &memoryResourceRepository{resources: demoResources()}
}

func (r *memoryResourceRepository) ListByLevel(_ context.Context, level domain.AccessLevel) ([]domain.Resource, error) {
	var out []domain.Resource
	for _, res := range r.resources {
		if res.Level == level {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *memoryResourceRepository) CountByLevel(ctx context.Context, level domain.AccessLevel) (int, error) {
	resources, err := r.ListByLevel(ctx, level)
	if err != nil {
		return 0, err
	}
	return len(resources), nil
}

func demoResources() []domain.Resource {
	ts := func(s string) time.Time {
		t, _ := time.Parse(time.RFC3339, s)
		return t
	}

	return []domain.Resource{
		{ID: 1, Title: "Personal Document 1", Content: "This is a user-accessible document.", Type: "document", CreatedAt: ts("2025-01-01T10:00:00Z"), Level: domain.AccessLevelUser},
		{ID: 2, Title: "User Report", Content: "Monthly user activity report.", Type: "report", CreatedAt: ts("2025-01-15T14:30:00Z"), Level: domain.AccessLevelUser},
		{ID: 3, Title: "Project Files", Content: "Access to your project files and documents.", Type: "files", CreatedAt: ts("2025-01-20T09:15:00Z"), Level: domain.AccessLevelUser},
		{ID: 101, Title: "System Configuration", Content: "Critical system settings and configurations.", Type: "config", CreatedAt: ts("2025-01-01T09:00:00Z"), Level: domain.AccessLevelAdmin, Sensitive: true},
		{ID: 102, Title: "User Management Dashboard", Content: "Comprehensive user analytics and management tools.", Type: "dashboard", CreatedAt: ts("2025-01-10T11:00:00Z"), Level: domain.AccessLevelAdmin, Sensitive: true},
		{ID: 103, Title: "System Logs", Content: "Access to system logs and audit trails.", Type: "logs", CreatedAt: ts("2025-01-25T16:45:00Z"), Level: domain.AccessLevelAdmin, Sensitive: true},
	}
}
