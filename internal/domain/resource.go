package domain

import "time"

// AccessLevel marks the minimum role needed to read a resource.
type AccessLevel string

const (
	AccessLevelUser  AccessLevel = "user"
	AccessLevelAdmin AccessLevel = "admin"
)

// Resource is a protected document served by the resource service.
type Resource struct {
	ID        int         `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	Type      string      `json:"type"`
	CreatedAt time.Time   `json:"created_at"`
	Level     AccessLevel `json:"-"`
	Sensitive bool        `json:"sensitive,omitempty"`
}

// DirectoryUser is an entry in the admin user directory.
type DirectoryUser struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	LastLogin time.Time `json:"last_login"`
	Status    string    `json:"status"`
}
