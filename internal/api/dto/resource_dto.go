package dto

import (
	"time"

	"github.com/angaddubey10/oauth-demo/internal/domain"
)

// APIResponse is the envelope the resource service wraps every payload in.
type APIResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp"`
}

// NewAPIResponse builds a success envelope.
func NewAPIResponse(data any, message string) APIResponse {
	return APIResponse{
		Status:    "success",
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ResourceView is a resource enriched with access metadata for the caller.
type ResourceView struct {
	domain.Resource
	AccessLevel  domain.AccessLevel `json:"access_level"`
	AccessibleBy string             `json:"accessible_by"`
}

// ProfileStats summarizes what the caller can reach.
type ProfileStats struct {
	TotalAccessibleResources int         `json:"total_accessible_resources"`
	UserResources            int         `json:"user_resources"`
	AdminResources           int         `json:"admin_resources"`
	Role                     domain.Role `json:"role"`
	LastAccessed             string      `json:"last_accessed"`
}

// ProfilePermissions spells out role-derived capabilities.
type ProfilePermissions struct {
	CanAccessUserResources  bool `json:"can_access_user_resources"`
	CanAccessAdminResources bool `json:"can_access_admin_resources"`
	CanManageUsers          bool `json:"can_manage_users"`
}

// ProfileResponse is the /user/profile payload.
type ProfileResponse struct {
	UserInfo    domain.Identity    `json:"user_info"`
	Stats       ProfileStats       `json:"stats"`
	Permissions ProfilePermissions `json:"permissions"`
}

// SystemStats is the /admin/stats payload.
type SystemStats struct {
	TotalResources      int    `json:"total_resources"`
	UserResourcesCount  int    `json:"user_resources_count"`
	AdminResourcesCount int    `json:"admin_resources_count"`
	SystemUptime        string `json:"system_uptime"`
	ActiveUsers         int    `json:"active_users"`
	TotalAPICalls       int64  `json:"total_api_calls"`
	LastUpdated         string `json:"last_updated"`
}
