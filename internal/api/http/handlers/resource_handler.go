package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/angaddubey10/oauth-demo/internal/api/dto"
	"github.com/angaddubey10/oauth-demo/internal/auth"
	"github.com/angaddubey10/oauth-demo/internal/service"
	apperrors "github.com/angaddubey10/oauth-demo/pkg/util"
)

// ResourceHandler exposes the role-gated resource endpoints.
type ResourceHandler struct {
	resources *service.ResourceService
}

// NewResourceHandler constructs handler.
func NewResourceHandler(resourceService *service.ResourceService) *ResourceHandler {
	return &ResourceHandler{resources: resourceService}
}

// UserResources handles GET /resources/user.
func (h *ResourceHandler) UserResources(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	views, err := h.resources.ListUser(c.UserContext(), principal.Identity)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewAPIResponse(views, fmt.Sprintf("Retrieved %d user resources", len(views))))
}

// AdminResources handles GET /resources/admin.
func (h *ResourceHandler) AdminResources(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	views, err := h.resources.ListAdmin(c.UserContext(), principal.Identity)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewAPIResponse(views, fmt.Sprintf("Retrieved %d admin resources", len(views))))
}

// AllResources handles GET /resources/all.
func (h *ResourceHandler) AllResources(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	views, err := h.resources.ListAll(c.UserContext(), principal.Identity)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewAPIResponse(views, fmt.Sprintf("Retrieved %d accessible resources", len(views))))
}

// Profile handles GET /user/profile.
func (h *ResourceHandler) Profile(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	profile, err := h.resources.Profile(c.UserContext(), principal.Identity)
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewAPIResponse(profile, "Profile retrieved successfully"))
}

// Stats handles GET /admin/stats.
func (h *ResourceHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.resources.Stats(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewAPIResponse(stats, "System statistics retrieved"))
}

// Users handles GET /admin/users.
func (h *ResourceHandler) Users(c *fiber.Ctx) error {
	users, err := h.resources.Users(c.UserContext())
	if err != nil {
		return apperrors.MapError(err)
	}
	return c.JSON(dto.NewAPIResponse(users, "User list retrieved successfully"))
}
