package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/angaddubey10/oauth-demo/internal/api/dto"
	"github.com/angaddubey10/oauth-demo/internal/config"
	"github.com/angaddubey10/oauth-demo/internal/service"
	apperrors "github.com/angaddubey10/oauth-demo/pkg/util"
)

// AuthHandler exposes the OAuth login flow and token endpoints.
type AuthHandler struct {
	auth        *service.AuthService
	oauthCfg    config.OAuthConfig
	frontendURL string
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, oauthCfg config.OAuthConfig, frontendURL string) *AuthHandler {
	return &AuthHandler{auth: authService, oauthCfg: oauthCfg, frontendURL: frontendURL}
}

// Login handles GET /auth/login: issue a state and bounce to the provider.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	authURL, err := h.auth.BeginLogin(c.UserContext())
	if err != nil {
		return err
	}
	return c.Redirect(authURL, http.StatusFound)
}

// Callback handles GET /auth/callback. On success the browser is sent back
// to the frontend carrying the session token; failures surface as JSON
// errors with the status codes the frontend translates into error pages.
func (h *AuthHandler) Callback(c *fiber.Ctx) error {
	state := c.Query("state")
	code := c.Query("code")

	token, _, err := h.auth.CompleteLogin(c.UserContext(), state, code)
	if err != nil {
		return err
	}

	return c.Redirect(h.frontendURL+"/auth/success?token="+url.QueryEscape(token), http.StatusFound)
}

// Verify handles POST /auth/verify.
func (h *AuthHandler) Verify(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	identity, err := h.auth.Verify(req.Token)
	if err != nil {
		return err
	}
	return c.JSON(dto.VerifyResponse{Valid: true, User: identity})
}

// Refresh handles POST /auth/refresh: re-mint a still-valid token.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.TokenRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Token == "" {
		return apperrors.NewValidationError("token required", nil)
	}

	token, expiresAt, err := h.auth.Refresh(req.Token)
	if err != nil {
		return err
	}
	return c.JSON(dto.TokenResponse{Token: token, ExpiresAt: expiresAt})
}

// Config handles GET /auth/config: non-secret configuration echo for
// troubleshooting provider setup.
func (h *AuthHandler) Config(c *fiber.Ctx) error {
	return c.JSON(dto.AuthConfigResponse{
		ClientID:    h.oauthCfg.ClientID,
		RedirectURI: h.oauthCfg.RedirectURI,
		AuthURL:     h.oauthCfg.AuthURL,
		TokenURL:    h.oauthCfg.TokenURL,
		Scope:       strings.Join(h.oauthCfg.Scopes, " "),
		FrontendURL: h.frontendURL,
	})
}

// Debug handles GET /auth/debug: count of pending login flows.
func (h *AuthHandler) Debug(c *fiber.Ctx) error {
	count, err := h.auth.PendingStates(c.UserContext())
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"stored_states_count": count})
}

// Clear handles POST /auth/clear: drop all pending login flows.
func (h *AuthHandler) Clear(c *fiber.Ctx) error {
	if err := h.auth.ClearStates(c.UserContext()); err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(fiber.Map{"message": "oauth states cleared", "success": true})
}
