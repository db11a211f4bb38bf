package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"go.uber.org/zap"

	"github.com/angaddubey10/oauth-demo/internal/domain"
	"github.com/angaddubey10/oauth-demo/internal/frontend"
	apperrors "github.com/angaddubey10/oauth-demo/pkg/util"
)

const (
	sessionTokenKey = "token"
	sessionUserKey  = "user"
)

// loginErrorMessages translates error query params into user-facing text.
var loginErrorMessages = map[string]string{
	"state_mismatch":        "Authentication failed due to security check. Please try again.",
	"no_code":               "Authentication was cancelled or failed.",
	"no_token":              "Authentication did not return a token.",
	"token_exchange_failed": "Failed to complete authentication with the identity provider.",
	"invalid_token":         "Authentication token is invalid.",
	"session_expired":       "Your session has expired. Please sign in again.",
	"auth_service_error":    "The authentication service is unavailable.",
	"internal_error":        "An internal error occurred during authentication.",
}

// FrontendHandler serves the browser-facing pages and the API proxies.
type FrontendHandler struct {
	sessions       *session.Store
	backend        *frontend.Client
	authServiceURL string
	logger         *zap.Logger
}

// NewFrontendHandler constructs handler.
func NewFrontendHandler(sessions *session.Store, backend *frontend.Client, authServiceURL string, logger *zap.Logger) *FrontendHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FrontendHandler{sessions: sessions, backend: backend, authServiceURL: authServiceURL, logger: logger}
}

// Index redirects based on authentication status.
func (h *FrontendHandler) Index(c *fiber.Ctx) error {
	token := h.sessionToken(c)
	if token != "" {
		if _, err := h.backend.VerifyToken(c.UserContext(), token); err == nil {
			return c.Redirect("/dashboard", http.StatusFound)
		}
	}
	return c.Redirect("/login", http.StatusFound)
}

// Login renders the login page, translating error codes from the query.
func (h *FrontendHandler) Login(c *fiber.Ctx) error {
	errorBlock := ""
	if msg, ok := loginErrorMessages[c.Query("error")]; ok {
		errorBlock = fmt.Sprintf(`<p class="error">%s</p>`, html.EscapeString(msg))
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>OAuth Demo - Login</title></head>
<body>
<h1>OAuth Demo</h1>
%s<p><a href="/auth/initiate">Sign in</a></p>
</body>
</html>`, errorBlock)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// Initiate bounces the browser to the auth service's login endpoint.
func (h *FrontendHandler) Initiate(c *fiber.Ctx) error {
	return c.Redirect(h.authServiceURL+"/auth/login", http.StatusFound)
}

// AuthSuccess receives the token from the auth-service redirect, verifies it,
// and stores it in the browser session.
func (h *FrontendHandler) AuthSuccess(c *fiber.Ctx) error {
	token := c.Query("token")
	if token == "" {
		return c.Redirect("/login?error=no_token", http.StatusFound)
	}

	identity, err := h.backend.VerifyToken(c.UserContext(), token)
	if err != nil {
		if errors.Is(err, frontend.ErrInvalidToken) {
			return c.Redirect("/login?error=invalid_token", http.StatusFound)
		}
		h.logger.Error("token verification failed", zap.Error(err))
		return c.Redirect("/login?error=auth_service_error", http.StatusFound)
	}

	sess, err := h.sessions.Get(c)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	userJSON, err := json.Marshal(identity)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	sess.Set(sessionTokenKey, token)
	sess.Set(sessionUserKey, userJSON)
	if err := sess.Save(); err != nil {
		return apperrors.NewInternalError(err)
	}

	return c.Redirect("/dashboard", http.StatusFound)
}

// Dashboard renders the signed-in landing page, re-verifying the session
// token so an expired session bounces back to login.
func (h *FrontendHandler) Dashboard(c *fiber.Ctx) error {
	token := h.sessionToken(c)
	if token == "" {
		return c.Redirect("/login", http.StatusFound)
	}

	identity, err := h.backend.VerifyToken(c.UserContext(), token)
	if err != nil {
		h.clearSession(c)
		return c.Redirect("/login?error=session_expired", http.StatusFound)
	}

	adminBlock := ""
	if identity.Role == domain.RoleAdmin {
		adminBlock = `<li><a href="/api/admin/resources">Admin resources</a></li>
<li><a href="/api/admin/stats">System stats</a></li>
<li><a href="/api/admin/users">User directory</a></li>`
	}

	page := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><title>OAuth Demo - Dashboard</title></head>
<body>
<h1>Welcome, %s</h1>
<p>%s (%s)</p>
<ul>
<li><a href="/api/user/resources">My resources</a></li>
<li><a href="/api/user/profile">My profile</a></li>
%s</ul>
<p><a href="/logout">Logout</a></p>
</body>
</html>`,
		html.EscapeString(identity.Name),
		html.EscapeString(identity.Email),
		html.EscapeString(string(identity.Role)),
		adminBlock,
	)

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(page)
}

// Logout clears the session and returns to the login page.
func (h *FrontendHandler) Logout(c *fiber.Ctx) error {
	h.clearSession(c)
	return c.Redirect("/login", http.StatusFound)
}

// UserResources proxies GET /api/user/resources.
func (h *FrontendHandler) UserResources(c *fiber.Ctx) error {
	return h.proxy(c, "/resources/user")
}

// AdminResources proxies GET /api/admin/resources.
func (h *FrontendHandler) AdminResources(c *fiber.Ctx) error {
	return h.proxy(c, "/resources/admin")
}

// Profile proxies GET /api/user/profile.
func (h *FrontendHandler) Profile(c *fiber.Ctx) error {
	return h.proxy(c, "/user/profile")
}

// Stats proxies GET /api/admin/stats.
func (h *FrontendHandler) Stats(c *fiber.Ctx) error {
	return h.proxy(c, "/admin/stats")
}

// Users proxies GET /api/admin/users.
func (h *FrontendHandler) Users(c *fiber.Ctx) error {
	return h.proxy(c, "/admin/users")
}

// proxy forwards a resource-service call with the session token as a bearer
// credential, relaying the upstream status and body.
func (h *FrontendHandler) proxy(c *fiber.Ctx, path string) error {
	token := h.sessionToken(c)
	if token == "" {
		return apperrors.NewUnauthorized("not signed in")
	}

	status, body, err := h.backend.FetchResource(c.UserContext(), path, token)
	if err != nil {
		h.logger.Error("resource service call failed", zap.String("path", path), zap.Error(err))
		return apperrors.NewDomainError("UPSTREAM_UNREACHABLE", "resource service request failed", http.StatusBadGateway, nil)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(status).Send(body)
}

func (h *FrontendHandler) sessionToken(c *fiber.Ctx) string {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return ""
	}
	token, _ := sess.Get(sessionTokenKey).(string)
	return token
}

func (h *FrontendHandler) clearSession(c *fiber.Ctx) {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return
	}
	if err := sess.Destroy(); err != nil {
		h.logger.Warn("failed to destroy session", zap.Error(err))
	}
}
