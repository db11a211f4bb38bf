package dto

import (
	"time"

	"github.com/angaddubey10/oauth-demo/internal/domain"
)

// TokenRequest carries a session token for verify/refresh calls.
type TokenRequest struct {
	Token string `json:"token"`
}

// VerifyResponse reports a successful token verification.
type VerifyResponse struct {
	Valid bool            `json:"valid"`
	User  domain.Identity `json:"user"`
}

// TokenResponse returns a freshly minted session token.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthConfigResponse echoes the non-secret OAuth configuration.
type AuthConfigResponse struct {
	ClientID    string `json:"client_id"`
	RedirectURI string `json:"redirect_uri"`
	AuthURL     string `json:"auth_uri"`
	TokenURL    string `json:"token_uri"`
	Scope       string `json:"scope"`
	FrontendURL string `json:"frontend_url"`
}
