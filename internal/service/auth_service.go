package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/angaddubey10/oauth-demo/internal/auth"
	"github.com/angaddubey10/oauth-demo/internal/config"
	"github.com/angaddubey10/oauth-demo/internal/domain"
	"github.com/angaddubey10/oauth-demo/internal/oauth"
	apperrors "github.com/angaddubey10/oauth-demo/pkg/util"
)

// AuthService coordinates the authorization-code flow: state issuance, code
// exchange, role resolution, and session-token minting.
type AuthService struct {
	provider oauth.Provider
	states   oauth.StateStore
	roles    domain.RoleMap
	tokens   *auth.TokenManager
	logger   *zap.Logger
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	Provider   oauth.Provider
	StateStore oauth.StateStore
	Tokens     *auth.TokenManager
	Logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		provider: deps.Provider,
		states:   deps.StateStore,
		roles:    cfg.Roles,
		tokens:   deps.Tokens,
		logger:   logger,
	}
}

// BeginLogin issues a fresh anti-forgery state and returns the provider
// authorization URL the browser should be redirected to.
func (s *AuthService) BeginLogin(ctx context.Context) (string, error) {
	state, err := s.states.Issue(ctx)
	if err != nil {
		return "", apperrors.NewInternalError(err)
	}
	s.logger.Debug("issued oauth state", zap.String("state", state))
	return s.provider.AuthCodeURL(state), nil
}

// CompleteLogin validates the callback, exchanges the code server-to-server,
// resolves the identity's role, and mints a session token. The state is
// consumed exactly once; a replay or an unknown value aborts the flow.
func (s *AuthService) CompleteLogin(ctx context.Context, state, code string) (string, time.Time, error) {
	if state == "" {
		return "", time.Time{}, apperrors.NewStateMismatch()
	}
	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	if !ok {
		s.logger.Warn("oauth state mismatch", zap.String("state", state))
		return "", time.Time{}, apperrors.NewStateMismatch()
	}

	if code == "" {
		return "", time.Time{}, apperrors.NewValidationError("authorization code required", nil)
	}

	providerToken, err := s.provider.Exchange(ctx, code)
	if err != nil {
		s.logger.Error("code exchange failed", zap.Error(err))
		return "", time.Time{}, apperrors.NewProviderUnreachable(err)
	}

	info, err := s.provider.UserInfo(ctx, providerToken)
	if err != nil {
		s.logger.Error("userinfo fetch failed", zap.Error(err))
		return "", time.Time{}, apperrors.NewProviderUnreachable(err)
	}

	identity := domain.Identity{
		Subject: info.Subject,
		Email:   info.Email,
		Name:    info.Name,
		Picture: info.Picture,
		Role:    s.roles.RoleFor(info.Email),
	}

	token, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}

	s.logger.Info("session token issued",
		zap.String("email", identity.Email),
		zap.String("role", string(identity.Role)),
	)
	return token, expiresAt, nil
}

// Verify validates a session token and returns the identity it asserts.
func (s *AuthService) Verify(token string) (domain.Identity, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			return domain.Identity{}, apperrors.NewTokenExpired()
		}
		return domain.Identity{}, apperrors.NewUnauthorized("invalid token")
	}
	return claims.Identity(), nil
}

// Refresh re-mints a token with a fresh expiry for a currently valid one.
func (s *AuthService) Refresh(token string) (string, time.Time, error) {
	identity, err := s.Verify(token)
	if err != nil {
		return "", time.Time{}, err
	}
	fresh, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return "", time.Time{}, apperrors.NewInternalError(err)
	}
	return fresh, expiresAt, nil
}

// PendingStates reports how many login flows are in flight.
func (s *AuthService) PendingStates(ctx context.Context) (int, error) {
	return s.states.Count(ctx)
}

// ClearStates drops all pending login flows.
func (s *AuthService) ClearStates(ctx context.Context) error {
	return s.states.Clear(ctx)
}
