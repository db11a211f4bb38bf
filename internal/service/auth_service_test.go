package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/angaddubey10/oauth-demo/internal/auth"
	"github.com/angaddubey10/oauth-demo/internal/config"
	"github.com/angaddubey10/oauth-demo/internal/domain"
	oauthflow "github.com/angaddubey10/oauth-demo/internal/oauth"
	apperrors "github.com/angaddubey10/oauth-demo/pkg/util"
)

type fakeProvider struct {
	info        oauthflow.UserInfo
	exchangeErr error
	userInfoErr error
	lastCode    string
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.example.com/authorize?state=" + state
}

func (f *fakeProvider) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	f.lastCode = code
	return &oauth2.Token{AccessToken: "provider-access-token"}, nil
}

func (f *fakeProvider) UserInfo(_ context.Context, _ *oauth2.Token) (*oauthflow.UserInfo, error) {
	if f.userInfoErr != nil {
		return nil, f.userInfoErr
	}
	info := f.info
	return &info, nil
}

func newTestAuthService(t *testing.T, provider *fakeProvider) (*AuthService, oauthflow.StateStore, *auth.TokenManager) {
	t.Helper()

	states := oauthflow.NewMemoryStateStore(time.Minute)
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	cfg := config.Config{
		Roles: domain.RoleMap{"admin@example.com": domain.RoleAdmin},
	}

	svc := NewAuthService(cfg, AuthDependencies{
		Provider:   provider,
		StateStore: states,
		Tokens:     tokens,
	})
	return svc, states, tokens
}

func TestBeginLoginIssuesState(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newTestAuthService(t, &fakeProvider{})

	authURL, err := svc.BeginLogin(ctx)
	require.NoError(t, err)
	assert.Contains(t, authURL, "https://provider.example.com/authorize?state=")

	count, err := states.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestCompleteLoginAdminMapping(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{info: oauthflow.UserInfo{
		Subject: "sub-1",
		Email:   "admin@example.com",
		Name:    "Admin User",
	}}
	svc, states, tokens := newTestAuthService(t, provider)

	state, err := states.Issue(ctx)
	require.NoError(t, err)

	token, expiresAt, err := svc.CompleteLogin(ctx, state, "auth-code")
	require.NoError(t, err)
	assert.Equal(t, "auth-code", provider.lastCode)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "sub-1", claims.Subject)
}

func TestCompleteLoginUnmappedDefaultsToUser(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{info: oauthflow.UserInfo{
		Subject: "sub-2",
		Email:   "x@example.com",
		Name:    "Unmapped User",
	}}
	svc, states, tokens := newTestAuthService(t, provider)

	state, err := states.Issue(ctx)
	require.NoError(t, err)

	token, _, err := svc.CompleteLogin(ctx, state, "auth-code")
	require.NoError(t, err)

	claims, err := tokens.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestCompleteLoginStateMismatch(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestAuthService(t, &fakeProvider{})

	_, _, err := svc.CompleteLogin(ctx, "never-issued", "auth-code")
	require.Error(t, err)
	assert.Equal(t, "STATE_MISMATCH", apperrors.ToDomainError(err).Code)
}

func TestCompleteLoginStateReplay(t *testing.T) {
	ctx := context.Background()
	provider := &fakeProvider{info: oauthflow.UserInfo{Subject: "sub", Email: "x@example.com"}}
	svc, states, _ := newTestAuthService(t, provider)

	state, err := states.Issue(ctx)
	require.NoError(t, err)

	_, _, err = svc.CompleteLogin(ctx, state, "auth-code")
	require.NoError(t, err)

	_, _, err = svc.CompleteLogin(ctx, state, "auth-code")
	require.Error(t, err)
	assert.Equal(t, "STATE_MISMATCH", apperrors.ToDomainError(err).Code)
}

func TestCompleteLoginMissingCode(t *testing.T) {
	ctx := context.Background()
	svc, states, _ := newTestAuthService(t, &fakeProvider{})

	state, err := states.Issue(ctx)
	require.NoError(t, err)

	_, _, err = svc.CompleteLogin(ctx, state, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", apperrors.ToDomainError(err).Code)
}

func TestCompleteLoginProviderFailure(t *testing.T) {
	ctx := context.Background()

	for _, provider := range []*fakeProvider{
		{exchangeErr: errors.New("token endpoint down")},
		{userInfoErr: errors.New("userinfo endpoint down")},
	} {
		svc, states, _ := newTestAuthService(t, provider)

		state, err := states.Issue(ctx)
		require.NoError(t, err)

		_, _, err = svc.CompleteLogin(ctx, state, "auth-code")
		require.Error(t, err)
		assert.Equal(t, "PROVIDER_UNREACHABLE", apperrors.ToDomainError(err).Code)
	}
}

func TestVerify(t *testing.T) {
	svc, _, tokens := newTestAuthService(t, &fakeProvider{})

	token, _, err := tokens.Issue(domain.Identity{Subject: "sub", Email: "x@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	identity, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", identity.Email)
	assert.Equal(t, domain.RoleUser, identity.Role)

	_, err = svc.Verify("garbage")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperrors.ToDomainError(err).Code)
}

func TestVerifyExpired(t *testing.T) {
	svc, _, _ := newTestAuthService(t, &fakeProvider{})

	expiring := auth.NewTokenManager("test-secret", time.Millisecond)
	token, _, err := expiring.Issue(domain.Identity{Subject: "sub", Email: "x@example.com", Role: domain.RoleUser})
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, err = svc.Verify(token)
	require.Error(t, err)
	assert.Equal(t, "TOKEN_EXPIRED", apperrors.ToDomainError(err).Code)
}

func TestRefresh(t *testing.T) {
	svc, _, tokens := newTestAuthService(t, &fakeProvider{})

	token, _, err := tokens.Issue(domain.Identity{Subject: "sub", Email: "admin@example.com", Role: domain.RoleAdmin})
	require.NoError(t, err)

	fresh, expiresAt, err := svc.Refresh(token)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := tokens.Parse(fresh)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "admin@example.com", claims.Email)
}
