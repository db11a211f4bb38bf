package oauth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angaddubey10/oauth-demo/internal/config"
)

func newFakeIdP(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.FormValue("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-access-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-access-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"sub":"1234567890","email":"x@example.com","email_verified":true,"name":"Some User","picture":"https://example.com/p.png"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) Provider {
	return NewProvider(config.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURI:  "http://localhost:5001/auth/callback",
		AuthURL:      srv.URL + "/authorize",
		TokenURL:     srv.URL + "/token",
		UserInfoURL:  srv.URL + "/userinfo",
		Scopes:       []string{"openid", "email", "profile"},
	})
}

func TestAuthCodeURL(t *testing.T) {
	srv := newFakeIdP(t)
	provider := newTestProvider(srv)

	raw := provider.AuthCodeURL("the-state")
	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	query := parsed.Query()
	assert.Equal(t, "the-state", query.Get("state"))
	assert.Equal(t, "client-id", query.Get("client_id"))
	assert.Equal(t, "http://localhost:5001/auth/callback", query.Get("redirect_uri"))
	assert.Equal(t, "code", query.Get("response_type"))
	assert.Equal(t, "consent", query.Get("prompt"))
	assert.Equal(t, "offline", query.Get("access_type"))
	assert.Contains(t, query.Get("scope"), "email")
}

func TestExchangeAndUserInfo(t *testing.T) {
	srv := newFakeIdP(t)
	provider := newTestProvider(srv)
	ctx := context.Background()

	token, err := provider.Exchange(ctx, "good-code")
	require.NoError(t, err)
	assert.Equal(t, "provider-access-token", token.AccessToken)

	info, err := provider.UserInfo(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "1234567890", info.Subject)
	assert.Equal(t, "x@example.com", info.Email)
	assert.True(t, info.EmailVerified)
}

func TestExchangeRejectedCode(t *testing.T) {
	srv := newFakeIdP(t)
	provider := newTestProvider(srv)

	_, err := provider.Exchange(context.Background(), "bad-code")
	assert.Error(t, err)
}
