package frontend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angaddubey10/oauth-demo/internal/config"
)

func TestVerifyToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/verify", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var req struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		if req.Token != "good-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"valid":true,"user":{"sub":"sub-1","email":"x@example.com","name":"Some User","role":"user"}}`))
	}))
	defer srv.Close()

	client := NewClient(config.ServicesConfig{AuthServiceURL: srv.URL}, 5*time.Second)

	identity, err := client.VerifyToken(context.Background(), "good-token")
	require.NoError(t, err)
	assert.Equal(t, "x@example.com", identity.Email)

	_, err = client.VerifyToken(context.Background(), "bad-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenBackendDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(config.ServicesConfig{AuthServiceURL: srv.URL}, 5*time.Second)

	_, err := client.VerifyToken(context.Background(), "any")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidToken)
}

func TestFetchResourceRelaysStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))
		if r.URL.Path == "/resources/admin" {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"FORBIDDEN","message":"admin access required"}}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"success"}`))
	}))
	defer srv.Close()

	client := NewClient(config.ServicesConfig{ResourceServiceURL: srv.URL}, 5*time.Second)

	status, body, err := client.FetchResource(context.Background(), "/resources/user", "session-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"success"}`, string(body))

	status, body, err = client.FetchResource(context.Background(), "/resources/admin", "session-token")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Contains(t, string(body), "FORBIDDEN")
}
