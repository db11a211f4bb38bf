package frontend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/angaddubey10/oauth-demo/internal/api/dto"
	"github.com/angaddubey10/oauth-demo/internal/config"
	"github.com/angaddubey10/oauth-demo/internal/domain"
)

// ErrInvalidToken reports that the auth service rejected the session token.
var ErrInvalidToken = errors.New("invalid or expired token")

// Client calls the auth and resource services on the user's behalf.
type Client struct {
	httpClient   *http.Client
	authBase     string
	resourceBase string
}

// NewClient builds a backend client from the configured service URLs.
func NewClient(cfg config.ServicesConfig, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		authBase:     cfg.AuthServiceURL,
		resourceBase: cfg.ResourceServiceURL,
	}
}

// VerifyToken asks the auth service to validate a session token and returns
// the identity it asserts.
func (c *Client) VerifyToken(ctx context.Context, token string) (*domain.Identity, error) {
	payload, err := json.Marshal(dto.TokenRequest{Token: token})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authBase+"/auth/verify", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service call failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var verified dto.VerifyResponse
		if err := json.NewDecoder(resp.Body).Decode(&verified); err != nil {
			return nil, err
		}
		if !verified.Valid {
			return nil, ErrInvalidToken
		}
		return &verified.User, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, ErrInvalidToken
	default:
		return nil, fmt.Errorf("auth service call failed: status %d", resp.StatusCode)
	}
}

// RefreshToken asks the auth service for a re-minted token.
func (c *Client) RefreshToken(ctx context.Context, token string) (*dto.TokenResponse, error) {
	payload, err := json.Marshal(dto.TokenRequest{Token: token})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authBase+"/auth/refresh", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth service call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidToken
	}

	var refreshed dto.TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&refreshed); err != nil {
		return nil, err
	}
	return &refreshed, nil
}

// FetchResource proxies a GET to the resource service with the session token
// as a bearer credential, relaying status and body untouched.
func (c *Client) FetchResource(ctx context.Context, path, token string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.resourceBase+path, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("resource service call failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, body, nil
}
