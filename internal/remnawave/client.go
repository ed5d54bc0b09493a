package remnawave

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go_vpnadmin/internal/orchestrator"
)

// Client talks to the RemnaWave panel REST API. One instance is constructed
// at process start and shared by every orchestrator call.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewClient creates a panel client with bearer-token auth
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateIdentity creates a panel user with the given expiry
func (c *Client) CreateIdentity(ctx context.Context, username string, expiresAt time.Time) (*orchestrator.RemoteIdentity, error) {
	body := createUserRequest{
		Username: username,
		Status:   "ACTIVE",
		ExpireAt: expiresAt.UTC(),
	}
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users", body, &env); err != nil {
		return nil, err
	}
	return identityFrom(env.Response), nil
}

// DeleteIdentity removes the panel user
func (c *Client) DeleteIdentity(ctx context.Context, remoteUUID string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+remoteUUID, nil, nil)
}

// Disable cuts the user's VPN access on the panel
func (c *Client) Disable(ctx context.Context, remoteUUID string) (*orchestrator.RemoteIdentity, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users/"+remoteUUID+"/actions/disable", nil, &env); err != nil {
		return nil, err
	}
	return identityFrom(env.Response), nil
}

// Enable restores the user's VPN access on the panel
func (c *Client) Enable(ctx context.Context, remoteUUID string) (*orchestrator.RemoteIdentity, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users/"+remoteUUID+"/actions/enable", nil, &env); err != nil {
		return nil, err
	}
	return identityFrom(env.Response), nil
}

// SetExpiry pushes a new subscription expiry to the panel
func (c *Client) SetExpiry(ctx context.Context, remoteUUID string, expiresAt time.Time) (*orchestrator.RemoteIdentity, error) {
	body := updateUserRequest{
		UUID:     remoteUUID,
		ExpireAt: expiresAt.UTC(),
	}
	var env userEnvelope
	if err := c.do(ctx, http.MethodPatch, "/api/users", body, &env); err != nil {
		return nil, err
	}
	return identityFrom(env.Response), nil
}

// FetchProfile downloads the subscription config bundle for a short UUID.
// The panel serves it as an opaque base64 body, not a JSON envelope.
func (c *Client) FetchProfile(ctx context.Context, shortUUID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/sub/"+shortUUID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch subscription: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("panel returned status %d: %s", resp.StatusCode, string(raw))
	}
	return string(raw), nil
}

// RotateProfile revokes the user's subscription, generating a new short UUID
// and subscription URL. The previous config stops working.
func (c *Client) RotateProfile(ctx context.Context, remoteUUID string) (*orchestrator.RemoteIdentity, error) {
	var env userEnvelope
	if err := c.do(ctx, http.MethodPost, "/api/users/"+remoteUUID+"/actions/revoke", struct{}{}, &env); err != nil {
		return nil, err
	}
	return identityFrom(env.Response), nil
}

// do sends one JSON request to the panel and decodes the response into out
// when out is non-nil. Any non-2xx status is an error carrying the body text.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to panel: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("panel returned status %d: %s", resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func identityFrom(u userResponse) *orchestrator.RemoteIdentity {
	return &orchestrator.RemoteIdentity{
		RemoteUUID:      u.UUID,
		ShortUUID:       u.ShortUUID,
		SubscriptionURL: u.SubscriptionURL,
		Status:          u.Status,
	}
}
