package membersdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Client talks to the members service. Public endpoints are methods on
// Client; everything else goes through a Session.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client for the service at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Register creates a member account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*UserResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", body, headers)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusCreated); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResponse, error) {
	body, headers, err := jsonBody(LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, err
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/login", body, headers)
	if err != nil {
		return nil, err
	}

	var login LoginResponse
	if err := decodeJSON(resp, &login, http.StatusOK); err != nil {
		return nil, err
	}
	return &login, nil
}

// Authenticate logs in and wraps the token in a Session.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	login, err := c.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return c.NewSession(login.Token, login.ExpiresAt), nil
}

// Bootstrap creates the first administrator. It only succeeds while the
// service has no users.
func (c *Client) Bootstrap(ctx context.Context, token string, req BootstrapRequest) (*BootstrapResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}
	headers["X-Bootstrap-Token"] = token

	resp, err := c.doRequest(ctx, http.MethodPost, "/bootstrap", body, headers)
	if err != nil {
		return nil, err
	}

	var out BootstrapResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLiveness checks if the service is alive.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// GetReadiness checks if the service is ready.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

func (c *Client) health(ctx context.Context, path string) (*HealthResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var health HealthResponse
	if err := decodeJSON(resp, &health, http.StatusOK); err != nil {
		return nil, err
	}
	return &health, nil
}
