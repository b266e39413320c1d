package warranty

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rmartell/inventra-backend/pkg/config"
	pkgerrors "github.com/rmartell/inventra-backend/pkg/errors"
)

const (
	loginPath                  = "/api/login"
	registerPath               = "/api/register-warranty"
	responseBodyReadLimit int64 = 4096
)

var errCredentialsRequired = errors.New("warranty service credentials are required")

// Client wraps the external warranty provider API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	password   string
}

// Option configures optional client behavior.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the configured provider base URL.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		trimmed := strings.TrimSpace(baseURL)
		if trimmed != "" {
			c.baseURL = trimmed
		}
	}
}

// NewClient builds the warranty provider client from configuration.
func NewClient(cfg config.WarrantyConfig, opts ...Option) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		return nil, errors.New("warranty base url is required")
	}
	if strings.TrimSpace(cfg.Username) == "" || cfg.Password == "" {
		return nil, errCredentialsRequired
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	client := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		username:   strings.TrimSpace(cfg.Username),
		password:   cfg.Password,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(client)
		}
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}

	return client, nil
}

// RegisterRequest is the payload forwarded to the provider.
type RegisterRequest struct {
	AssetID      string `json:"asset_id"`
	AssetName    string `json:"asset_name"`
	SerialNumber string `json:"serial_number"`
}

// Register authenticates against the provider and submits the warranty
// registration, returning the provider payload verbatim.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (map[string]any, error) {
	if c == nil {
		return nil, pkgerrors.New(pkgerrors.CodeExternal, "warranty client not configured")
	}
	if strings.TrimSpace(req.AssetID) == "" || strings.TrimSpace(req.SerialNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "asset id and serial number are required")
	}

	token, err := c.login(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExternal, err, "marshal warranty request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(registerPath), bytes.NewReader(payload))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExternal, err, "build warranty request")
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExternal, err, "execute warranty request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if resp.StatusCode != http.StatusOK {
		return nil, providerError(resp.StatusCode, body, "warranty registration failed")
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeExternal, err, "decode warranty response")
	}

	return result, nil
}

func (c *Client) login(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("username", c.username)
	form.Set("password", c.password)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.buildURL(loginPath), strings.NewReader(form.Encode()))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeExternal, err, "build warranty login request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeExternal, err, "execute warranty login request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, responseBodyReadLimit))
	if resp.StatusCode != http.StatusOK {
		return "", providerError(resp.StatusCode, body, "warranty login failed")
	}

	var loginResp struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &loginResp); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeExternal, err, "decode warranty login response")
	}
	if loginResp.AccessToken == "" {
		return "", pkgerrors.New(pkgerrors.CodeExternal, "warranty login returned empty token")
	}

	return loginResp.AccessToken, nil
}

// providerError carries the provider detail message through to the caller.
func providerError(status int, body []byte, msg string) error {
	err := pkgerrors.Wrap(
		pkgerrors.CodeExternal,
		fmt.Errorf("status %d: %s", status, strings.TrimSpace(string(body))),
		msg,
	)

	var payload struct {
		Detail string `json:"detail"`
	}
	if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && payload.Detail != "" {
		return err.WithDetails(map[string]string{"detail": payload.Detail})
	}
	return err
}

func (c *Client) buildURL(path string) string {
	trimmed := strings.TrimRight(c.baseURL, "/")
	path = strings.TrimLeft(path, "/")
	return fmt.Sprintf("%s/%s", trimmed, path)
}
