package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fluxsave/fluxsave-go/apierr"
	"github.com/fluxsave/fluxsave-go/utils"
)

const (
	apiPrefix        = "/api/v1"
	defaultUserAgent = "fluxsave-go/0.1"
	defaultTimeout   = 30 * time.Second

	// cap on how much of an error body we slurp
	defaultErrCap = 8192
)

// Client talks to one Fluxsave deployment. Calls are synchronous, one HTTP
// request each, no retries. A Client is safe for concurrent use as long as
// SetCredentials is not racing in-flight calls.
type Client struct {
	BaseURL    string // normalized, no trailing slash
	UserAgent  string
	HTTPClient *http.Client

	apiKey    string
	apiSecret string
}

type Option func(*Client) error

// WithCredentials sets the API key/secret pair sent with every request.
func WithCredentials(key, secret string) Option {
	return func(c *Client) error {
		c.apiKey = key
		c.apiSecret = secret
		return nil
	}
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.HTTPClient = hc
		return nil
	}
}

// WithHTTPTimeout sets the per-request timeout on the underlying client.
func WithHTTPTimeout(d time.Duration) Option {
	return func(c *Client) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		c.HTTPClient.Timeout = d
		return nil
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) error {
		if strings.TrimSpace(ua) == "" {
			return errors.New("user agent must not be blank")
		}
		c.UserAgent = ua
		return nil
	}
}

// NewClient builds a client for the Fluxsave API at baseURL. The base URL
// is stored without a trailing slash; endpoint paths carry the /api/v1
// prefix themselves.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q", baseURL)
	}

	c := &Client{
		BaseURL:    base,
		UserAgent:  defaultUserAgent,
		HTTPClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// SetCredentials overwrites both halves of the credential pair at once.
// There is no partial update: key and secret always travel together.
func (c *Client) SetCredentials(key, secret string) {
	c.apiKey = key
	c.apiSecret = secret
}

// do issues one request and returns the decoded response body: a JSON
// object or array when the body parses, the raw text otherwise, nil when
// empty. Non-2xx responses come back as *apierr.APIError with a resolved
// taxonomy code; transport failures propagate wrapped, outside the
// taxonomy. When either credential is missing, do fails with 401
// UNAUTHORIZED before touching the network.
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) (any, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return nil, apierr.New(http.StatusUnauthorized, "API key and secret are required", nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("x-api-secret", c.apiSecret)
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil && contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		slurp, _ := io.ReadAll(io.LimitReader(resp.Body, defaultErrCap))
		return nil, apierr.Parse(slurp, resp.StatusCode)
	}

	slurp, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return utils.DecodeBody(slurp), nil
}
