// Package api provides the client for the chat Response Service.
package api

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"github.com/rs/zerolog"

	"github.com/diogo/chatwidget/internal/models"
)

// ChatClientInterface is the surface of the Response Service used by the
// controller and the CLI.
type ChatClientInterface interface {
	Send(ctx context.Context, requestID, message string) (*models.Reply, error)
	Health(ctx context.Context) error
	Endpoint() string
	Close()
}

// Ensure Client implements ChatClientInterface
var _ ChatClientInterface = (*Client)(nil)

// Client talks to the backend over a single request/response exchange per turn
type Client struct {
	httpClient     tls_client.HttpClient
	baseURL        string
	userAgent      string
	timeoutSeconds int
	logger         zerolog.Logger
	mu             sync.RWMutex
	closed         bool
}

// ClientOption is a function that configures the client
type ClientOption func(*Client)

// WithTimeout sets a per-request timeout in seconds. Zero means no timeout.
func WithTimeout(seconds int) ClientOption {
	return func(c *Client) {
		c.timeoutSeconds = seconds
	}
}

// WithHTTPClient replaces the underlying transport, mostly for tests
func WithHTTPClient(httpClient tls_client.HttpClient) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the diagnostic logger
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger.With().Str("component", "api").Logger()
	}
}

// WithUserAgent overrides the User-Agent header
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a Client for the backend rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("endpoint cannot be empty")
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("endpoint must start with http:// or https://: %s", baseURL)
	}

	client := &Client{
		baseURL:   baseURL,
		userAgent: "chatwidget/" + Version,
		logger:    zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		options := []tls_client.HttpClientOption{
			tls_client.WithTimeoutSeconds(client.timeoutSeconds),
			tls_client.WithClientProfile(profiles.Chrome_120),
			tls_client.WithNotFollowRedirects(),
		}

		httpClient, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
		if err != nil {
			return nil, fmt.Errorf("failed to create HTTP client: %w", err)
		}
		client.httpClient = httpClient
	}

	return client, nil
}

// Version is reported in the User-Agent header (set at build time)
var Version = "0.1.0"

// Endpoint returns the backend base URL
func (c *Client) Endpoint() string {
	return c.baseURL
}

// url joins the base URL with an endpoint path
func (c *Client) url(path string) string {
	return c.baseURL + path
}

// Close releases idle connections. Further calls fail.
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.httpClient.CloseIdleConnections()
}

// IsClosed returns whether the client is closed
func (c *Client) IsClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}
