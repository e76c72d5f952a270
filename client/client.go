package client

import (
	"log/slog"
	"net/http"
	"time"

	ai "github.com/spetersoncode/gptrouter"
)

// DefaultTimeout is used when Config.Timeout is zero.
const DefaultTimeout = 60 * time.Second

// Config holds configuration for creating a router client.
type Config struct {
	// BaseURL is the router address. A trailing slash is ignored and the
	// /api prefix is added when it is missing.
	BaseURL string

	// APIKey is sent in the ws-secret header on every request.
	APIKey string

	// Timeout bounds a unary request, and each wait for data on a stream.
	// Zero means DefaultTimeout.
	Timeout time.Duration

	// DefaultMetadata is merged under call-site metadata on every generate call.
	DefaultMetadata ai.Metadata

	// HTTPClient is used for requests when set. When nil, every call builds
	// its own client on a fresh transport and releases it afterwards.
	HTTPClient *http.Client

	// Logger receives debug output. Nil discards it.
	Logger *slog.Logger

	// Events is an optional channel for receiving client operation events.
	// Events are sent non-blocking; if the channel is full, events are dropped.
	Events chan<- Event
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithEvents sets the event channel.
func WithEvents(ch chan<- Event) ClientOption {
	return func(c *Client) {
		c.events = ch
	}
}

// Client talks to a GPTRouter service. Its configuration is fixed at
// construction, so a Client is safe for concurrent use.
type Client struct {
	baseURL         string
	apiKey          string
	timeout         time.Duration
	defaultMetadata ai.Metadata
	httpClient      *http.Client
	logger          *slog.Logger
	events          chan<- Event
}

// New creates a client with the given configuration. Nothing is validated;
// a bad BaseURL surfaces as a transport error on the first call.
func New(cfg Config, opts ...ClientOption) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	c := &Client{
		baseURL:         cfg.BaseURL,
		apiKey:          cfg.APIKey,
		timeout:         timeout,
		defaultMetadata: cfg.DefaultMetadata.Clone(),
		httpClient:      cfg.HTTPClient,
		logger:          logger,
		events:          cfg.Events,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Timeout returns the effective request timeout.
func (c *Client) Timeout() time.Duration { return c.timeout }

// DefaultMetadata returns a copy of the default metadata.
func (c *Client) DefaultMetadata() ai.Metadata { return c.defaultMetadata.Clone() }
