package collection

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/rijks/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Rijks/1.0"

	// PageSize is the fixed number of artworks requested per page
	PageSize = 10
)

// Ensure Client implements CollectionRepository at compile time.
var _ domain.CollectionRepository = (*Client)(nil)

// Client queries the Rijksmuseum collection API.
// It holds no mutable state after construction and is safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a new collection API client.
// baseURL is validated lazily: a bad value surfaces as domain.ErrInvalidURL
// from Fetch, before any network call.
func NewClient(baseURL, apiKey string, logger *slog.Logger, opts ...Option) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns one page of artworks. An empty query lists the whole
// collection. No retries are attempted.
func (c *Client) Fetch(ctx context.Context, page int, query string) (*domain.SearchPage, error) {
	reqURL, err := c.buildURL(page, query)
	if err != nil {
		c.logger.Error("collection request url", "error", err, "page", page)
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidURL, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	requestID := uuid.NewString()
	c.logger.Debug("collection request", "request_id", requestID, "page", page, "query", query)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("collection request failed", "request_id", requestID, "error", err)
		return nil, classifyTransportError(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return c.parsePage(resp.Body, requestID)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.logger.Warn("collection rate limited", "request_id", requestID)
		return nil, domain.ErrTooManyRequests
	case resp.StatusCode >= 500 && resp.StatusCode <= 599:
		c.logger.Error("collection server error", "request_id", requestID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: status %d", domain.ErrServerError, resp.StatusCode)
	default:
		c.logger.Error("collection unexpected status", "request_id", requestID, "status", resp.StatusCode)
		return nil, fmt.Errorf("%w: unexpected status %d", domain.ErrNetwork, resp.StatusCode)
	}
}

// buildURL assembles {base}/collection?key=&ps=&p=[&q=]
func (c *Client) buildURL(page int, query string) (string, error) {
	if page < 1 {
		return "", fmt.Errorf("page must be >= 1, got %d", page)
	}

	base, err := url.Parse(c.baseURL)
	if err != nil {
		return "", err
	}
	if !base.IsAbs() || base.Host == "" {
		return "", fmt.Errorf("base url %q is not absolute", c.baseURL)
	}

	u := base.JoinPath("collection")
	values := url.Values{}
	values.Set("key", c.apiKey)
	values.Set("ps", strconv.Itoa(PageSize))
	values.Set("p", strconv.Itoa(page))
	if query != "" {
		values.Set("q", query)
	}
	u.RawQuery = values.Encode()
	return u.String(), nil
}

// parsePage decodes a 200 body. An empty artObjects list is ErrNoData.
func (c *Client) parsePage(body io.Reader, requestID string) (*domain.SearchPage, error) {
	var payload collectionResponse
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		c.logger.Error("collection decode failed", "request_id", requestID, "error", err)
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrNetwork, err)
	}

	if len(payload.ArtObjects) == 0 {
		c.logger.Debug("collection returned no artworks", "request_id", requestID, "count", payload.Count)
		return nil, domain.ErrNoData
	}

	page := MapPage(payload)
	c.logger.Debug("collection page", "request_id", requestID, "items", len(page.Items), "total", page.TotalCount)
	return page, nil
}

// classifyTransportError maps a failed round trip to the fetch taxonomy
func classifyTransportError(err error) error {
	if isOffline(err) {
		return fmt.Errorf("%w: %w", domain.ErrNoInternet, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrNetwork, err)
}

// isOffline reports whether err means there is no usable network at all:
// name resolution failed or the network itself is unreachable.
func isOffline(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	return errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.ENETDOWN) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}
