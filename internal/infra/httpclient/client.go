package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tgcs/experience-api/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

var ErrBodyTooLarge = errors.New("response body exceeds limit")

// Client fetches scraped pages.
type Client struct {
	HTTPClient   *http.Client
	UserAgent    string
	MaxBodyBytes int64
	Logger       *zap.Logger
}

// New creates a Client with OpenTelemetry instrumentation
func New(cfg *config.Config, log *zap.Logger) *Client {
	timeout := time.Duration(cfg.Scraper.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return &Client{
		HTTPClient: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		UserAgent:    cfg.Scraper.UserAgent,
		MaxBodyBytes: cfg.Scraper.MaxBodyBytes,
		Logger:       log,
	}
}

// Page is a fetched document.
type Page struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// Get fetches url and returns its body. Non-2xx responses are errors.
func (c *Client) Get(ctx context.Context, url string) (*Page, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	var body io.Reader = resp.Body
	if c.MaxBodyBytes > 0 {
		body = io.LimitReader(resp.Body, c.MaxBodyBytes+1)
	}
	respBody, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	if c.MaxBodyBytes > 0 && int64(len(respBody)) > c.MaxBodyBytes {
		return nil, ErrBodyTooLarge
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.Logger.Warn("get request failed",
			zap.String("url", url),
			zap.Int("status_code", resp.StatusCode))
		return nil, fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return &Page{
		URL:         url,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        respBody,
	}, nil
}
