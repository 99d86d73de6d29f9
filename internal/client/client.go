package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ChaseHampton/goobituaries/internal/config"
)

type Client struct {
	httpClient *http.Client
	userAgent  string
}

type Response struct {
	StatusCode int
	Body       []byte
	Headers    http.Header
	Duration   time.Duration
}

// StatusError is returned by GetOK for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

func NewClient(cfg *config.HTTPConfig) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:    cfg.MaxIdleConns,
				MaxConnsPerHost: cfg.MaxConnsPerHost,
				IdleConnTimeout: cfg.IdleConnTimeout,
			},
		},
		userAgent: cfg.UserAgent,
	}
}

func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	return c.makeRequest(ctx, http.MethodGet, url, nil)
}

// GetOK is Get that treats any non-2xx status as an error.
func (c *Client) GetOK(ctx context.Context, url string) (*Response, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

func (c *Client) makeRequest(ctx context.Context, method, url string, body io.Reader) (*Response, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       responseBody,
		Duration:   time.Since(start),
	}, nil
}
