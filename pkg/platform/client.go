package platform

// Client is a thin REST client over the commerce platform's Storefront API.
// It deliberately exposes flattened, agent-friendly shapes rather than the
// raw API payloads; tool handlers serialize these structs verbatim.

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	siteID     string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient constructs a client for the given API origin and site.  No I/O
// happens here; the access token is wired in later via SetToken.
func NewClient(baseURL, siteID string) *Client {
	c := &Client{
		baseURL: baseURL,
		siteID:  siteID,
	}
	c.httpClient = &http.Client{
		Timeout: 10 * time.Second,
		Transport: authRoundTripper{
			base:  http.DefaultTransport,
			token: c.currentToken,
		},
	}
	return c
}

// SetToken installs or replaces the bearer token used for every subsequent
// request.  Safe to call at any time, including before the first request.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// authRoundTripper adds auth and correlation headers right before the request
// is sent, so a token injected after construction is picked up transparently.
type authRoundTripper struct {
	base  http.RoundTripper
	token func() string
}

func (rt authRoundTripper) RoundTrip(r *http.Request) (*http.Response, error) {
	if tok := rt.token(); tok != "" {
		r.Header.Set("Authorization", "Bearer "+tok)
	}
	r.Header.Set("X-Request-Id", uuid.NewString())
	return rt.base.RoundTrip(r)
}

// get issues a GET against path with the given query values and decodes the
// JSON response into out.
func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// post issues a POST with a JSON body and decodes the response into out.
func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.siteID != "" {
		req.Header.Set("X-Site-Id", c.siteID)
	}

	log.Debug("platform request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach platform: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return &APIError{Status: resp.StatusCode, Body: string(raw), Path: path}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode platform response: %w", err)
	}
	return nil
}

func limitQuery(limit int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	return q
}
