// Package backend is the HTTP client for the search service: suggestions,
// search, corrections, and the classification extension endpoints.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Paintersrp/sift/internal/cache"
)

const maxErrorBody = 512

type Client struct {
	baseURL     string
	http        *http.Client
	logger      *log.Logger
	suggestions *cache.LRUCache[string, []string]
}

type Option func(*Client)

// WithTimeout sets the per-request timeout of the default http.Client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSuggestionCache keeps the last size suggestion responses keyed by the
// exact query. Zero disables caching.
func WithSuggestionCache(size int) Option {
	return func(c *Client) {
		if size > 0 {
			c.suggestions = cache.NewLRUCache[string, []string](size)
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// SetLogLevel adjusts the client's logger, which is a prefixed copy of the
// application logger and does not follow its level.
func (c *Client) SetLogLevel(level log.Level) {
	c.logger.SetLevel(level)
}

func (c *Client) Suggestions(ctx context.Context, query string) ([]string, error) {
	if c.suggestions != nil {
		if cached, ok := c.suggestions.Get(query); ok {
			c.logger.Debug("suggestion cache hit", "query", query)
			return append([]string(nil), cached...), nil
		}
	}

	var resp SuggestionsResponse
	if err := c.post(ctx, PathSuggestions, QueryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}

	suggestions := resp.Suggestions
	if suggestions == nil {
		suggestions = []string{}
	}
	if c.suggestions != nil {
		c.suggestions.Put(query, append([]string(nil), suggestions...))
		c.logger.Debug("suggestions cached", "query", query, "entries", c.suggestions.Len())
	}
	return suggestions, nil
}

func (c *Client) Search(ctx context.Context, req SearchRequest) (SearchResponse, error) {
	var resp SearchResponse
	if err := c.post(ctx, PathSearch, req, &resp); err != nil {
		return SearchResponse{}, err
	}
	if err := resp.Validate(); err != nil {
		return SearchResponse{}, parseErr(PathSearch, err)
	}
	return resp, nil
}

// Correction returns the backend's respelling of query. An empty string means
// the backend has nothing better to offer.
func (c *Client) Correction(ctx context.Context, query string) (string, error) {
	var resp CorrectionResponse
	if err := c.post(ctx, PathCorrections, QueryRequest{Query: query}, &resp); err != nil {
		return "", err
	}
	corrected := strings.TrimSpace(resp.CorrectedQuery)
	if corrected == query {
		return "", nil
	}
	return corrected, nil
}

func (c *Client) PredictClass(ctx context.Context, query string) (Classification, error) {
	var resp Classification
	if err := c.post(ctx, PathPredictClass, QueryRequest{Query: query}, &resp); err != nil {
		return Classification{}, err
	}
	return resp, nil
}

func (c *Client) Evaluate(ctx context.Context) (Evaluation, error) {
	var resp Evaluation
	if err := c.post(ctx, PathEvaluate, struct{}{}, &resp); err != nil {
		return Evaluation{}, err
	}
	return resp, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return transportErr(path, 0, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return transportErr(path, 0, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request", "path", path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(snippet))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return transportErr(path, resp.StatusCode, errors.New(msg))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return transportErr(path, resp.StatusCode, err)
		}
		return parseErr(path, err)
	}
	return nil
}
