package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/thesavant42/repotablo/internal/logging"
	"github.com/thesavant42/repotablo/internal/models"
)

const (
	DefaultBaseURL = "https://api.github.com"
	DefaultTimeout = 30 * time.Second
	userAgent      = "repotablo/1.0"
	apiVersion     = "2022-11-28"
)

var (
	// ErrRateLimit is returned when GitHub refuses a request for rate limiting
	ErrRateLimit = errors.New("GitHub API rate limit exceeded")
	// ErrNotFound is returned for repositories that do not exist or are not visible
	ErrNotFound = errors.New("repository not found")
)

// APIError is any other non-2xx response
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GitHub API error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("GitHub API error (status %d): %s", e.StatusCode, e.Message)
}

// Client is a GitHub REST API client
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string // Optional: for authenticated requests (higher rate limits)
	logger     *log.Logger
	now        func() time.Time
}

// Option configures a Client
type Option func(*Client)

// WithTimeout sets the per-request timeout
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithLogger enables request logging
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l.WithPrefix("api")
		}
	}
}

// WithBaseURL points the client at another API root (GitHub Enterprise)
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(u, "/")
	}
}

// NewClient creates a new GitHub API client with a 30 second timeout
func NewClient(token string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		baseURL: DefaultBaseURL,
		token:   token,
		logger:  logging.Discard(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRepo fetches a single repository
func (c *Client) GetRepo(ctx context.Context, ref models.RepoRef) (models.Repo, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, url.PathEscape(ref.Owner), url.PathEscape(ref.Name))

	var repo models.Repository
	if err := c.getJSON(ctx, endpoint, &repo); err != nil {
		return models.Repo{}, err
	}
	return repo.ToRepo(ref), nil
}

// getJSON performs an authenticated GET and decodes the response into v
func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.logger.Error("Failed to create request", "url", endpoint, "error", err)
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Info("GET", "endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Request failed", "url", endpoint, "error", err)
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("Rate limit",
		"remaining", resp.Header.Get("X-RateLimit-Remaining"),
		"reset", resp.Header.Get("X-RateLimit-Reset"),
		"status", resp.StatusCode)

	if err := c.checkResponse(resp, endpoint); err != nil {
		return err
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// checkResponse maps non-2xx statuses to the package errors
func (c *Client) checkResponse(resp *http.Response, endpoint string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusNotFound {
		// Skipped by callers, which log it themselves
		c.logger.Debug("Not found", "url", endpoint)
		return ErrNotFound
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	message := errorMessage(body)
	c.logger.Error("API error", "status", resp.StatusCode, "url", endpoint, "response", message)

	if isRateLimited(resp, message) {
		if reset := c.resetTime(resp.Header.Get("X-RateLimit-Reset")); reset != "" {
			return fmt.Errorf("%w (resets %s)", ErrRateLimit, reset)
		}
		return ErrRateLimit
	}
	return &APIError{StatusCode: resp.StatusCode, Message: message, URL: endpoint}
}

func isRateLimited(resp *http.Response, message string) bool {
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return true
	case http.StatusForbidden:
		return resp.Header.Get("X-RateLimit-Remaining") == "0" ||
			strings.Contains(strings.ToLower(message), "rate limit")
	}
	return false
}

// resetTime renders the X-RateLimit-Reset epoch as a relative phrase
func (c *Client) resetTime(header string) string {
	secs, err := strconv.ParseInt(header, 10, 64)
	if err != nil || secs <= 0 {
		return ""
	}
	return models.Humanize(time.Unix(secs, 0), c.now())
}

// errorMessage extracts the "message" field of a GitHub error body
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}
