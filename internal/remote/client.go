package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/andy/rosterdash/internal/domain"
)

// maxErrorBody caps how much of a failed response is kept for diagnostics
const maxErrorBody = 512

// Client talks to the roster REST endpoint. Every call is a single request
// with no retry; callers decide what a failure means.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a client for the endpoint rooted at baseURL (e.g. http://localhost:4090)
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List fetches every client. A payload that decodes but breaks the data
// model (invalid fields, empty or repeated ids) is a TransportError too.
func (c *Client) List(ctx context.Context) ([]domain.Client, error) {
	var clients []domain.Client
	status, err := c.do(ctx, "list", http.MethodGet, "/clients", nil, &clients)
	if err != nil {
		return nil, err
	}
	if err := checkRoster(clients); err != nil {
		return nil, &TransportError{Op: "list", StatusCode: status, Err: fmt.Errorf("decode response: %w", err)}
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	return clients, nil
}

func checkRoster(clients []domain.Client) error {
	seen := make(map[string]struct{}, len(clients))
	for i, cl := range clients {
		if err := cl.Validate(); err != nil {
			return fmt.Errorf("client %d: %w", i, err)
		}
		if _, dup := seen[cl.ID]; dup {
			return fmt.Errorf("client %d: duplicate id %q", i, cl.ID)
		}
		seen[cl.ID] = struct{}{}
	}
	return nil
}

// Create submits a fully formed client, id and registered included
func (c *Client) Create(ctx context.Context, client domain.Client) (domain.Client, error) {
	var created domain.Client
	if _, err := c.do(ctx, "create", http.MethodPost, "/clients", client, &created); err != nil {
		return domain.Client{}, err
	}
	return created, nil
}

// Update sends a partial update and returns the merged client
func (c *Client) Update(ctx context.Context, id string, patch domain.ClientPatch) (domain.Client, error) {
	var updated domain.Client
	status, err := c.do(ctx, "update", http.MethodPatch, clientPath(id), patch, &updated)
	if status == http.StatusNotFound {
		return domain.Client{}, &NotFoundError{Op: "update", ID: id}
	}
	if err != nil {
		return domain.Client{}, err
	}
	return updated, nil
}

// Delete removes a client
func (c *Client) Delete(ctx context.Context, id string) error {
	status, err := c.do(ctx, "delete", http.MethodDelete, clientPath(id), nil, nil)
	if status == http.StatusNotFound {
		return &NotFoundError{Op: "delete", ID: id}
	}
	return err
}

func clientPath(id string) string {
	return "/clients/" + url.PathEscape(id)
}

// do performs one request. It returns the response status (0 if none) so
// callers can map specific statuses before the generic transport error.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, &TransportError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("remote request failed", "op", op, "method", method, "path", path, "error", err)
		return 0, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	c.logger.Debug("remote request", "op", op, "method", method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		msg := strings.TrimSpace(string(data))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return resp.StatusCode, &TransportError{
			Op:         op,
			StatusCode: resp.StatusCode,
			Err:        errors.New(msg),
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &TransportError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("decode response: %w", err)}
	}
	return resp.StatusCode, nil
}
