package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PattyWambere/KapeeFrontend/internal/storage"
	"github.com/PattyWambere/KapeeFrontend/internal/util"

	"go.uber.org/zap"
)

// Error is a non-success response from the remote API, carried to the caller
// unmodified so the initiating view can present the server's message.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is an authorization failure.
func IsUnauthorized(err error) bool {
	apiErr, ok := err.(*Error)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// Client issues requests against the remote storefront API. Every request
// carries the stored session token as a bearer credential if one exists;
// every 401 response discards the stored token so subsequent authenticated
// calls fail fast. No retries and no client-side timeout policy: failures
// propagate to the caller, deadlines come from the caller's context.
type Client struct {
	baseURL string
	httpc   *http.Client
	state   storage.StateStore
	logger  *zap.Logger
}

// NewClient creates a client for the API rooted at baseURL (e.g.
// "http://localhost:8008/api"). The state store holds the session token.
func NewClient(baseURL string, state storage.StateStore) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{},
		state:   state,
		logger:  util.GetLogger(),
	}
}

// Token returns the persisted session token, if any.
func (c *Client) Token() (string, bool) {
	raw, err := c.state.Get(storage.KeyToken)
	if err != nil || len(raw) == 0 {
		return "", false
	}
	var tok string
	if err := json.Unmarshal(raw, &tok); err != nil {
		return "", false
	}
	return tok, tok != ""
}

// SetToken persists the session token.
func (c *Client) SetToken(token string) error {
	raw, _ := json.Marshal(token)
	return c.state.Set(storage.KeyToken, raw)
}

// ClearToken erases the persisted session token.
func (c *Client) ClearToken() error {
	return c.state.Delete(storage.KeyToken)
}

// do issues a JSON request and decodes a JSON response into out (out may be
// nil when the body is irrelevant).
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.send(req, path, out)
}

// upload issues a multipart request with a single file field.
func (c *Client) upload(ctx context.Context, path, field, filename string, file io.Reader, out interface{}) error {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("failed to read upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return c.send(req, path, out)
}

func (c *Client) send(req *http.Request, path string, out interface{}) error {
	ctx, span := util.StartSpan(req.Context(), "api."+req.Method+" "+routeLabel(path))
	defer span.End()
	req = req.WithContext(ctx)

	if token, ok := c.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpc.Do(req)
	util.APIRequestDuration.WithLabelValues(req.Method, routeLabel(path)).Observe(time.Since(start).Seconds())
	if err != nil {
		util.APIRequestsTotal.WithLabelValues(req.Method, routeLabel(path), "transport_error").Inc()
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	util.APIRequestsTotal.WithLabelValues(req.Method, routeLabel(path), strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode == http.StatusUnauthorized {
		util.AuthFailuresTotal.Inc()
		if err := c.ClearToken(); err != nil {
			c.logger.Warn("Failed to discard session token", zap.Error(err))
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &Error{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// readErrorMessage pulls the human-readable message out of an error body.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 1<<16))
	if err != nil || len(raw) == 0 {
		return ""
	}

	var body struct {
		Message string `json:"message"`
		Err     string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Err != "" {
			return body.Err
		}
	}
	return strings.TrimSpace(string(raw))
}

// routeLabel collapses a concrete request path to its route prefix so metric
// label cardinality stays bounded.
func routeLabel(path string) string {
	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 3)
	if len(parts) >= 2 {
		return "/" + parts[0] + "/" + parts[1]
	}
	return "/" + parts[0]
}
