package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/devopslab/userboard/internal/domain/user"
	"github.com/devopslab/userboard/internal/observability"
)

// Every call to the user store is fire-once and bounded by this timeout.
// There are no retries; failure degrades to defaults at the call site.
const callTimeout = 5 * time.Second

// Client talks to the User Store Service. Transport failures (refused
// connection, timeout) are indistinguishable from server errors to callers:
// both surface as a JSON error payload with status 500.
type Client struct {
	baseURL string
	http    *http.Client
	log     *slog.Logger
	prom    *observability.Prom
}

func NewClient(baseURL string, log *slog.Logger, prom *observability.Prom) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: callTimeout},
		log:     log,
		prom:    prom,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// roundTrip performs one call and hands back the raw response body with its
// status. The endpoint label keeps metric cardinality flat (no ids).
func (c *Client) roundTrip(ctx context.Context, endpoint, method, path string, payload any) ([]byte, int) {
	start := time.Now()
	body, status := c.send(ctx, method, path, payload)

	if c.prom != nil {
		c.prom.ObserveBackendCall(endpoint, status, time.Since(start))
	}

	return body, status
}

func (c *Client) send(ctx context.Context, method, path string, payload any) ([]byte, int) {
	url := c.baseURL + path
	c.log.DebugContext(ctx, "calling user store", "method", method, "url", url)

	reqBody := bytes.NewBuffer(nil)

	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return errorBody(err), http.StatusInternalServerError
		}
		reqBody = bytes.NewBuffer(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)

	if err != nil {
		return errorBody(err), http.StatusInternalServerError
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)

	if err != nil {
		c.log.ErrorContext(ctx, "user store call failed", "method", method, "url", url, "err", err)
		return errorBody(err), http.StatusInternalServerError
	}
	defer resp.Body.Close()

	var buf bytes.Buffer

	if _, err := buf.ReadFrom(resp.Body); err != nil {
		c.log.ErrorContext(ctx, "user store response read failed", "url", url, "err", err)
		return errorBody(err), http.StatusInternalServerError
	}

	return buf.Bytes(), resp.StatusCode
}

func errorBody(err error) []byte {
	b, _ := json.Marshal(map[string]string{"error": err.Error()})
	return b
}

// ErrorMessage pulls the store's reported error out of a response body,
// falling back to "Unknown error" when there is none.
func ErrorMessage(body []byte) string {
	var m map[string]any

	if err := json.Unmarshal(body, &m); err == nil {
		if s, ok := m["error"].(string); ok && s != "" {
			return s
		}
	}

	return "Unknown error"
}

// Healthy reports whether the store's health endpoint answered 200.
func (c *Client) Healthy(ctx context.Context) bool {
	_, status := c.roundTrip(ctx, "health", http.MethodGet, "/health", nil)
	return status == http.StatusOK
}

// Users fetches the full user list; ok is false on any failure.
func (c *Client) Users(ctx context.Context) ([]user.User, bool) {
	raw, status := c.roundTrip(ctx, "users", http.MethodGet, "/api/users", nil)

	if status != http.StatusOK {
		return nil, false
	}

	var resp struct {
		Users []user.User `json:"users"`
	}

	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false
	}

	return resp.Users, true
}

type ServiceInfo struct {
	Name        string `json:"name"`
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type Stats struct {
	TotalUsers  int         `json:"total_users"`
	ServiceInfo ServiceInfo `json:"service_info"`
	Timestamp   string      `json:"timestamp"`
}

// Stats fetches the store's aggregate stats; ok is false on any failure.
func (c *Client) Stats(ctx context.Context) (*Stats, bool) {
	raw, status := c.roundTrip(ctx, "stats", http.MethodGet, "/api/stats", nil)

	if status != http.StatusOK {
		return nil, false
	}

	var s Stats

	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false
	}

	return &s, true
}

// CreateUser relays a create; the returned message is the store's reported
// error when the status is not 201.
func (c *Client) CreateUser(ctx context.Context, name, email, role string) (int, string) {
	payload := map[string]string{
		"name":  name,
		"email": email,
		"role":  role,
	}

	raw, status := c.roundTrip(ctx, "create_user", http.MethodPost, "/api/users", payload)

	if status == http.StatusCreated {
		return status, ""
	}

	return status, ErrorMessage(raw)
}

// DeleteUser relays a delete for the given id.
func (c *Client) DeleteUser(ctx context.Context, id string) (int, string) {
	raw, status := c.roundTrip(ctx, "delete_user", http.MethodDelete, "/api/users/"+id, nil)

	if status == http.StatusOK {
		return status, ""
	}

	return status, ErrorMessage(raw)
}
