package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/opsapi/internal/common"
)

type HTTPClient struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
	user  *User
}

// NewHTTPClient returns a client for the API served at baseURL.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) currentToken() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do sends body as JSON and decodes a 2xx response into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, auth bool, body, out any) error {
	var rdr io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if auth {
		token := c.currentToken()
		if token == "" {
			return ErrNotLoggedIn
		}
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var er errorResponse
		_ = json.NewDecoder(resp.Body).Decode(&er)
		return &APIError{StatusCode: resp.StatusCode, Message: er.Message, Reason: er.Reason}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, username, email, password string) (int64, error) {
	var resp registerResponse
	err := c.do(ctx, http.MethodPost, "/api/register", false,
		registerRequest{Username: username, Email: email, Password: password}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.UserID, nil
}

// Login stores the returned token for later calls.
func (c *HTTPClient) Login(ctx context.Context, username, password string) (*User, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/api/login", false,
		loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.token = resp.Token
	c.user = &resp.User
	c.mu.Unlock()

	return &resp.User, nil
}

// Logout forgets the token. Tokens are stateless, so nothing is sent.
func (c *HTTPClient) Logout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = ""
	c.user = nil
}

func (c *HTTPClient) LoggedInAs() (*User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.user, c.token != ""
}

func (c *HTTPClient) CreateOperation(ctx context.Context, opType string, payload json.RawMessage) (int64, error) {
	var resp createOperationResponse
	err := c.do(ctx, http.MethodPost, "/api/operations", true,
		createOperationRequest{Type: opType, Payload: payload}, &resp)
	if err != nil {
		return 0, err
	}
	return resp.OperationID, nil
}

func (c *HTTPClient) ListOperations(ctx context.Context, limit int) ([]Operation, error) {
	path := "/api/operations"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var resp listOperationsResponse
	if err := c.do(ctx, http.MethodGet, path, true, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Operations, nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.do(ctx, http.MethodGet, "/api/user/profile", true, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) Status(ctx context.Context) (*Status, error) {
	var s Status
	if err := c.do(ctx, http.MethodGet, "/api/status", false, nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
