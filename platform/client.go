package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/basebase-ai/basebase-go/auth"
	"github.com/basebase-ai/basebase-go/directory"
	"github.com/basebase-ai/basebase-go/provision"
	"github.com/basebase-ai/basebase-go/session"
)

const defaultTimeout = 30 * time.Second

// Client talks to the BaseBase platform REST API. One client implements
// all three upstream contracts: the authentication service, the
// provisioning API and the project read API. It never retries; recovery
// is always a fresh caller action.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      func() string
}

var (
	_ auth.Service     = (*Client)(nil)
	_ provision.API    = (*Client)(nil)
	_ directory.Reader = (*Client)(nil)
)

// ClientOption modifies a Client instance.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithTokenSource sets where bearer tokens come from, usually the session
// store (see WithSessionStore).
func WithTokenSource(token func() string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithSessionStore sources bearer tokens from the current session.
func WithSessionStore(store *session.Store) ClientOption {
	return func(c *Client) {
		c.token = func() string {
			return store.Get().Token
		}
	}
}

// NewClient creates a platform client for the given API base URL.
func NewClient(baseURL string, options ...ClientOption) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
		token:      func() string { return "" },
	}
	for _, opt := range options {
		opt(client)
	}
	return client
}

// RequestCode asks the platform to text a one-time code to phone.
func (c *Client) RequestCode(ctx context.Context, username, phone string) error {
	body := map[string]string{
		"username": username,
		"phone":    phone,
	}
	return c.do(ctx, http.MethodPost, "/v1/requestCode", body, nil)
}

// VerifyCode exchanges the one-time code for the user, project and token.
func (c *Client) VerifyCode(ctx context.Context, phone, code, projectID string) (*auth.VerifyResult, error) {
	body := map[string]string{
		"phone":     phone,
		"code":      code,
		"projectId": projectID,
	}
	var resp struct {
		User    session.User    `json:"user"`
		Project json.RawMessage `json:"project"`
		Token   string          `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/verifyCode", body, &resp); err != nil {
		return nil, err
	}
	return &auth.VerifyResult{
		User:    resp.User,
		Project: resp.Project,
		Token:   resp.Token,
	}, nil
}

// CreateProjectRecord stores the project document.
func (c *Client) CreateProjectRecord(ctx context.Context, projectID string, meta provision.Metadata) error {
	body := map[string]any{
		"projectId":   projectID,
		"name":        meta.Name,
		"description": meta.Description,
		"categories":  meta.Categories,
		"ownerId":     meta.OwnerID,
	}
	var resp struct {
		Success bool `json:"success"`
	}
	if err := c.do(ctx, http.MethodPost, "/v1/projects", body, &resp); err != nil {
		return err
	}
	if !resp.Success {
		return fmt.Errorf("failed to create project document")
	}
	return nil
}

// CreateRepository creates the project's source repository.
func (c *Client) CreateRepository(ctx context.Context, projectID string) (*provision.Repository, error) {
	var resp struct {
		Success    bool                 `json:"success"`
		Repository provision.Repository `json:"repository"`
	}
	path := "/v1/projects/" + projectID + "/repository"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("failed to create repository")
	}
	return &resp.Repository, nil
}

// CreateService requests the project's deployment.
func (c *Client) CreateService(ctx context.Context, projectID string) (*provision.Service, error) {
	var resp struct {
		Success bool              `json:"success"`
		Service provision.Service `json:"service"`
	}
	path := "/v1/projects/" + projectID + "/service"
	if err := c.do(ctx, http.MethodPost, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("failed to deploy service")
	}
	return &resp.Service, nil
}

// UpdateProjectRecord replaces the document of an existing project.
func (c *Client) UpdateProjectRecord(ctx context.Context, projectID string, meta provision.Metadata) error {
	return c.do(ctx, http.MethodPut, "/v1/projects/"+projectID, meta, nil)
}

// ListProjects returns the published project list in its raw,
// heterogeneous shape. Normalization is the directory's job.
func (c *Client) ListProjects(ctx context.Context) ([]map[string]any, error) {
	var resp struct {
		Projects []map[string]any `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/v1/projects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

// do issues one request and decodes the response into out (when non-nil).
// Error bodies of the shape {"error": "..."} surface their message
// verbatim; anything else surfaces the status code.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Err(err).Str("method", method).Str("path", path).Msg("platform request failed")
		return fmt.Errorf("platform request failed: %w", err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("platform request")

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err == nil {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s", apiErr.Error)
		}
	}
	return fmt.Errorf("status %d", resp.StatusCode)
}
