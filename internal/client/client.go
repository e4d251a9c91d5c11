package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/opsdesk/agentdesk/internal/domain"
	"github.com/opsdesk/agentdesk/internal/handler/dto"
	"github.com/opsdesk/agentdesk/internal/service"
)

// Client is a typed API client for the agentdesk backend. The zero timeout on
// the embedded http.Client is deliberate: requests are bounded by the caller's
// context instead.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
}

// New creates a Client that attaches the session's token to every request.
func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		http:    &http.Client{},
	}
}

// apiError is a backend-reported failure with a user-presentable message.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string { return e.Message }

// IsUnauthorized reports whether err is a backend 401.
func IsUnauthorized(err error) bool {
	var apiErr *apiError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// do performs a request and decodes the response into out (when non-nil).
// Non-2xx responses become an apiError carrying the backend's message field,
// or the fallback when the payload has none.
func (c *Client) do(req *http.Request, out interface{}, fallback string) error {
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp dto.ErrorResponse
		message := fallback
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			message = errResp.Message
		}
		return &apiError{Status: resp.StatusCode, Message: message}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", fallback, err)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, payload, out interface{}, fallback string) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out, fallback)
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}, fallback string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	return c.do(req, out, fallback)
}

// Login exchanges credentials for a token and persists it in the session.
func (c *Client) Login(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	var resp dto.AuthResponse
	err := c.postJSON(ctx, "/api/auth/login", dto.CredentialsRequest{Email: email, Password: password}, &resp, "Login failed")
	if err != nil {
		return nil, err
	}

	if err := c.session.SetToken(resp.Token); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Register creates an admin account, then persists the returned token.
func (c *Client) Register(ctx context.Context, email, password string) (*dto.UserResponse, error) {
	var resp dto.AuthResponse
	err := c.postJSON(ctx, "/api/auth/register", dto.CredentialsRequest{Email: email, Password: password}, &resp, "Registration failed")
	if err != nil {
		return nil, err
	}

	if err := c.session.SetToken(resp.Token); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Logout clears the persisted token.
func (c *Client) Logout() error {
	return c.session.Clear()
}

// VerifyStoredToken checks a previously persisted token with a harmless
// authenticated call and silently discards it when the backend rejects it.
// Returns true when the session is usable.
func (c *Client) VerifyStoredToken(ctx context.Context) (bool, error) {
	if !c.session.Authenticated() {
		return false, nil
	}

	var resp dto.DataResponse
	err := c.getJSON(ctx, "/api/agents", &resp, "Session check failed")
	if err != nil {
		if IsUnauthorized(err) {
			if clearErr := c.session.Clear(); clearErr != nil {
				return false, clearErr
			}
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Me returns the identity behind the current token.
func (c *Client) Me(ctx context.Context) (*dto.UserResponse, error) {
	var user dto.UserResponse
	if err := c.getJSON(ctx, "/api/auth/me", &user, "Failed to resolve identity"); err != nil {
		return nil, err
	}
	return &user, nil
}

// Agents fetches the agent roster.
func (c *Client) Agents(ctx context.Context) ([]dto.AgentResponse, error) {
	var resp struct {
		Success bool                `json:"success"`
		Data    []dto.AgentResponse `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/agents", &resp, "Error fetching agents"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// CreateAgent validates the fields locally, then creates the agent. Validation
// failures never reach the network.
func (c *Client) CreateAgent(ctx context.Context, name, email, mobile, password string) (*dto.AgentResponse, error) {
	if err := service.ValidateNewAgent(name, email, mobile, password); err != nil {
		return nil, err
	}

	var resp struct {
		Success bool              `json:"success"`
		Data    dto.AgentResponse `json:"data"`
	}
	err := c.postJSON(ctx, "/api/agents", dto.CreateAgentRequest{
		Name:     name,
		Email:    email,
		Mobile:   mobile,
		Password: password,
	}, &resp, "Error adding agent")
	if err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Lists fetches all uploaded lists, newest first.
func (c *Client) Lists(ctx context.Context) ([]dto.ListResponse, error) {
	var resp struct {
		Success bool               `json:"success"`
		Data    []dto.ListResponse `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/lists", &resp, "Error fetching lists"); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// List fetches one uploaded list by ID, distributions and items included.
func (c *Client) List(ctx context.Context, listID string) (*dto.ListResponse, error) {
	var resp struct {
		Success bool             `json:"success"`
		Data    dto.ListResponse `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/lists/"+listID, &resp, "Error fetching list"); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Stats fetches the dashboard aggregates.
func (c *Client) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	var resp struct {
		Success bool              `json:"success"`
		Data    dto.StatsResponse `json:"data"`
	}
	if err := c.getJSON(ctx, "/api/stats", &resp, "Error fetching stats"); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// Upload validates the file's extension locally, transmits it as a single-part
// multipart upload, and returns the distribution result. Files with an
// extension outside {.csv,.xlsx,.xls} are rejected before any network call.
func (c *Client) Upload(ctx context.Context, filePath string) (*dto.UploadResponse, error) {
	if filePath == "" {
		return nil, domain.ErrNoFile
	}
	if !service.AllowedExtension(filePath) {
		return nil, domain.ErrUnsupportedExt
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return nil, fmt.Errorf("build upload body: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("build upload body: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/lists/upload", &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		Success bool               `json:"success"`
		Data    dto.UploadResponse `json:"data"`
	}
	if err := c.do(req, &resp, "Error uploading file"); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
