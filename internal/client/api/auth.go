// Package api implements the thin HTTP clients for the two remote REST
// services: the auth/user directory and the exercise catalog.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/zenloop/zenloop/internal/client/models"
)

// StatusError is returned when a remote endpoint answers with a non-2xx
// status. Message carries the server-provided message when one was parsed.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("remote returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote returned %d", e.StatusCode)
}

// AuthClient talks to the remote auth and user directory endpoints.
type AuthClient struct {
	authBase  string
	usersBase string
	client    *http.Client
}

// NewAuthClient creates a client for the given base URLs.
func NewAuthClient(authBase, usersBase string, timeout time.Duration) *AuthClient {
	return &AuthClient{
		authBase:  authBase,
		usersBase: usersBase,
		client:    &http.Client{Timeout: timeout},
	}
}

// AuthResult is a successful remote login: the authoritative user record
// plus the server-issued token.
type AuthResult struct {
	User  models.User
	Token string
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Image     string `json:"image"`
	// Older API revisions return "token", newer ones "accessToken".
	Token       string `json:"token"`
	AccessToken string `json:"accessToken"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Login authenticates against the remote auth endpoint. A non-2xx answer
// comes back as a *StatusError carrying the server's message.
func (c *AuthClient) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authBase+"/login", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read login response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		// Body may not be JSON at all; the status code alone is enough then.
		_ = json.Unmarshal(data, &errResp)
		return nil, &StatusError{StatusCode: resp.StatusCode, Message: errResp.Message}
	}

	var lr loginResponse
	if err := json.Unmarshal(data, &lr); err != nil {
		return nil, fmt.Errorf("failed to parse login response: %w", err)
	}

	token := lr.Token
	if token == "" {
		token = lr.AccessToken
	}

	return &AuthResult{
		User: models.User{
			ID:        lr.ID,
			Username:  lr.Username,
			Email:     lr.Email,
			FirstName: lr.FirstName,
			LastName:  lr.LastName,
			Image:     lr.Image,
		},
		Token: token,
	}, nil
}

// AddUser posts a freshly registered user to the remote directory. The
// endpoint does not actually persist anything; callers treat this as
// best-effort and discard the error.
func (c *AuthClient) AddUser(ctx context.Context, user models.User) error {
	body, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.usersBase+"/add", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build add-user request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("add-user request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode}
	}

	logrus.Debugf("Remote add-user accepted: username=%s", user.Username)

	return nil
}
