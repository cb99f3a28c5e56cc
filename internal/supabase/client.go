// Package supabase is a minimal GoTrue client. Only the auth endpoints this
// service delegates to are implemented; the habit data itself is reached
// through the project's Postgres, not through PostgREST.
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	authURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for the given project URL and anon key.
func New(projectURL, apiKey string, timeout time.Duration) (*Client, error) {
	if projectURL == "" {
		return nil, fmt.Errorf("project URL is required")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		authURL: strings.TrimRight(projectURL, "/") + "/auth/v1",
		apiKey:  apiKey,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// SignUp creates a new user. GoTrue only returns a session when the project
// auto-confirms email addresses; callers must treat a nil session as failure.
func (c *Client) SignUp(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, statusCode, err := c.request(ctx, http.MethodPost, c.authURL+"/signup", body, "")
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &session, nil
}

// SignInWithPassword authenticates a user with email/password.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	respBody, statusCode, err := c.request(ctx, http.MethodPost, c.authURL+"/token?grant_type=password", body, "")
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}

	var session Session
	if err := json.Unmarshal(respBody, &session); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &session, nil
}

// GetUser retrieves the user the access token belongs to.
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	respBody, statusCode, err := c.request(ctx, http.MethodGet, c.authURL+"/user", nil, accessToken)
	if err != nil {
		return nil, err
	}
	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}

	var user User
	if err := json.Unmarshal(respBody, &user); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &user, nil
}

// SignOut invalidates the session server-side.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	respBody, statusCode, err := c.request(ctx, http.MethodPost, c.authURL+"/logout", nil, accessToken)
	if err != nil {
		return err
	}
	if statusCode >= 400 {
		return parseError(respBody, statusCode)
	}
	return nil
}

func (c *Client) request(ctx context.Context, method, url string, body []byte, accessToken string) ([]byte, int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	// The anon key authorizes public endpoints; a user token supersedes it.
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	} else {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("auth request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}
