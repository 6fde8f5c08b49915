package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config represents the configuration for the Supabase client
type Config struct {
	// URL is the project URL, e.g. https://xyz.supabase.co
	URL string

	// AnonKey is the public API key sent as the apikey header
	AnonKey string

	// Timeout bounds a single request; zero means 15s
	Timeout time.Duration
}

func (c *Config) Validate() error {
	if c.URL == "" || c.AnonKey == "" {
		return ErrInvalidConfig
	}
	return nil
}

// Client talks to the hosted auth (GoTrue) and data (PostgREST) endpoints
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		config:     config,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SignInWithPassword exchanges an email/password pair for a session
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	payload := map[string]string{"email": email, "password": password}

	body, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", "", payload)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &session, nil
}

// GetUser returns the user the access token belongs to
func (c *Client) GetUser(ctx context.Context, accessToken string) (*User, error) {
	body, err := c.doRequest(ctx, http.MethodGet, "/auth/v1/user", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &user, nil
}

// SignOut revokes the session behind the access token
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	_, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/logout", accessToken, nil)
	return err
}

// Select reads rows of table matching every filter into out (a pointer to a slice)
func (c *Client) Select(ctx context.Context, accessToken, table string, out interface{}, filters ...Filter) error {
	q := url.Values{}
	q.Set("select", "*")
	for _, f := range filters {
		q.Add(f.Column, "eq."+f.Value)
	}
	path := "/rest/v1/" + url.PathEscape(table) + "?" + q.Encode()

	body, err := c.doRequest(ctx, http.MethodGet, path, accessToken, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// doRequest performs a request against the project URL. Requests without a
// user token are authorized with the anon key.
func (c *Client) doRequest(ctx context.Context, method, path, accessToken string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.URL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	bearer := accessToken
	if bearer == "" {
		bearer = c.config.AnonKey
	}
	req.Header.Set("apikey", c.config.AnonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read body: %v", ErrNetworkError, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if err := json.Unmarshal(body, &eb); err != nil {
			return nil, &APIError{Status: resp.StatusCode, Message: string(body)}
		}
		return nil, eb.toAPIError(resp.StatusCode)
	}

	return body, nil
}
