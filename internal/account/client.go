package account

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// Client calls the identity backend's JSON endpoints under /accounts/api.
type Client struct {
	http    *http.Client
	baseURL string
}

func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: strings.TrimSuffix(baseURL, "/") + "/accounts/api"}
}

func (c *Client) Signup(ctx context.Context, req SignupRequest) error {
	body := map[string]string{
		"full_name": strings.TrimSpace(req.FullName),
		"phone":     req.Phone,
		"email":     strings.TrimSpace(req.Email),
		"password":  req.Password,
	}
	return c.post(ctx, "/signup", body, nil)
}

func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResult, error) {
	var out LoginResult
	err := c.post(ctx, "/login", LoginRequest{Email: strings.TrimSpace(req.Email), Password: req.Password}, &out)
	return out, err
}

func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	return c.post(ctx, "/verify-otp", map[string]string{"email": email, "otp": otp}, nil)
}

func (c *Client) ResendOTP(ctx context.Context, email string) error {
	return c.post(ctx, "/resend-otp", map[string]string{"email": email}, nil)
}

func (c *Client) post(ctx context.Context, path string, in any, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d", errorForStatus(resp.StatusCode), path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode %s response: %w", ErrUnexpected, path, err)
	}
	return nil
}
