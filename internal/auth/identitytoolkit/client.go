// Package identitytoolkit is a minimal client for the Firebase Identity
// Toolkit REST API. The Admin SDK cannot verify a password; password
// sign-in (and the re-auth step before a password change) goes through
// these endpoints with the project's web API key.
package identitytoolkit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://identitytoolkit.googleapis.com/v1"

// Error messages the API uses for credential failures. Surfaced unchanged
// to callers, which match on them.
const (
	MsgEmailNotFound     = "EMAIL_NOT_FOUND"
	MsgInvalidPassword   = "INVALID_PASSWORD"
	MsgInvalidCredential = "INVALID_LOGIN_CREDENTIALS"
	MsgEmailExists       = "EMAIL_EXISTS"
	MsgWeakPassword      = "WEAK_PASSWORD"
)

type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

func New(apiKey string) *Client {
	return NewWithClient(apiKey, defaultBaseURL, &http.Client{Timeout: 15 * time.Second})
}

// NewWithClient allows overriding the endpoint and transport, used by tests.
func NewWithClient(apiKey, baseURL string, hc *http.Client) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: baseURL,
		http:    hc,
		limiter: rate.NewLimiter(rate.Limit(10), 20),
	}
}

// Error is a non-2xx response from the API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

type SignInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// SignInWithPassword exchanges email+password for a signed-in principal.
func (c *Client) SignInWithPassword(ctx context.Context, email, password string) (*SignInResponse, error) {
	body := map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	}

	var out SignInResponse
	if err := c.post(ctx, "accounts:signInWithPassword", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SendPasswordResetEmail triggers the provider's reset-password email flow.
func (c *Client) SendPasswordResetEmail(ctx context.Context, email string) error {
	body := map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}
	return c.post(ctx, "accounts:sendOobCode", body, nil)
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/%s?key=%s", c.baseURL, endpoint, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("identitytoolkit request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error struct {
				Code    int    `json:"code"`
				Message string `json:"message"`
			} `json:"error"`
		}
		msg := resp.Status
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			msg = apiErr.Error.Message
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
