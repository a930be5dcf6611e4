// Package libraryapi is the HTTP client for the library backend's /auth
// endpoints. The backend is the sole authority over credential validity;
// this client forwards the opaque credential and reports what the backend
// says, nothing more.
package libraryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/openshelf/gateway/internal/domain/auth"
	"github.com/openshelf/gateway/internal/ports"
)

// Ensure compile-time conformance to the port.
var _ ports.AuthAPI = (*Client)(nil)

const (
	loginEndpoint      = "/auth/login"
	registerEndpoint   = "/auth/register"
	logoutEndpoint     = "/auth/logout"
	verifyEndpoint     = "/auth/verify"
	verifyRoleEndpoint = "/auth/verify-role"
)

// Options groups dependencies and settings for the client.
type Options struct {
	// BaseURL is the backend API origin, e.g. "http://127.0.0.1:8000/api".
	BaseURL string

	// Timeout bounds every call. Zero means 5s.
	Timeout time.Duration

	// UseCookieJar makes the client hold backend-issued cookies itself,
	// for standalone use where the process is the principal (CLI,
	// diagnostics). Gateway mode leaves this off and forwards the
	// browser's credential per call instead.
	UseCookieJar bool

	Logger *slog.Logger
}

// Client talks to the library backend auth API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// New constructs a Client.
func New(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("backend base URL is required")
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	hc := &http.Client{Timeout: timeout}
	if opts.UseCookieJar {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		hc.Jar = jar
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{baseURL: opts.BaseURL, httpClient: hc, logger: logger}, nil
}

// authResponse is the backend's success payload for login/register.
type authResponse struct {
	User auth.User `json:"user"`
}

// errorResponse is the backend's failure payload shape.
type errorResponse struct {
	Detail string `json:"detail"`
}

// Login authenticates against the backend. Rejections surface as
// *auth.LoginError classified from the backend's detail message.
func (c *Client) Login(ctx context.Context, in ports.LoginInput) (*ports.AuthResult, error) {
	resp, body, err := c.postJSON(ctx, loginEndpoint, in, ports.Credential{})
	if err != nil {
		return nil, fmt.Errorf("login request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, auth.NewLoginError(detailMessage(body, "Failed to login"))
	}

	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}

	return &ports.AuthResult{User: ar.User, SetCookies: resp.Cookies()}, nil
}

// Register creates an account. The backend's rejection detail is surfaced
// as a general *auth.LoginError; register failures are not field-classified.
func (c *Client) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Role == "" {
		in.Role = auth.RoleReader
	}

	resp, body, err := c.postJSON(ctx, registerEndpoint, in, ports.Credential{})
	if err != nil {
		return nil, fmt.Errorf("register request: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &auth.LoginError{
			Message: detailMessage(body, "Failed to register"),
			Kind:    auth.ErrorKindGeneral,
		}
	}

	var ar authResponse
	if err := json.Unmarshal(body, &ar); err != nil {
		return nil, fmt.Errorf("decode register response: %w", err)
	}

	return &ports.AuthResult{User: ar.User, SetCookies: resp.Cookies()}, nil
}

// Logout asks the backend to invalidate the credential. The returned
// cookies are whatever expirations the backend issued.
func (c *Client) Logout(ctx context.Context, cred ports.Credential) ([]*http.Cookie, error) {
	resp, _, err := c.postJSON(ctx, logoutEndpoint, struct{}{}, cred)
	if err != nil {
		return nil, fmt.Errorf("logout request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("logout: backend returned %d", resp.StatusCode)
	}
	return resp.Cookies(), nil
}

// Verify asks the backend who the credential belongs to.
func (c *Client) Verify(ctx context.Context, cred ports.Credential) (*ports.VerifyResult, error) {
	body, err := c.getJSON(ctx, verifyEndpoint, cred)
	if err != nil {
		return nil, fmt.Errorf("verify request: %w", err)
	}

	var vr ports.VerifyResult
	if err := json.Unmarshal(body, &vr); err != nil {
		return nil, fmt.Errorf("decode verify response: %w", err)
	}
	return &vr, nil
}

// VerifyRole is the edge-layer role check. The backend conveys a negative
// answer in the body, so the body is decoded regardless of status.
func (c *Client) VerifyRole(ctx context.Context, cred ports.Credential) (*auth.RoleCheck, error) {
	body, err := c.getJSON(ctx, verifyRoleEndpoint, cred)
	if err != nil {
		return nil, fmt.Errorf("verify-role request: %w", err)
	}

	var rc auth.RoleCheck
	if err := json.Unmarshal(body, &rc); err != nil {
		return nil, fmt.Errorf("decode verify-role response: %w", err)
	}
	return &rc, nil
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload any, cred ports.Credential) (*http.Response, []byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	cred.Attach(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("read response: %w", err)
	}
	return resp, body, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, cred ports.Credential) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, err
	}
	cred.Attach(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return body, nil
}

// detailMessage extracts the backend's detail field, falling back to a
// generic message when the body isn't the expected shape.
func detailMessage(body []byte, fallback string) string {
	var er errorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != "" {
		return er.Detail
	}
	return fallback
}
