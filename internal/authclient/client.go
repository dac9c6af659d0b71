// Package authclient talks to the external authentication service. The
// storefront never verifies credentials itself: login and session checks
// are delegated over HTTP and the service's answer is authoritative.
package authclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrInvalidSession is returned when the auth service does not
	// recognize the submitted token.
	ErrInvalidSession = errors.New("authclient: invalid session")
	// ErrSessionMismatch is returned when the service answers with a
	// different token than the one submitted.
	ErrSessionMismatch = errors.New("authclient: session token mismatch")
)

// APIError is a structured rejection from the auth service, surfaced to
// the login page as ErrC/ErrM query parameters.
type APIError struct {
	ErrCode    string `json:"ErrCode"`
	ErrMessage string `json:"ErrMessage"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("authclient: %s: %s", e.ErrCode, e.ErrMessage)
}

// Session is the authenticated identity as the auth service reports it.
// Field names follow the service's wire format.
type Session struct {
	Auth         string `json:"Auth"`
	UsersID      int64  `json:"UsersId"`
	UserName     string `json:"UserName"`
	BrowserName  string `json:"BrowserName"`
	Os           string `json:"Os"`
	Devices      string `json:"Devices"`
	IsMobile     int    `json:"IsMobile"`
	ConnectionIP string `json:"ConnectionIp"`
	ValidHash    string `json:"ValidHash"`
	ErrCode      string `json:"ErrCode,omitempty"`
	ErrMessage   string `json:"ErrMessage,omitempty"`
}

// LoginRequest carries the credentials plus the full device fingerprint
// the service binds the new session to.
type LoginRequest struct {
	UserName     string `json:"UserName,omitempty"`
	Email        string `json:"Email,omitempty"`
	Password     string `json:"pwd"`
	UserAgent    string `json:"UA"`
	IsMobile     int    `json:"IsMobile"`
	BrowserName  string `json:"BrowserName"`
	Os           string `json:"Os"`
	Auth         string `json:"Auth"`
	ValidHash    string `json:"ValidHash"`
	ConnectionIP string `json:"connectionIp"`
	Devices      string `json:"Devices"`
}

// Client calls the auth service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Check validates a session token. The service must echo the token back;
// any other answer means the session is not ours.
func (c *Client) Check(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}
	var sess Session
	err := c.postJSON(ctx, "/check", map[string]string{"Auth": token}, &sess)
	if err != nil {
		return Session{}, err
	}
	if sess.ErrCode != "" {
		return Session{}, &APIError{ErrCode: sess.ErrCode, ErrMessage: sess.ErrMessage}
	}
	if sess.Auth == "" {
		return Session{}, ErrInvalidSession
	}
	if sess.Auth != token {
		return Session{}, ErrSessionMismatch
	}
	return sess, nil
}

// Login submits credentials and the device fingerprint. A rejection comes
// back as *APIError so the handler can redirect with its code and message.
func (c *Client) Login(ctx context.Context, req LoginRequest) (Session, error) {
	var sess Session
	if err := c.postJSON(ctx, "/auth", req, &sess); err != nil {
		return Session{}, err
	}
	if sess.ErrCode != "" {
		return Session{}, &APIError{ErrCode: sess.ErrCode, ErrMessage: sess.ErrMessage}
	}
	if sess.Auth == "" {
		return Session{}, ErrInvalidSession
	}
	return sess, nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("authclient: encode %s: %w", path, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("authclient: build %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("authclient: post %s: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("authclient: read %s: %w", path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return ErrInvalidSession
	}
	if resp.StatusCode >= http.StatusInternalServerError {
		return fmt.Errorf("authclient: %s: status %d", path, resp.StatusCode)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("authclient: decode %s: %w", path, err)
	}
	return nil
}
