package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/golang-jwt/jwt/v5"

	"notekeeper/internal/common"
)

// Claims carries the identity fields the auth backend embeds in its tokens.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RESTClient authenticates against the backend's JSON endpoints and keeps
// the resulting session in memory. The access token is issued and verified
// server-side; the client only reads its claims to learn who signed in.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client

	mu      sync.RWMutex
	session *Session
}

// NewRESTClient returns a signed-out client pointed at baseURL.
func NewRESTClient(baseURL string) *RESTClient {
	return &RESTClient{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
}

// CurrentUserID returns the active session's user id.
func (c *RESTClient) CurrentUserID() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return "", common.ErrNotAuthenticated
	}
	return c.session.UserID, nil
}

// CurrentSession returns a copy of the active session, or nil when signed out.
func (c *RESTClient) CurrentSession() *Session {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return nil
	}
	s := *c.session
	return &s
}

// SignUp registers a new account and signs it in.
func (c *RESTClient) SignUp(ctx context.Context, firstName, lastName, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/register", map[string]string{
		"firstName": firstName,
		"lastName":  lastName,
		"email":     email,
		"password":  password,
	})
}

// SignIn authenticates with email and password.
func (c *RESTClient) SignIn(ctx context.Context, email, password string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// SignInWithToken exchanges an externally issued identity token for a session.
func (c *RESTClient) SignInWithToken(ctx context.Context, token string) (*Session, error) {
	return c.authenticate(ctx, "/api/auth/token", map[string]string{
		"token": token,
	})
}

// SignOut drops the active session.
func (c *RESTClient) SignOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

type tokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func (c *RESTClient) authenticate(ctx context.Context, path string, payload map[string]string) (*Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("auth backend returned %s: %s", resp.Status, string(b))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}

	session, err := sessionFromToken(tr.AccessToken)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.session = session
	c.mu.Unlock()

	return session, nil
}

// sessionFromToken reads the identity claims out of the access token. The
// signature is not checked here: the token came over TLS from the backend
// that minted it, and every later use is verified server-side.
func sessionFromToken(token string) (*Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed access token: %w", err)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("access token is missing the subject claim")
	}

	s := &Session{
		UserID:      claims.Subject,
		Email:       claims.Email,
		DisplayName: claims.Name,
		AccessToken: token,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}
