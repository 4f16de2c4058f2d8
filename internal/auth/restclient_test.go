package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/common"
)

func issueToken(t *testing.T, userID, email, name string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Email: email,
		Name:  name,
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func newAuthServer(t *testing.T) (*httptest.Server, *map[string]string) {
	t.Helper()

	lastRequest := map[string]string{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		lastRequest = body
		lastRequest["path"] = r.URL.Path

		if body["email"] == "wrong@b.io" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		token := issueToken(t, "u1", body["email"], body["firstName"]+" "+body["lastName"])
		_ = json.NewEncoder(w).Encode(map[string]string{"accessToken": token})
	}))
	t.Cleanup(srv.Close)

	return srv, &lastRequest
}

func TestCurrentUserID_SignedOut(t *testing.T) {
	c := NewRESTClient("http://localhost")

	_, err := c.CurrentUserID()
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestSignIn(t *testing.T) {
	srv, last := newAuthServer(t)
	c := NewRESTClient(srv.URL)

	session, err := c.SignIn(context.Background(), "a@b.io", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/api/auth/login", (*last)["path"])
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "a@b.io", session.Email)
	assert.False(t, session.ExpiresAt.IsZero())

	id, err := c.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, "u1", id)
}

func TestSignIn_BadCredentials(t *testing.T) {
	srv, _ := newAuthServer(t)
	c := NewRESTClient(srv.URL)

	_, err := c.SignIn(context.Background(), "wrong@b.io", "secret")
	require.Error(t, err)

	_, err = c.CurrentUserID()
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
}

func TestSignUp(t *testing.T) {
	srv, last := newAuthServer(t)
	c := NewRESTClient(srv.URL)

	session, err := c.SignUp(context.Background(), "Ada", "Lovelace", "ada@b.io", "secret")
	require.NoError(t, err)

	assert.Equal(t, "/api/auth/register", (*last)["path"])
	assert.Equal(t, "Ada", (*last)["firstName"])
	assert.Equal(t, "Ada Lovelace", session.DisplayName)
}

func TestSignInWithToken(t *testing.T) {
	srv, last := newAuthServer(t)
	c := NewRESTClient(srv.URL)

	_, err := c.SignInWithToken(context.Background(), "external-idp-token")
	require.NoError(t, err)

	assert.Equal(t, "/api/auth/token", (*last)["path"])
	assert.Equal(t, "external-idp-token", (*last)["token"])
}

func TestSignOut(t *testing.T) {
	srv, _ := newAuthServer(t)
	c := NewRESTClient(srv.URL)

	_, err := c.SignIn(context.Background(), "a@b.io", "secret")
	require.NoError(t, err)

	c.SignOut()

	_, err = c.CurrentUserID()
	assert.ErrorIs(t, err, common.ErrNotAuthenticated)
	assert.Nil(t, c.CurrentSession())
}

func TestSessionFromToken_Malformed(t *testing.T) {
	_, err := sessionFromToken("not-a-jwt")
	require.Error(t, err)
}

func TestSessionFromToken_MissingSubject(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Email: "a@b.io"})
	signed, err := token.SignedString([]byte("k"))
	require.NoError(t, err)

	_, err = sessionFromToken(signed)
	require.Error(t, err)
}
