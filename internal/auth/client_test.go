package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))

		var body credentialsBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "someone@example.com", body.Email)

		json.NewEncoder(w).Encode(Session{
			AccessToken: "jwt-abc",
			TokenType:   "bearer",
			ExpiresIn:   3600,
			User:        User{ID: "user-1", Email: body.Email},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key")
	sess, err := c.SignIn(context.Background(), "someone@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-abc", sess.AccessToken)
	assert.Equal(t, "user-1", sess.User.ID)
}

func TestClientSignInErrorSurfacesDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key")
	_, err := c.SignIn(context.Background(), "someone@example.com", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid login credentials")
}

func TestClientSignUp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		json.NewEncoder(w).Encode(Session{
			AccessToken: "jwt-new",
			User:        User{ID: "user-2", Email: "new@example.com"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key")
	sess, err := c.SignUp(context.Background(), "new@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "jwt-new", sess.AccessToken)
}

func TestClientRejectsSessionWithoutToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"user": User{ID: "user-1"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key")
	_, err := c.SignIn(context.Background(), "someone@example.com", "secret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no access token")
}

func TestClientSignOut(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key")
	assert.NoError(t, c.SignOut(context.Background(), "jwt-abc"))
}

func TestClientGetUser(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/user", r.URL.Path)
		assert.Equal(t, "Bearer jwt-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(User{ID: "user-1", Email: "someone@example.com"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon-key")
	user, err := c.GetUser(context.Background(), "jwt-abc")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}
