package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(t *testing.T, path string, body map[string]string, headers ...string) *http.Request {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	if len(headers) > 0 {
		req.Header.Set("Authorization", headers[0])
	}
	return req
}

func TestSignup(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name           string
		body           map[string]string
		expectedStatus int
	}{
		{
			name: "Success",
			body: map[string]string{
				"username": "new_user",
				"email":    "new@example.com",
				"password": "SecurePass12!",
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Missing Fields",
			body: map[string]string{
				"username": "new_user2",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Weak Password",
			body: map[string]string{
				"username": "new_user3",
				"email":    "new3@example.com",
				"password": "weak",
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Duplicate Email",
			body: map[string]string{
				"username": "other_user",
				"email":    "new@example.com",
				"password": "SecurePass12!",
			},
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := env.app.Test(postJSON(t, "/api/auth/signup", tt.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			if tt.expectedStatus == http.StatusCreated {
				var result struct {
					Token string `json:"token"`
				}
				decodeJSON(t, resp, &result)
				assert.NotEmpty(t, result.Token)
			}
		})
	}
}

func TestLogin(t *testing.T) {
	env := setupTestServer(t)
	env.createUser(t, "alice")

	t.Run("Success", func(t *testing.T) {
		resp, err := env.app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "Password123!",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Token string `json:"token"`
		}
		decodeJSON(t, resp, &result)
		assert.NotEmpty(t, result.Token)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		resp, err := env.app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "alice@example.com",
			"password": "not-the-password",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		resp, err := env.app.Test(postJSON(t, "/api/auth/login", map[string]string{
			"email":    "nobody@example.com",
			"password": "Password123!",
		}))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := setupTestServer(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/uploads"},
		{http.MethodPost, "/api/images"},
		{http.MethodGet, "/api/images/mine"},
		{http.MethodPost, "/api/images/1/like"},
		{http.MethodPost, "/api/profile/image"},
	}

	for _, p := range paths {
		req := httptest.NewRequest(p.method, p.path, nil)
		resp, err := env.app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
	}
}
