package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viewtube/backend/internal/models"
)

func TestRegisterLoginFlow(t *testing.T) {
	_, r, _ := setupTest(t)

	w := doJSON(r, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email":     "alice@example.com",
		"username":  "alice",
		"password":  "password123",
		"full_name": "Alice Smith",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	// Duplicate email is rejected
	w = doJSON(r, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email":     "alice@example.com",
		"username":  "alice2",
		"password":  "password123",
		"full_name": "Alice Again",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/users/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env = decodeEnvelope(t, w)
	assert.False(t, env.Success)
}

func TestRegisterValidation(t *testing.T) {
	_, r, _ := setupTest(t)

	// Short password fails binding validation
	w := doJSON(r, http.MethodPost, "/api/v1/users/register", "", map[string]string{
		"email":     "bob@example.com",
		"username":  "bob",
		"password":  "short",
		"full_name": "Bob",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCurrentUserRequiresToken(t *testing.T) {
	h, r, _ := setupTest(t)
	_, token := createUser(t, h, "carol")

	w := doJSON(r, http.MethodGet, "/api/v1/users/current-user", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/users/current-user", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/users/current-user", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var user models.User
	require.NoError(t, jsonUnmarshal(env.Data, &user))
	assert.Equal(t, "carol", user.Username)
}

func TestRefreshAndLogout(t *testing.T) {
	h, r, _ := setupTest(t)

	resp, err := h.auth.Register(registerRequest("dave"))
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/v1/users/refresh-token", "", map[string]string{
		"refresh_token": resp.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var rotated struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, jsonUnmarshal(env.Data, &rotated))

	// Logout clears the stored refresh token; the rotated one stops working
	w = doJSON(r, http.MethodPost, "/api/v1/users/logout", resp.AccessToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/api/v1/users/refresh-token", "", map[string]string{
		"refresh_token": rotated.RefreshToken,
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefreshRotation(t *testing.T) {
	h, r, _ := setupTest(t)

	resp, err := h.auth.Register(registerRequest("erin"))
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/v1/users/refresh-token", "", map[string]string{
		"refresh_token": resp.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)
	env := decodeEnvelope(t, w)

	var rotated struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	require.NoError(t, jsonUnmarshal(env.Data, &rotated))
	require.NotEmpty(t, rotated.AccessToken)

	// The new access token authenticates
	w = doJSON(r, http.MethodGet, "/api/v1/users/current-user", rotated.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
