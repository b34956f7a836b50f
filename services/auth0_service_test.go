package services

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jecakings/garment-api/config"
)

func TestAuth0Service_GetUserInfo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/userinfo" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if r.Header.Get("Authorization") != "Bearer valid-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(Auth0UserInfo{
			Sub:   "auth0|abc123",
			Email: "tailor@example.com",
			Name:  "Test Tailor",
		})
	}))
	defer server.Close()

	svc := NewAuth0Service(&config.Config{Auth0Domain: server.URL})

	t.Run("Fetches the profile for a valid token", func(t *testing.T) {
		info, err := svc.GetUserInfo("valid-token")
		require.NoError(t, err)
		assert.Equal(t, "auth0|abc123", info.Sub)
		assert.Equal(t, "tailor@example.com", info.Email)
		assert.Equal(t, "Test Tailor", info.Name)
	})

	t.Run("Non-200 responses become errors", func(t *testing.T) {
		_, err := svc.GetUserInfo("bad-token")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "401")
	})

	t.Run("Unreachable provider", func(t *testing.T) {
		dead := NewAuth0Service(&config.Config{Auth0Domain: "http://127.0.0.1:1"})
		_, err := dead.GetUserInfo("any-token")
		assert.Error(t, err)
	})
}
