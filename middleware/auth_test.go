package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/jecakings/garment-api/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Auth0Domain:   "test.auth0.example.com",
		Auth0Audience: "https://garment-api.example.com",
	}
}

func TestCustomClaims_Validate(t *testing.T) {
	claims := CustomClaims{Role: "staff", StaffType: "vendor"}
	assert.NoError(t, claims.Validate(context.Background()))
}

func TestGetUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		setupFunc func(*gin.Context)
		wantID    string
		wantErr   bool
	}{
		{
			name: "successfully extracts user ID",
			setupFunc: func(c *gin.Context) {
				c.Set("user_id", "auth0|123456")
			},
			wantID:  "auth0|123456",
			wantErr: false,
		},
		{
			name:      "user ID not found in context",
			setupFunc: func(c *gin.Context) {},
			wantErr:   true,
		},
		{
			name: "user ID is not a string",
			setupFunc: func(c *gin.Context) {
				c.Set("user_id", 123456)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.setupFunc(c)

			got, err := GetUserID(c)
			if tt.wantErr {
				assert.Error(t, err)
				var authErr *AuthError
				assert.ErrorAs(t, err, &authErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantID, got)
		})
	}
}

func TestGetAccessToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successfully extracts token", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("access_token", "raw-bearer-token")

		got, err := GetAccessToken(c)
		assert.NoError(t, err)
		assert.Equal(t, "raw-bearer-token", got)
	})

	t.Run("token not found in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		_, err := GetAccessToken(c)
		assert.Error(t, err)
	})
}

func TestGetClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("successfully extracts claims with role and staff type", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("validated_claims", &validator.ValidatedClaims{
			CustomClaims: &CustomClaims{Role: "staff", StaffType: "customer_service"},
		})

		claims, err := GetClaims(c)
		assert.NoError(t, err)

		custom, ok := claims.CustomClaims.(*CustomClaims)
		assert.True(t, ok)
		assert.Equal(t, "staff", custom.Role)
		assert.Equal(t, "customer_service", custom.StaffType)
	})

	t.Run("claims not found in context", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		_, err := GetClaims(c)
		assert.Error(t, err)
	})

	t.Run("claims have the wrong type", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Set("validated_claims", "not-claims")

		_, err := GetClaims(c)
		assert.Error(t, err)
	})
}

func TestEnsureValidToken_RejectsMissingToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(EnsureValidToken(testConfig()))
	router.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req, _ := http.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
}
