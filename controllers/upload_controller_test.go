package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jecakings/garment-api/config"
	"github.com/jecakings/garment-api/models"
	"github.com/jecakings/garment-api/services"
	"github.com/jecakings/garment-api/utils"
)

func newUploadRouter(auth0ID, role string) *gin.Engine {
	router := setupTestRouter()
	router.POST("/uploads", mockAuthMiddleware(auth0ID, role, "mock-token"), UploadImage)
	router.GET("/uploads/:filename", GetUploadedImage)
	return router
}

func multipartRequest(t *testing.T, path, fieldName, filename string, content []byte) *http.Request {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(fieldName, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadImage(t *testing.T) {
	db := setupTestDB(t)
	config.SetDB(db)
	customer := createTestUser(t, db, "auth0|up-cust", "Upload Customer", models.RoleCustomer)

	mock := services.NewMockImageService()
	mock.SetAsMockForTesting()
	defer services.SetImageService(nil)

	router := newUploadRouter(customer.Auth0ID, customer.Role)

	t.Run("Valid PNG is accepted", func(t *testing.T) {
		req := multipartRequest(t, "/uploads", "image", "fabric.png", []byte("png-bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "orders/mock_fabric.png", data["image_key"])
		assert.Contains(t, data["image_url"], "orders/mock_fabric.png")
		assert.True(t, mock.KeyExists("orders/mock_fabric.png"))
	})

	t.Run("Unsupported format is rejected with its validation code", func(t *testing.T) {
		req := multipartRequest(t, "/uploads", "image", "notes.pdf", []byte("pdf-bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_FILE_FORMAT", errorCode(t, w))
	})

	t.Run("Missing file field", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodPost, "/uploads", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "MISSING_FILE", errorCode(t, w))
	})

	t.Run("Uploads disabled without a configured store", func(t *testing.T) {
		services.SetImageService(nil)
		defer mock.SetAsMockForTesting()

		req := multipartRequest(t, "/uploads", "image", "fabric.png", []byte("png-bytes"))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "UPLOADS_UNAVAILABLE", errorCode(t, w))
	})
}

func TestGetUploadedImage(t *testing.T) {
	tmpDir := t.TempDir()
	originalDir := utils.UploadDir
	utils.UploadDir = tmpDir
	defer func() { utils.UploadDir = originalDir }()

	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "sample.png"), []byte("png-bytes"), 0644))

	router := setupTestRouter()
	router.GET("/uploads/:filename", GetUploadedImage)

	t.Run("Serves an existing image with caching headers", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/uploads/sample.png", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
		assert.Equal(t, "public, max-age=86400", w.Header().Get("Cache-Control"))
		assert.Equal(t, "png-bytes", w.Body.String())
	})

	t.Run("Unknown file is 404", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/uploads/missing.png", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "FILE_NOT_FOUND", errorCode(t, w))
	})

	t.Run("Traversal attempts are rejected", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/uploads/..secret.png", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_FILENAME", errorCode(t, w))
	})

	t.Run("Only image extensions are served", func(t *testing.T) {
		req, _ := http.NewRequest(http.MethodGet, "/uploads/report.pdf", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_FILE_TYPE", errorCode(t, w))
	})
}
