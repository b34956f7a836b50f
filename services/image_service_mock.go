package services

import (
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/jecakings/garment-api/utils"
)

// MockImageService is a mock implementation of ImageService for testing
type MockImageService struct {
	uploadedKeys map[string]bool
	mu           sync.RWMutex

	// UploadErr, when set, is returned by UploadImage after validation
	UploadErr error
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{
		uploadedKeys: make(map[string]bool),
	}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadImage validates the file like the real service, then records the key
func (m *MockImageService) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	if err := utils.ValidateImageFile(fileHeader); err != nil {
		return "", err
	}
	if m.UploadErr != nil {
		return "", m.UploadErr
	}

	key := fmt.Sprintf("orders/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedKeys[key] = true
	m.mu.Unlock()

	return key, nil
}

// GetImageURL returns a deterministic URL for an uploaded key
func (m *MockImageService) GetImageURL(imageKey string) (string, error) {
	if imageKey == "" {
		return "", nil
	}

	m.mu.RLock()
	exists := m.uploadedKeys[imageKey]
	m.mu.RUnlock()

	if !exists {
		return "", fmt.Errorf("image not found in mock storage: %s", imageKey)
	}

	return fmt.Sprintf("https://test-bucket.s3.us-east-1.amazonaws.com/%s?mock=true", imageKey), nil
}

// DeleteImage removes a key from mock storage
func (m *MockImageService) DeleteImage(imageKey string) error {
	if imageKey == "" {
		return nil
	}

	m.mu.Lock()
	delete(m.uploadedKeys, imageKey)
	m.mu.Unlock()

	return nil
}

// KeyExists checks if a key was uploaded
func (m *MockImageService) KeyExists(imageKey string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.uploadedKeys[imageKey]
}

// Clear removes all keys from mock storage
func (m *MockImageService) Clear() {
	m.mu.Lock()
	m.uploadedKeys = make(map[string]bool)
	m.mu.Unlock()
}
