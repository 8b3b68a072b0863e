package services

import (
	"context"
	"fmt"
	"sync"
)

// MockS3Service is a mock implementation of S3Interface for testing
type MockS3Service struct {
	storedObjects map[string][]byte // map of key to object content
	mu            sync.RWMutex

	// FailUpload makes every UploadBytes call fail, for batch-failure tests
	FailUpload bool
	// FailAfter fails uploads once this many have succeeded (0 disables)
	FailAfter int

	uploadCount int
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		storedObjects: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadBytes simulates storing an object and returns a mock URL
func (m *MockS3Service) UploadBytes(ctx context.Context, key string, content []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpload || (m.FailAfter > 0 && m.uploadCount >= m.FailAfter) {
		return "", fmt.Errorf("mock S3 upload failure")
	}

	m.uploadCount++
	stored := make([]byte, len(content))
	copy(stored, content)
	m.storedObjects[key] = stored

	return fmt.Sprintf("https://mock-bucket.s3.mock-region.amazonaws.com/%s", key), nil
}

// DeleteFile simulates deleting an object
func (m *MockS3Service) DeleteFile(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.storedObjects, key)
	return nil
}

// StoredCount returns how many objects the mock currently holds
func (m *MockS3Service) StoredCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.storedObjects)
}

// HasObject reports whether an object is stored under the given key
func (m *MockS3Service) HasObject(key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.storedObjects[key]
	return ok
}
