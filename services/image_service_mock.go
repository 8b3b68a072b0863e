package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"

	"github.com/abderrahm4ne/ix-project/utils"
)

// MockImageService is a mock implementation of ImageService for testing
// upload handlers without touching the filesystem or S3.
type MockImageService struct {
	mu sync.Mutex

	// UploadedNames records the original filenames of every processed batch
	UploadedNames []string
	// FailWith makes UploadProductImages return this error
	FailWith error
}

// NewMockImageService creates a new mock image service
func NewMockImageService() *MockImageService {
	return &MockImageService{}
}

// SetAsMockForTesting sets this mock as the global image service instance
func (m *MockImageService) SetAsMockForTesting() {
	SetImageService(m)
}

// UploadProductImages validates the batch like the real pipeline and
// returns one canned URL per file.
func (m *MockImageService) UploadProductImages(ctx context.Context, files []*multipart.FileHeader, stagingDir string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailWith != nil {
		return nil, m.FailWith
	}

	urls := make([]string, 0, len(files))
	for i, fileHeader := range files {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			return nil, err
		}
		m.UploadedNames = append(m.UploadedNames, fileHeader.Filename)
		urls = append(urls, fmt.Sprintf("https://mock-bucket.s3.mock-region.amazonaws.com/products/mock_%d.jpg", i))
	}

	return urls, nil
}
