package utils

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

// newFileHeader builds a real multipart file header from in-memory content
func newFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("images", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, "/", &body)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if err := req.ParseMultipartForm(32 << 20); err != nil {
		t.Fatalf("Failed to parse multipart form: %v", err)
	}

	return req.MultipartForm.File["images"][0]
}

func TestValidateImageFile(t *testing.T) {
	tests := []struct {
		name         string
		filename     string
		content      []byte
		expectedCode string
	}{
		{
			name:     "Valid PNG",
			filename: "photo.png",
			content:  []byte("png-bytes"),
		},
		{
			name:     "Valid JPG",
			filename: "photo.jpg",
			content:  []byte("jpg-bytes"),
		},
		{
			name:     "Valid JPEG with uppercase extension",
			filename: "photo.JPEG",
			content:  []byte("jpeg-bytes"),
		},
		{
			name:         "Unsupported format",
			filename:     "photo.gif",
			content:      []byte("gif-bytes"),
			expectedCode: "INVALID_FILE_FORMAT",
		},
		{
			name:         "No extension",
			filename:     "photo",
			content:      []byte("bytes"),
			expectedCode: "INVALID_FILE_FORMAT",
		},
		{
			name:         "Oversized file",
			filename:     "huge.png",
			content:      make([]byte, MaxFileSize+1),
			expectedCode: "FILE_TOO_LARGE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateImageFile(newFileHeader(t, tt.filename, tt.content))

			if tt.expectedCode == "" {
				assert.NoError(t, err)
				return
			}

			var uploadErr *FileUploadError
			assert.ErrorAs(t, err, &uploadErr)
			assert.Equal(t, tt.expectedCode, uploadErr.Code)
		})
	}
}

func TestSaveUploadedFile(t *testing.T) {
	dir := t.TempDir()
	content := []byte("image content")

	path, err := SaveUploadedFile(newFileHeader(t, "photo.png", content), dir)
	assert.NoError(t, err)

	saved, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Equal(t, content, saved)
}

func TestSaveUploadedFileGeneratesUniqueNames(t *testing.T) {
	dir := t.TempDir()
	header := newFileHeader(t, "photo.png", []byte("content"))

	first, err := SaveUploadedFile(header, dir)
	assert.NoError(t, err)
	second, err := SaveUploadedFile(header, dir)
	assert.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestRemoveStagedFile(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveUploadedFile(newFileHeader(t, "photo.png", []byte("content")), dir)
	assert.NoError(t, err)

	assert.NoError(t, RemoveStagedFile(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Removing a file that is already gone is not an error
	assert.NoError(t, RemoveStagedFile(path))
}
