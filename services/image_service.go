package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for staged uploads
	"log"
	"mime/multipart"
	"os"
	"time"

	"github.com/nfnt/resize"

	"github.com/abderrahm4ne/ix-project/utils"
)

// Transform bounds applied to every catalog image before storage.
const (
	maxImageWidth  = 800
	maxImageHeight = 600
	jpegQuality    = 80
)

// ImageService handles the admin image pipeline: validate, stage locally,
// bound within 800x600, forward to external storage and clean up.
type ImageService interface {
	// UploadProductImages processes a batch of uploaded files and returns
	// one stable hosted URL per file, in input order. Any per-file failure
	// fails the whole batch and rolls back already-stored objects.
	UploadProductImages(ctx context.Context, files []*multipart.FileHeader, stagingDir string) ([]string, error)
}

// S3ImageService implements ImageService using AWS S3 for storage
type S3ImageService struct {
	s3Service S3Interface
}

var imageServiceInstance ImageService

// InitImageService initializes the image service with S3 backend
func InitImageService(s3Service S3Interface) ImageService {
	imageServiceInstance = &S3ImageService{
		s3Service: s3Service,
	}
	return imageServiceInstance
}

// GetImageService returns the initialized image service instance
func GetImageService() ImageService {
	return imageServiceInstance
}

// SetImageService sets the image service instance (primarily for testing)
func SetImageService(service ImageService) {
	imageServiceInstance = service
}

// UploadProductImages stages, transforms and stores a batch of images.
func (s *S3ImageService) UploadProductImages(ctx context.Context, files []*multipart.FileHeader, stagingDir string) ([]string, error) {
	urls := make([]string, 0, len(files))
	keys := make([]string, 0, len(files))
	staged := make([]string, 0, len(files))

	cleanup := func() {
		for _, path := range staged {
			if err := utils.RemoveStagedFile(path); err != nil {
				log.Printf("warning: %v", err)
			}
		}
	}

	rollback := func() {
		for _, key := range keys {
			if err := s.s3Service.DeleteFile(ctx, key); err != nil {
				log.Printf("warning: failed to roll back stored image %s: %v", key, err)
			}
		}
	}

	for i, fileHeader := range files {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			cleanup()
			rollback()
			return nil, err
		}

		path, err := utils.SaveUploadedFile(fileHeader, stagingDir)
		if err != nil {
			cleanup()
			rollback()
			return nil, fmt.Errorf("failed to stage upload: %w", err)
		}
		staged = append(staged, path)

		content, err := transformImage(path)
		if err != nil {
			cleanup()
			rollback()
			return nil, err
		}

		key := fmt.Sprintf("products/%d_%d.jpg", time.Now().UnixNano(), i)
		url, err := s.s3Service.UploadBytes(ctx, key, content, "image/jpeg")
		if err != nil {
			cleanup()
			rollback()
			return nil, fmt.Errorf("failed to store image: %w", err)
		}

		keys = append(keys, key)
		urls = append(urls, url)
	}

	cleanup()
	return urls, nil
}

// transformImage decodes a staged file, bounds it within 800x600 preserving
// the aspect ratio and re-encodes it as JPEG. Images already inside the
// bounds are not upscaled.
func transformImage(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open staged file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			log.Printf("warning: failed to close staged file: %v", closeErr)
		}
	}()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &utils.FileUploadError{
			Code:    "INVALID_IMAGE",
			Message: "File is not a decodable image",
		}
	}

	bounded := resize.Thumbnail(maxImageWidth, maxImageHeight, img, resize.Lanczos3)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, bounded, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return buf.Bytes(), nil
}
