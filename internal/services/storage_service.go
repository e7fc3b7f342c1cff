package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/pgf/backend/internal/config"
)

// StorageService talks to the object-storage HTTP API: authenticated writes
// under storage/v1/object/{bucket}/..., public reads under
// storage/v1/object/public/{bucket}/...
type StorageService struct {
	cfg    *config.Config
	client *http.Client
}

func NewStorageService(cfg *config.Config) *StorageService {
	return &StorageService{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.StorageTimeout,
		},
	}
}

// Put uploads data to folder/fileName in the configured bucket and returns
// the public URL. The public URL is derived, no lookup needed after a
// successful write.
func (s *StorageService) Put(ctx context.Context, data []byte, folder, fileName string) (string, error) {
	objectPath := folder + "/" + fileName
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.cfg.StorageURL, s.cfg.StorageBucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.StorageServiceKey)
	req.Header.Set("x-upsert", "true")
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = int64(len(data))

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpload, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("%w with status %d: %s", ErrUpload, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	publicURL := s.PublicURL(objectPath)
	log.Printf("Uploaded object: %s", publicURL)
	return publicURL, nil
}

// Delete removes the object behind a public URL. Best effort: URLs from a
// different host are a no-op, and backend errors are logged, never returned.
func (s *StorageService) Delete(ctx context.Context, publicURL string) {
	objectPath := s.extractObjectPath(publicURL)
	if objectPath == "" {
		log.Printf("Skipping delete, URL not in configured storage: %s", publicURL)
		return
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.cfg.StorageURL, s.cfg.StorageBucket, objectPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		log.Printf("Failed to build delete request for %s: %v", publicURL, err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.StorageServiceKey)

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("Failed to delete object %s: %v", objectPath, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("Delete of %s returned status %d", objectPath, resp.StatusCode)
		return
	}
	log.Printf("Deleted object: %s", objectPath)
}

// PublicURL derives the public read URL for an object path
func (s *StorageService) PublicURL(objectPath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.cfg.StorageURL, s.cfg.StorageBucket, objectPath)
}

// TransformURL builds a render URL that resizes an already-uploaded object
// on the fly via query parameters.
func (s *StorageService) TransformURL(publicURL string, width, height, quality int) string {
	objectPath := s.extractObjectPath(publicURL)
	if objectPath == "" {
		return publicURL
	}
	return fmt.Sprintf("%s/storage/v1/render/image/public/%s/%s?width=%d&height=%d&resize=contain&quality=%d",
		s.cfg.StorageURL, s.cfg.StorageBucket, objectPath, width, height, quality)
}

// extractObjectPath strips the known public-URL prefix; an empty result
// means the URL does not belong to the configured bucket.
func (s *StorageService) extractObjectPath(publicURL string) string {
	prefix := fmt.Sprintf("%s/storage/v1/object/public/%s/", s.cfg.StorageURL, s.cfg.StorageBucket)
	if !strings.HasPrefix(publicURL, prefix) {
		return ""
	}
	return strings.TrimPrefix(publicURL, prefix)
}
