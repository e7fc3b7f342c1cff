package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgf/backend/internal/config"
)

func uploadConfig(storageURL string) *config.Config {
	return &config.Config{
		StorageURL:         storageURL,
		StorageServiceKey:  "service-key",
		StorageBucket:      "oeuvres",
		UploadMaxImageSize: 50 * 1024 * 1024,
		UploadMaxVideoSize: 500 * 1024 * 1024,
		ImageMaxWidth:      1200,
		ImageMaxHeight:     800,
		ImageQuality:       85,
		ThumbnailSize:      300,
		ThumbnailQuality:   80,
	}
}

// fakeStorage records uploaded object paths and can fail selected ones.
type fakeStorage struct {
	mu      sync.Mutex
	puts    []string
	deletes []string
	failOn  string
}

func newFakeStorage(t *testing.T, failOn string) (*fakeStorage, *httptest.Server) {
	t.Helper()
	fs := &fakeStorage{failOn: failOn}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := strings.TrimPrefix(r.URL.Path, "/storage/v1/object/oeuvres/")
		fs.mu.Lock()
		defer fs.mu.Unlock()
		switch r.Method {
		case http.MethodPost:
			if fs.failOn != "" && strings.Contains(path, fs.failOn) {
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			fs.puts = append(fs.puts, path)
		case http.MethodDelete:
			fs.deletes = append(fs.deletes, path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)
	return fs, srv
}

func newUploadService(cfg *config.Config) *UploadService {
	return NewUploadService(cfg, NewImageService(), NewStorageService(cfg))
}

func TestMapCategoryToFolder(t *testing.T) {
	tests := []struct {
		slug   string
		folder string
	}{
		{"peintures", "peinture"},
		{"livres-objets", "livre-objet"},
		{"papiers-japonais", "papier-japonais"},
		{"toiles-jute", "toile-de-jute"},
		{"sculptures", "sculpture"},
		{"land-art", "land-art"},
		{"PEINTURES", "peinture"},
		{"unknown-category", "nouvelles-oeuvres"},
		{"", "nouvelles-oeuvres"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.folder, MapCategoryToFolder(tt.slug), "slug %q", tt.slug)
	}
}

func TestGenerateFileName(t *testing.T) {
	pattern := regexp.MustCompile(`^peintures-\d{8}_\d{6}-[0-9a-f]{8}\.jpg$`)

	name := generateFileName("peintures")
	assert.Regexp(t, pattern, name)

	// empty slug falls back to a generic token
	assert.Regexp(t, `^image-\d{8}_\d{6}-[0-9a-f]{8}\.jpg$`, generateFileName(""))

	// random suffix makes consecutive names distinct
	assert.NotEqual(t, generateFileName("peintures"), generateFileName("peintures"))
}

func TestValidateImage(t *testing.T) {
	svc := newUploadService(uploadConfig("http://storage.invalid"))

	valid := encodeTestJPEG(t, 10, 10)

	tests := []struct {
		name        string
		data        []byte
		fileName    string
		contentType string
		wantErr     string
	}{
		{"valid jpeg", valid, "photo.jpg", "image/jpeg", ""},
		{"valid webp extension", valid, "photo.webp", "image/webp", ""},
		{"empty file", nil, "photo.jpg", "image/jpeg", "empty"},
		{"wrong content type", valid, "doc.jpg", "application/pdf", "invalid file type"},
		{"unsupported extension", valid, "animation.gif", "image/gif", "unsupported image extension"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.validateImage(tt.data, tt.fileName, tt.contentType)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidateImageSizeLimit(t *testing.T) {
	cfg := uploadConfig("http://storage.invalid")
	cfg.UploadMaxImageSize = 64
	svc := newUploadService(cfg)

	err := svc.validateImage(make([]byte, 65), "big.jpg", "image/jpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too large")
}

func TestUploadImageStoresUnderCategoryFolder(t *testing.T) {
	fs, srv := newFakeStorage(t, "")
	svc := newUploadService(uploadConfig(srv.URL))

	result, err := svc.UploadImage(context.Background(), encodeTestJPEG(t, 2000, 1500), "oeuvre.jpg", "image/jpeg", "peintures", false)
	require.NoError(t, err)

	require.Len(t, fs.puts, 1)
	assert.True(t, strings.HasPrefix(fs.puts[0], "peinture/images/"), "got %s", fs.puts[0])
	assert.Contains(t, result.ImageURL, "/storage/v1/object/public/oeuvres/peinture/images/")
	assert.Empty(t, result.ThumbnailURL)
}

func TestUploadImageWithThumbnail(t *testing.T) {
	fs, srv := newFakeStorage(t, "")
	svc := newUploadService(uploadConfig(srv.URL))

	result, err := svc.UploadImage(context.Background(), encodeTestJPEG(t, 800, 600), "oeuvre.jpg", "image/jpeg", "sculptures", true)
	require.NoError(t, err)

	require.Len(t, fs.puts, 2)
	// thumbnail is written before the main image
	assert.True(t, strings.HasPrefix(fs.puts[0], "sculpture/thumbnails/thumb_"), "got %s", fs.puts[0])
	assert.True(t, strings.HasPrefix(fs.puts[1], "sculpture/images/"), "got %s", fs.puts[1])
	assert.Contains(t, result.ThumbnailURL, "/thumbnails/thumb_")
}

func TestUploadImageCleansUpThumbnailOnMainFailure(t *testing.T) {
	fs, srv := newFakeStorage(t, "/images/")
	svc := newUploadService(uploadConfig(srv.URL))

	_, err := svc.UploadImage(context.Background(), encodeTestJPEG(t, 800, 600), "oeuvre.jpg", "image/jpeg", "peintures", true)
	require.Error(t, err)

	require.Len(t, fs.puts, 1)
	require.Len(t, fs.deletes, 1)
	assert.True(t, strings.HasPrefix(fs.deletes[0], "peinture/thumbnails/thumb_"), "got %s", fs.deletes[0])
}

func TestUploadExhibitionImage(t *testing.T) {
	fs, srv := newFakeStorage(t, "")
	svc := newUploadService(uploadConfig(srv.URL))

	url, err := svc.UploadExhibitionImage(context.Background(), encodeTestJPEG(t, 400, 300), "vue.jpg", "image/jpeg", "retrospective-2025-7", 2)
	require.NoError(t, err)

	require.Len(t, fs.puts, 1)
	assert.Equal(t, "expositions/retrospective-2025-7/images/image-2.jpg", fs.puts[0])
	assert.Contains(t, url, "expositions/retrospective-2025-7/images/image-2.jpg")
}

func TestUploadExhibitionVideo(t *testing.T) {
	fs, srv := newFakeStorage(t, "")
	svc := newUploadService(uploadConfig(srv.URL))

	url, err := svc.UploadExhibitionVideo(context.Background(), []byte("mp4 payload"), "video/mp4", "retrospective-2025-7", 1)
	require.NoError(t, err)

	require.Len(t, fs.puts, 1)
	assert.Equal(t, "expositions/retrospective-2025-7/videos/video-1.mp4", fs.puts[0])
	assert.Contains(t, url, "videos/video-1.mp4")
}

func TestUploadExhibitionVideoRejectsNonMP4(t *testing.T) {
	_, srv := newFakeStorage(t, "")
	svc := newUploadService(uploadConfig(srv.URL))

	_, err := svc.UploadExhibitionVideo(context.Background(), []byte("webm payload"), "video/webm", "slug", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MP4")
}
