package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pgf/backend/internal/config"
)

// UploadResult is the response shape of a completed image upload
type UploadResult struct {
	ImageURL     string `json:"imageUrl"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
}

// UploadService composes validation, image optimization and storage writes
// into one upload operation.
type UploadService struct {
	cfg            *config.Config
	imageService   *ImageService
	storageService *StorageService
}

func NewUploadService(cfg *config.Config, imageService *ImageService, storageService *StorageService) *UploadService {
	return &UploadService{
		cfg:            cfg,
		imageService:   imageService,
		storageService: storageService,
	}
}

var allowedImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// storageFolders maps a category slug to its storage folder. Unknown
// categories land in the fallback folder.
var storageFolders = map[string]string{
	"collages-dessins": "collages-dessins",
	"fils-de-fer":      "fils-de-fer",
	"land-art":         "land-art",
	"livres-objets":    "livre-objet",
	"papiers-japonais": "papier-japonais",
	"peintures":        "peinture",
	"sacs-colliers":    "sacs-colliers",
	"sculptures":       "sculpture",
	"toiles-jute":      "toile-de-jute",
	"yaya":             "yaya",
	"exhibitions":      "exhibitions",
}

const fallbackFolder = "nouvelles-oeuvres"

// MapCategoryToFolder resolves the storage folder for a category slug
func MapCategoryToFolder(categorySlug string) string {
	if folder, ok := storageFolders[strings.ToLower(categorySlug)]; ok {
		return folder
	}
	return fallbackFolder
}

// UploadImage validates, optimizes and stores an artwork image. With
// withThumbnail set, a 300x300 center-cropped thumbnail is stored alongside.
// The thumbnail goes up first so a stored main image always has its
// thumbnail; if the main upload fails the thumbnail is deleted best-effort.
func (s *UploadService) UploadImage(ctx context.Context, data []byte, originalName, contentType, categorySlug string, withThumbnail bool) (*UploadResult, error) {
	if err := s.validateImage(data, originalName, contentType); err != nil {
		return nil, err
	}

	optimized, err := s.imageService.Optimize(data, s.cfg.ImageMaxWidth, s.cfg.ImageMaxHeight, s.cfg.ImageQuality)
	if err != nil {
		return nil, err
	}

	folder := MapCategoryToFolder(categorySlug)
	fileName := generateFileName(categorySlug)

	var thumbnailURL string
	if withThumbnail {
		thumb, err := s.imageService.Thumbnail(data, s.cfg.ThumbnailSize, s.cfg.ThumbnailQuality)
		if err != nil {
			return nil, err
		}
		thumbnailURL, err = s.storageService.Put(ctx, thumb, folder+"/thumbnails", "thumb_"+fileName)
		if err != nil {
			return nil, err
		}
	}

	imageURL, err := s.storageService.Put(ctx, optimized, folder+"/images", fileName)
	if err != nil {
		if thumbnailURL != "" {
			s.storageService.Delete(ctx, thumbnailURL)
		}
		return nil, err
	}

	return &UploadResult{ImageURL: imageURL, ThumbnailURL: thumbnailURL}, nil
}

// UploadExhibitionImage stores an optimized image under the exhibition's
// folder with an index-based name.
func (s *UploadService) UploadExhibitionImage(ctx context.Context, data []byte, originalName, contentType, exhibitionSlug string, imageIndex int) (string, error) {
	if err := s.validateImage(data, originalName, contentType); err != nil {
		return "", err
	}

	optimized, err := s.imageService.Optimize(data, s.cfg.ImageMaxWidth, s.cfg.ImageMaxHeight, s.cfg.ImageQuality)
	if err != nil {
		return "", err
	}

	folder := fmt.Sprintf("expositions/%s/images", exhibitionSlug)
	fileName := fmt.Sprintf("image-%d.jpg", imageIndex)

	return s.storageService.Put(ctx, optimized, folder, fileName)
}

// UploadExhibitionVideo stores an MP4 as-is under the exhibition's folder
func (s *UploadService) UploadExhibitionVideo(ctx context.Context, data []byte, contentType, exhibitionSlug string, videoIndex int) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("file is empty")
	}
	if int64(len(data)) > s.cfg.UploadMaxVideoSize {
		return "", fmt.Errorf("video too large: %d bytes (max: %d)", len(data), s.cfg.UploadMaxVideoSize)
	}
	if contentType != "video/mp4" {
		return "", fmt.Errorf("only MP4 videos are supported, got %s", contentType)
	}

	folder := fmt.Sprintf("expositions/%s/videos", exhibitionSlug)
	fileName := fmt.Sprintf("video-%d.mp4", videoIndex)

	return s.storageService.Put(ctx, data, folder, fileName)
}

// DeleteImage removes a stored object by its public URL, best effort
func (s *UploadService) DeleteImage(ctx context.Context, imageURL string) {
	s.storageService.Delete(ctx, imageURL)
}

func (s *UploadService) validateImage(data []byte, originalName, contentType string) error {
	if len(data) == 0 {
		return fmt.Errorf("file is empty")
	}
	if int64(len(data)) > s.cfg.UploadMaxImageSize {
		return fmt.Errorf("file too large: %d bytes (max: %d)", len(data), s.cfg.UploadMaxImageSize)
	}
	if !strings.HasPrefix(contentType, "image/") {
		return fmt.Errorf("invalid file type: %s", contentType)
	}
	ext := strings.ToLower(filepath.Ext(originalName))
	if !allowedImageExtensions[ext] {
		return fmt.Errorf("unsupported image extension: %s", ext)
	}
	return nil
}

// generateFileName builds a collision-resistant name: sanitized category
// token, second-resolution timestamp and an 8-hex random suffix. Output is
// always .jpg since every image is re-encoded.
func generateFileName(categorySlug string) string {
	token := strings.ToLower(strings.TrimSpace(categorySlug))
	if token == "" {
		token = "image"
	}
	timestamp := time.Now().Format("20060102_150405")
	suffix := uuid.New().String()[:8]
	return fmt.Sprintf("%s-%s-%s.jpg", token, timestamp, suffix)
}
