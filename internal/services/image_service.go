package services

import (
	"bytes"
	"fmt"
	"image"
	"log"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"github.com/evanoberholster/imagemeta"
)

// ImageService turns uploaded bytes into bounded, orientation-corrected JPEGs.
// All transforms are lossy one-way operations.
type ImageService struct{}

func NewImageService() *ImageService {
	return &ImageService{}
}

// Optimize decodes raw image bytes, corrects EXIF orientation, scales the
// image down to fit maxWidth x maxHeight (never up) and re-encodes as JPEG
// at the given quality (1-100).
func (s *ImageService) Optimize(raw []byte, maxWidth, maxHeight, quality int) ([]byte, error) {
	img, err := s.decodeOriented(raw)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	newW, newH := fitDimensions(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)
	if newW != bounds.Dx() || newH != bounds.Dy() {
		img = imaging.Resize(img, newW, newH, imaging.CatmullRom)
	}

	return encodeJPEG(img, quality)
}

// Thumbnail center-crops the largest square of the source and resamples it
// to size x size, encoded as JPEG at the given quality.
func (s *ImageService) Thumbnail(raw []byte, size, quality int) ([]byte, error) {
	img, err := s.decodeOriented(raw)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	side := bounds.Dx()
	if bounds.Dy() < side {
		side = bounds.Dy()
	}

	square := imaging.CropCenter(img, side, side)
	thumb := imaging.Resize(square, size, size, imaging.CatmullRom)

	return encodeJPEG(thumb, quality)
}

// decodeOriented decodes the pixel data and applies the EXIF orientation
// (tag 0x0112). Missing or unreadable metadata is non-fatal.
func (s *ImageService) decodeOriented(raw []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return applyOrientation(img, readOrientation(raw)), nil
}

// readOrientation extracts the EXIF orientation value, defaulting to 1
// (no rotation) when metadata is absent or unreadable.
func readOrientation(raw []byte) uint16 {
	meta, err := imagemeta.Decode(bytes.NewReader(raw))
	if err != nil {
		log.Printf("No EXIF metadata: %v", err)
		return 1
	}
	return uint16(meta.Orientation)
}

// applyOrientation rotates the image for the EXIF orientation values the
// upload sources actually produce: 3 (180), 6 (90 CW), 8 (90 CCW).
func applyOrientation(img image.Image, orientation uint16) image.Image {
	switch orientation {
	case 3:
		return imaging.Rotate180(img)
	case 6:
		return imaging.Rotate270(img)
	case 8:
		return imaging.Rotate90(img)
	}
	return img
}

// fitDimensions scales (w, h) to fit within (maxW, maxH) preserving aspect
// ratio, truncating to whole pixels. Images already within bounds keep
// their original size.
func fitDimensions(w, h, maxW, maxH int) (int, int) {
	widthRatio := float64(maxW) / float64(w)
	heightRatio := float64(maxH) / float64(h)
	ratio := widthRatio
	if heightRatio < ratio {
		ratio = heightRatio
	}
	if ratio >= 1.0 {
		return w, h
	}
	return int(float64(w) * ratio), int(float64(h) * ratio)
}

func encodeJPEG(img image.Image, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
