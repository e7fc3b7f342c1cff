package services

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeTestJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodeTestPNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodeJPEGBounds(t *testing.T, data []byte) (int, int) {
	t.Helper()
	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	return img.Bounds().Dx(), img.Bounds().Dy()
}

func TestFitDimensions(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		wantW      int
		wantH      int
	}{
		{"landscape wider than bounds", 2400, 1200, 1200, 800, 1200, 600},
		{"portrait taller than bounds", 1000, 2000, 1200, 800, 400, 800},
		{"both over, height dominates", 2000, 1500, 1200, 800, 1066, 800},
		{"exactly at bounds", 1200, 800, 1200, 800, 1200, 800},
		{"smaller image is never upscaled", 600, 400, 1200, 800, 600, 400},
		{"square into landscape bounds", 1600, 1600, 1200, 800, 800, 800},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := fitDimensions(tt.w, tt.h, tt.maxW, tt.maxH)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestOptimizeScalesDownToBounds(t *testing.T) {
	svc := NewImageService()

	out, err := svc.Optimize(encodeTestJPEG(t, 2400, 1200), 1200, 800, 85)
	require.NoError(t, err)

	w, h := decodeJPEGBounds(t, out)
	assert.Equal(t, 1200, w)
	assert.Equal(t, 600, h)
}

func TestOptimizeKeepsSmallImages(t *testing.T) {
	svc := NewImageService()

	out, err := svc.Optimize(encodeTestJPEG(t, 640, 480), 1200, 800, 85)
	require.NoError(t, err)

	w, h := decodeJPEGBounds(t, out)
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)
}

func TestOptimizeConvertsPNGToJPEG(t *testing.T) {
	svc := NewImageService()

	out, err := svc.Optimize(encodeTestPNG(t, 300, 200), 1200, 800, 85)
	require.NoError(t, err)

	w, h := decodeJPEGBounds(t, out)
	assert.Equal(t, 300, w)
	assert.Equal(t, 200, h)
}

func TestOptimizeRejectsCorruptData(t *testing.T) {
	svc := NewImageService()

	_, err := svc.Optimize([]byte("not an image at all"), 1200, 800, 85)
	assert.Error(t, err)
}

func TestThumbnailIsAlwaysSquare(t *testing.T) {
	svc := NewImageService()

	for _, dims := range [][2]int{{1600, 900}, {900, 1600}, {300, 300}, {120, 450}} {
		out, err := svc.Thumbnail(encodeTestJPEG(t, dims[0], dims[1]), 300, 80)
		require.NoError(t, err)

		w, h := decodeJPEGBounds(t, out)
		assert.Equal(t, 300, w)
		assert.Equal(t, 300, h)
	}
}

// withOrientation splices a minimal EXIF APP1 segment carrying tag 0x0112
// right after the JPEG SOI marker.
func withOrientation(t *testing.T, jpegData []byte, orientation uint16) []byte {
	t.Helper()
	require.True(t, len(jpegData) > 2 && jpegData[0] == 0xFF && jpegData[1] == 0xD8)

	tiff := []byte{
		'I', 'I', 0x2A, 0x00, // little-endian TIFF header
		0x08, 0x00, 0x00, 0x00, // IFD0 offset
		0x01, 0x00, // one entry
		0x12, 0x01, // tag 0x0112 orientation
		0x03, 0x00, // SHORT
		0x01, 0x00, 0x00, 0x00, // count
		byte(orientation), byte(orientation >> 8), 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	payload := append([]byte("Exif\x00\x00"), tiff...)
	segment := append([]byte{0xFF, 0xE1, byte((len(payload) + 2) >> 8), byte(len(payload) + 2)}, payload...)

	out := make([]byte, 0, len(jpegData)+len(segment))
	out = append(out, jpegData[:2]...)
	out = append(out, segment...)
	out = append(out, jpegData[2:]...)
	return out
}

func TestReadOrientation(t *testing.T) {
	plain := encodeTestJPEG(t, 40, 20)

	assert.Equal(t, uint16(1), readOrientation(plain), "missing metadata defaults to 1")
	assert.Equal(t, uint16(6), readOrientation(withOrientation(t, plain, 6)))
	assert.Equal(t, uint16(8), readOrientation(withOrientation(t, plain, 8)))
}

func TestOptimizeAppliesEXIFOrientation(t *testing.T) {
	svc := NewImageService()

	rotated := withOrientation(t, encodeTestJPEG(t, 40, 20), 6)
	out, err := svc.Optimize(rotated, 1200, 800, 85)
	require.NoError(t, err)

	w, h := decodeJPEGBounds(t, out)
	assert.Equal(t, 20, w)
	assert.Equal(t, 40, h)
}

func TestApplyOrientation(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))

	tests := []struct {
		name        string
		orientation uint16
		wantW       int
		wantH       int
	}{
		{"normal is untouched", 1, 40, 20},
		{"upside down keeps dimensions", 3, 40, 20},
		{"rotated clockwise swaps dimensions", 6, 20, 40},
		{"rotated counter clockwise swaps dimensions", 8, 20, 40},
		{"unknown value is ignored", 9, 40, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := applyOrientation(src, tt.orientation)
			assert.Equal(t, tt.wantW, out.Bounds().Dx())
			assert.Equal(t, tt.wantH, out.Bounds().Dy())
		})
	}
}
