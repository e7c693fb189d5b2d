package catalog

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

func testImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestThumbnailDownscales(t *testing.T) {
	data := testImage(t, 800, 1200)
	thumb, err := Thumbnail(data, 320)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}

	img, err := jpeg.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 320 {
		t.Errorf("width = %d, want 320", got)
	}
	// Aspect ratio preserved: 800x1200 -> 320x480.
	if got := img.Bounds().Dy(); got != 480 {
		t.Errorf("height = %d, want 480", got)
	}
}

func TestThumbnailKeepsSmallImages(t *testing.T) {
	data := testImage(t, 100, 150)
	thumb, err := Thumbnail(data, 320)
	if err != nil {
		t.Fatalf("Thumbnail failed: %v", err)
	}
	img, err := jpeg.Decode(bytes.NewReader(thumb))
	if err != nil {
		t.Fatalf("thumbnail is not a JPEG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 100 {
		t.Errorf("width = %d, want 100 (no upscaling)", got)
	}
}

func TestThumbnailRejectsGarbage(t *testing.T) {
	if _, err := Thumbnail([]byte("not an image"), 320); err == nil {
		t.Error("expected error for undecodable data")
	}
}
