package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
)

func encodeTestJPEG(t *testing.T, width int, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 120, A: 255})
		}
	}
	var buffer bytes.Buffer
	if err := jpeg.Encode(&buffer, img, nil); err != nil {
		t.Fatalf("could not encode test image: %v", err)
	}
	return buffer.Bytes()
}

func TestDecodeBase64Payload(t *testing.T) {
	raw := encodeTestJPEG(t, 10, 10)
	encoded := base64.StdEncoding.EncodeToString(raw)

	tests := []struct {
		name    string
		payload string
		wantErr error
	}{
		{"plain base64", encoded, nil},
		{"data url prefix", "data:image/jpeg;base64," + encoded, nil},
		{"surrounding whitespace", "  " + encoded + "\n", nil},
		{"empty payload", "", ErrInvalidImage},
		{"only a prefix", "data:image/jpeg;base64,", ErrInvalidImage},
		{"not base64", "%%%not-base64%%%", ErrInvalidImage},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decoded, err := DecodeBase64Payload(test.payload)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("expected %v, got %v", test.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(decoded, raw) {
				t.Error("decoded bytes do not round trip")
			}
		})
	}
}

func TestNormalizeForExtractionKeepsSmallImages(t *testing.T) {
	raw := encodeTestJPEG(t, 320, 240)
	normalized, err := NormalizeForExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(normalized))
	if err != nil {
		t.Fatalf("normalized output does not decode: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() != 320 || bounds.Dy() != 240 {
		t.Errorf("small image was resized to %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizeForExtractionDownscalesLargeImages(t *testing.T) {
	raw := encodeTestJPEG(t, 1600, 1200)
	normalized, err := NormalizeForExtraction(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	decoded, _, err := image.Decode(bytes.NewReader(normalized))
	if err != nil {
		t.Fatalf("normalized output does not decode: %v", err)
	}
	bounds := decoded.Bounds()
	if bounds.Dx() > 800 || bounds.Dy() > 600 {
		t.Errorf("image was not fitted into the extraction box, got %dx%d", bounds.Dx(), bounds.Dy())
	}
	// 1600x1200 shares the box's 4:3 ratio so both dimensions land exactly
	if bounds.Dx() != 800 || bounds.Dy() != 600 {
		t.Errorf("aspect ratio not preserved, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizeForExtractionRejectsGarbage(t *testing.T) {
	_, err := NormalizeForExtraction([]byte("definitely not an image"))
	if !errors.Is(err, ErrInvalidImage) {
		t.Fatalf("expected ErrInvalidImage, got %v", err)
	}
}
