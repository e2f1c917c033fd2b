package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"github.com/disintegration/imaging"
)

// ErrInvalidImage marks payloads that are not a decodable image. The
// admission pipeline treats it as a user-facing rejection, distinct from a
// decodable image with no face in it.
var ErrInvalidImage = errors.New("invalid image payload")

// Extraction cost grows with resolution while detection quality for typical
// phone captures does not, so inputs are fitted into this box first. This is
// a throughput optimisation only - it must not change whether a face is
// found in typical inputs.
const (
	maxWidth  = 800
	maxHeight = 600
)

// DecodeBase64Payload turns a client-submitted base64 image (with or without
// a data URL prefix) into raw bytes.
func DecodeBase64Payload(payload string) ([]byte, error) {
	if idx := strings.Index(payload, ","); idx != -1 && strings.HasPrefix(payload, "data:") {
		payload = payload[idx+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, ErrInvalidImage
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidImage
	}
	return raw, nil
}

// NormalizeForExtraction decodes the raster, downscales anything larger than
// the extraction box (preserving aspect ratio, linear filter) and re-encodes
// to JPEG for the recognizer.
func NormalizeForExtraction(raw []byte) ([]byte, error) {
	decoded, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrInvalidImage
	}

	bounds := decoded.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		decoded = imaging.Fit(decoded, maxWidth, maxHeight, imaging.Linear)
	}

	var buffer bytes.Buffer
	if err := imaging.Encode(&buffer, decoded, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
