package types

import (
	"context"
	"errors"
)

// FaceVector is an opaque fixed-length embedding. Two vectors are only
// comparable when their dimensionality matches.
type FaceVector []float64

// EmbeddingExtractor maps an encoded image to a face embedding.
// Implementations are selected once at start up (VISION_PROVIDER), never by
// runtime feature probing.
type EmbeddingExtractor interface {
	Extract(ctx context.Context, imageBytes []byte) (FaceVector, error)
	Dimensions() int
}

var (
	// the bytes do not decode to an image at all
	ErrInvalidImage = errors.New("image payload could not be decoded")
	// a well-formed image containing zero faces. a normal outcome, not a fault
	ErrNoFaceDetected = errors.New("no face detected in image")
	// the extraction exceeded its wall-clock budget
	ErrExtractionTimeout = errors.New("face extraction timed out")
)
