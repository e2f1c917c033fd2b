package stub

import (
	"context"
	"crypto/sha256"
	"encoding/binary"

	"facemark.io/infrastructure/vision/types"
)

// StubExtractor derives a deterministic pseudo-embedding from the image
// bytes. Identical bytes always produce identical vectors (distance 0.0),
// different bytes produce distant vectors, which is exactly what the
// admission pipeline's tests and mongo-less development need. It never ships
// in a production configuration - start up refuses the combination.
type StubExtractor struct{}

const stubDimensions = 128

func New() *StubExtractor {
	return &StubExtractor{}
}

func (extractor *StubExtractor) Dimensions() int {
	return stubDimensions
}

func (extractor *StubExtractor) Extract(ctx context.Context, imageBytes []byte) (types.FaceVector, error) {
	if err := ctx.Err(); err != nil {
		return nil, types.ErrExtractionTimeout
	}
	if len(imageBytes) == 0 {
		return nil, types.ErrInvalidImage
	}

	vector := make(types.FaceVector, stubDimensions)
	digest := sha256.Sum256(imageBytes)
	block := digest[:]
	for i := 0; i < stubDimensions; i++ {
		if i != 0 && i%16 == 0 {
			next := sha256.Sum256(block)
			block = next[:]
		}
		offset := (i % 16) * 2
		raw := binary.BigEndian.Uint16(block[offset : offset+2])
		vector[i] = float64(raw) / 65535.0
	}
	return vector, nil
}
