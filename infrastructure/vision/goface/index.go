package goface

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"facemark.io/infrastructure/logger"
	"facemark.io/infrastructure/vision/types"
	"github.com/Kagami/go-face"
	"golang.org/x/sync/semaphore"
)

// dlib's face_recognition_resnet model produces 128-d descriptors
const descriptorDimensions = 128

// GoFaceExtractor runs dlib face description through go-face. Extraction is
// the one heavy, blocking step of the admission pipeline, so concurrent
// invocations are capped by a weighted semaphore sized to the core count.
type GoFaceExtractor struct {
	rec    *face.Recognizer
	sem    *semaphore.Weighted
	budget time.Duration
}

func New(modelsDir string, budget time.Duration) (*GoFaceExtractor, error) {
	rec, err := face.NewRecognizer(modelsDir)
	if err != nil {
		return nil, fmt.Errorf("could not load face recognition models from %s: %w", modelsDir, err)
	}
	if budget <= 0 {
		budget = 10 * time.Second
	}
	logger.Info("face recognizer initialised", logger.LoggerOptions{
		Key:  "modelsDir",
		Data: modelsDir,
	}, logger.LoggerOptions{
		Key:  "extractionBudget",
		Data: budget.String(),
	})
	return &GoFaceExtractor{
		rec:    rec,
		sem:    semaphore.NewWeighted(int64(runtime.GOMAXPROCS(0))),
		budget: budget,
	}, nil
}

func (extractor *GoFaceExtractor) Dimensions() int {
	return descriptorDimensions
}

func (extractor *GoFaceExtractor) Extract(ctx context.Context, imageBytes []byte) (types.FaceVector, error) {
	ctx, cancel := context.WithTimeout(ctx, extractor.budget)
	defer cancel()

	if err := extractor.sem.Acquire(ctx, 1); err != nil {
		return nil, types.ErrExtractionTimeout
	}

	type recognitionResult struct {
		faces []face.Face
		err   error
	}
	resultChan := make(chan recognitionResult, 1)
	go func() {
		defer extractor.sem.Release(1)
		faces, err := extractor.rec.Recognize(imageBytes)
		resultChan <- recognitionResult{faces: faces, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, types.ErrExtractionTimeout
	case result := <-resultChan:
		if result.err != nil {
			return nil, types.ErrInvalidImage
		}
		if len(result.faces) == 0 {
			return nil, types.ErrNoFaceDetected
		}
		if len(result.faces) > 1 {
			// more than one face is ambiguous upstream behaviour. we pick the
			// first face in dlib's native detection order so the outcome is at
			// least deterministic
			logger.Warning("multiple faces detected in submission. using the first", logger.LoggerOptions{
				Key:  "faceCount",
				Data: len(result.faces),
			})
		}
		return descriptorToVector(result.faces[0].Descriptor), nil
	}
}

func descriptorToVector(descriptor face.Descriptor) types.FaceVector {
	vector := make(types.FaceVector, len(descriptor))
	for i, value := range descriptor {
		vector[i] = float64(value)
	}
	return vector
}
