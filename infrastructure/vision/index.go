package vision

import (
	"os"
	"time"

	"facemark.io/infrastructure/logger"
	"facemark.io/infrastructure/vision/goface"
	"facemark.io/infrastructure/vision/stub"
	"facemark.io/infrastructure/vision/types"
)

// InitialiseEmbeddingExtractor builds the configured extractor exactly once
// at start up. The result is handed to the admission service explicitly -
// nothing reads this through a package global.
func InitialiseEmbeddingExtractor() types.EmbeddingExtractor {
	provider := os.Getenv("VISION_PROVIDER")
	if provider == "" {
		provider = "goface"
	}

	switch provider {
	case "stub":
		// the original system silently fell back to mocked embeddings when its
		// vision libraries were missing, which can mask real extraction
		// failures as matches. the stub therefore has to be asked for
		// explicitly and is refused outright in prod
		if os.Getenv("ENV") == "prod" {
			panic("VISION_PROVIDER=stub is not allowed in prod")
		}
		logger.Warning("stub embedding extractor selected. face matching is NOT real")
		return stub.New()
	case "goface":
		budget, _ := time.ParseDuration(os.Getenv("FACE_EXTRACT_BUDGET"))
		extractor, err := goface.New(os.Getenv("FACE_MODELS_DIR"), budget)
		if err != nil {
			logger.Error("could not initialise the face recognizer", logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			panic(err)
		}
		return extractor
	default:
		panic("unknown VISION_PROVIDER " + provider)
	}
}
