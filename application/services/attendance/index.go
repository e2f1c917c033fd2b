package attendance_service

import (
	"os"
	"strconv"

	"facemark.io/application/admission"
	"facemark.io/application/repository"
	fileupload "facemark.io/infrastructure/file_upload"
	"facemark.io/infrastructure/logger"
	messagequeue "facemark.io/infrastructure/message_queue"
	"facemark.io/infrastructure/vision/types"
)

// Service is the process-wide admission pipeline. Initialise builds it once
// at start up after the extractor and file uploader are ready.
var Service *admission.Service

func Initialise(extractor types.EmbeddingExtractor) {
	threshold := admission.DefaultThreshold
	if raw := os.Getenv("FACE_MATCH_THRESHOLD"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 || parsed > 1 {
			logger.Warning("ignoring invalid FACE_MATCH_THRESHOLD", logger.LoggerOptions{
				Key:  "value",
				Data: raw,
			})
		} else {
			threshold = parsed
		}
	}
	Service = admission.NewService(
		extractor,
		repository.NewAdmissionStore(),
		fileupload.FileUploader,
		messagequeue.CounterSyncScheduler{},
		threshold,
	)
	logger.Info("attendance admission service initialised", logger.LoggerOptions{
		Key:  "threshold",
		Data: threshold,
	})
}
