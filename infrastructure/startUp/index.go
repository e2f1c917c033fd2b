package startup

import (
	attendance_service "facemark.io/application/services/attendance"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/database/connection/datastore"
	fileupload "facemark.io/infrastructure/file_upload"
	"facemark.io/infrastructure/ipresolver/maxmind"
	"facemark.io/infrastructure/logger"
	"facemark.io/infrastructure/vision"
)

// Used to start services such as loggers, databases, queues, etc.
func StartServices() {
	logger.InitializeLogger()
	logger.RequestMetricMonitor.Init()
	database.SetUpDatabase()
	(&maxmind.MaxMindIPResolver{}).ConnectToDB()
	fileupload.InitialiseFileUploader()
	attendance_service.Initialise(vision.InitialiseEmbeddingExtractor())
}

// Used to clean up after services that have been shutdown.
func CleanUpServices() {
	datastore.CleanUp()
}
