package logger

import (
	"os"

	"go.uber.org/zap"
)

var Logger *zap.Logger

func init() {
	// a usable default so packages that log during start up never hit a nil logger
	Logger, _ = zap.NewDevelopment()
}

// Sets up the process-wide zap logger. Must run before anything logs.
func InitializeLogger() {
	var err error
	if os.Getenv("ENV") == "prod" {
		Logger, err = zap.NewProduction()
	} else {
		Logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(Logger)
}
