package controller

import (
	"net/http"
	"os"

	"facemark.io/application/interfaces"
	attendance_service "facemark.io/application/services/attendance"
	server_response "facemark.io/infrastructure/serverResponse"
)

func HealthCheck(ctx *interfaces.ApplicationContext[any]) {
	payload := map[string]any{
		"status": "ok",
		"env":    os.Getenv("ENV"),
	}
	if attendance_service.Service != nil {
		payload["embeddingDimensions"] = attendance_service.Service.Extractor.Dimensions()
		payload["matchThreshold"] = attendance_service.Service.Threshold
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "service is healthy", payload, nil, nil)
}
