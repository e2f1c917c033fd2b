package controller

import (
	"net/http"
	"time"

	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	"facemark.io/infrastructure/logger"
	server_response "facemark.io/infrastructure/serverResponse"
	"facemark.io/infrastructure/validator"
)

// recordDeviceEvent appends to the device audit trail. Best effort; a failed
// log write never fails the request that triggered it.
func recordDeviceEvent(deviceID string, event string, ipAddress string, status string) {
	if _, err := repository.DeviceLogRepo().CreateOne(entities.DeviceLog{
		DeviceID:  deviceID,
		Event:     event,
		IPAddress: ipAddress,
		Status:    status,
	}); err != nil {
		logger.Warning("could not record device event", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "deviceID",
			Data: deviceID,
		})
	}
}

func RegisterDevice(ctx *interfaces.ApplicationContext[dto.RegisterDeviceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	deviceRepo := repository.DeviceRepo()
	existing, err := deviceRepo.FindOneByFilter(map[string]any{
		"deviceID": ctx.Body.DeviceID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if existing != nil {
		apperrors.EntityAlreadyExistsError(ctx.Ctx, "a device is already registered with this ID")
		return
	}

	device, err := deviceRepo.CreateOne(entities.Device{
		DeviceID:   ctx.Body.DeviceID,
		DeviceName: ctx.Body.DeviceName,
		DeviceType: ctx.Body.DeviceType,
		Location:   ctx.Body.Location,
		MacAddress: ctx.Body.MacAddress,
		Status:     "online",
		LastSync:   time.Now(),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	recordDeviceEvent(device.DeviceID, "register", device.IPAddress, device.Status)

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "device registered", device, nil, nil)
}

// SyncDevice is the heartbeat terminals send. Anything that has not synced
// recently shows as offline in the device list.
func SyncDevice(ctx *interfaces.ApplicationContext[dto.DeviceSyncDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	payload := map[string]any{
		"lastSync": time.Now(),
	}
	if ctx.Body.IPAddress != "" {
		payload["ipAddress"] = ctx.Body.IPAddress
	}
	if ctx.Body.Status != "" {
		payload["status"] = ctx.Body.Status
	}

	updated, err := repository.DeviceRepo().UpdatePartialByFilter(map[string]any{
		"deviceID": ctx.Body.DeviceID,
	}, payload)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "device not registered")
		return
	}
	recordDeviceEvent(ctx.Body.DeviceID, "sync", ctx.Body.IPAddress, ctx.Body.Status)
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "device synced", nil, nil, nil)
}

// FetchDeviceLogs pages through a device's audit trail, newest first.
func FetchDeviceLogs(ctx *interfaces.ApplicationContext[any]) {
	deviceID := ctx.GetStringParameter("deviceID")
	device, err := repository.DeviceRepo().FindOneByFilter(map[string]any{
		"deviceID": deviceID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if device == nil {
		apperrors.NotFoundError(ctx.Ctx, "device not registered")
		return
	}

	filter := map[string]any{"deviceID": deviceID}
	limit := ctx.GetInt64Query("limit", 20)
	skip := ctx.GetInt64Query("skip", 0)
	logs, err := repository.DeviceLogRepo().FindMany(filter, database.FindOptions{
		Sort:  map[string]any{"timestamp": -1},
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	total, err := repository.DeviceLogRepo().CountDocs(filter)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "device logs fetched", map[string]any{
		"total": total,
		"logs":  logs,
	}, nil, nil)
}

func FetchDevices(ctx *interfaces.ApplicationContext[any]) {
	filter := map[string]any{}
	if deviceType := ctx.GetStringQuery("type"); deviceType != "" {
		filter["deviceType"] = deviceType
	}
	if status := ctx.GetStringQuery("status"); status != "" {
		filter["status"] = status
	}
	devices, err := repository.DeviceRepo().FindMany(filter)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "devices fetched", devices, nil, nil)
}

func FetchDeviceByID(ctx *interfaces.ApplicationContext[any]) {
	device, err := repository.DeviceRepo().FindOneByFilter(map[string]any{
		"deviceID": ctx.GetStringParameter("deviceID"),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if device == nil {
		apperrors.NotFoundError(ctx.Ctx, "device not registered")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "device fetched", device, nil, nil)
}

func UpdateDevice(ctx *interfaces.ApplicationContext[dto.UpdateDeviceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	payload := map[string]any{}
	if ctx.Body.DeviceName != nil {
		payload["deviceName"] = *ctx.Body.DeviceName
	}
	if ctx.Body.DeviceType != nil {
		payload["deviceType"] = *ctx.Body.DeviceType
	}
	if ctx.Body.Location != nil {
		payload["location"] = *ctx.Body.Location
	}
	if ctx.Body.Status != nil {
		payload["status"] = *ctx.Body.Status
	}
	if len(payload) == 0 {
		apperrors.ClientError(ctx.Ctx, "nothing to update", nil, nil)
		return
	}

	updated, err := repository.DeviceRepo().UpdatePartialByFilter(map[string]any{
		"deviceID": ctx.GetStringParameter("deviceID"),
	}, payload)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "device not registered")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "device updated", nil, nil, nil)
}

func DeleteDevice(ctx *interfaces.ApplicationContext[any]) {
	deviceRepo := repository.DeviceRepo()
	device, err := deviceRepo.FindOneByFilter(map[string]any{
		"deviceID": ctx.GetStringParameter("deviceID"),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if device == nil {
		apperrors.NotFoundError(ctx.Ctx, "device not registered")
		return
	}
	if _, err := deviceRepo.DeleteByID(device.ID); err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "device deleted", nil, nil, nil)
}
