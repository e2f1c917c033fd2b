package controller

import (
	"encoding/json"
	"net/http"

	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	messagequeue "facemark.io/infrastructure/message_queue"
	queue_tasks "facemark.io/infrastructure/message_queue/tasks"
	mq_types "facemark.io/infrastructure/message_queue/types"
	server_response "facemark.io/infrastructure/serverResponse"
	"facemark.io/infrastructure/validator"
)

func CreateNotice(ctx *interfaces.ApplicationContext[dto.CreateNoticeDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	notice, err := repository.NoticeRepo().CreateOne(entities.Notice{
		Title:       ctx.Body.Title,
		Description: ctx.Body.Description,
		TargetClass: ctx.Body.TargetClass,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	if ctx.Body.Broadcast {
		broadcastPayload, _ := json.Marshal(queue_tasks.NoticeBroadcastPayload{
			NoticeID: notice.ID,
		})
		messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
			Name:     queue_tasks.HandleNoticeBroadcastTaskName,
			Payload:  broadcastPayload,
			Priority: mq_types.Low,
		})
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "notice posted", notice, nil, nil)
}

func FetchNotices(ctx *interfaces.ApplicationContext[any]) {
	filter := map[string]any{}
	if class := ctx.GetStringQuery("class"); class != "" {
		filter["targetClass"] = class
	}
	limit := ctx.GetInt64Query("limit", 20)
	skip := ctx.GetInt64Query("skip", 0)
	notices, err := repository.NoticeRepo().FindMany(filter, database.FindOptions{
		Sort:  map[string]any{"createdAt": -1},
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "notices fetched", notices, nil, nil)
}

func UpdateNotice(ctx *interfaces.ApplicationContext[dto.UpdateNoticeDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	payload := map[string]any{}
	if ctx.Body.Title != nil {
		payload["title"] = *ctx.Body.Title
	}
	if ctx.Body.Description != nil {
		payload["description"] = *ctx.Body.Description
	}
	if ctx.Body.TargetClass != nil {
		payload["targetClass"] = *ctx.Body.TargetClass
	}
	if len(payload) == 0 {
		apperrors.ClientError(ctx.Ctx, "nothing to update", nil, nil)
		return
	}

	updated, err := repository.NoticeRepo().UpdatePartialByID(ctx.GetStringParameter("id"), payload)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "notice not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "notice updated", nil, nil, nil)
}

func DeleteNotice(ctx *interfaces.ApplicationContext[any]) {
	deleted, err := repository.NoticeRepo().DeleteByID(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if deleted == 0 {
		apperrors.NotFoundError(ctx.Ctx, "notice not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "notice deleted", nil, nil, nil)
}
