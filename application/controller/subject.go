package controller

import (
	"net/http"

	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/constants"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	"facemark.io/application/utils"
	"facemark.io/entities"
	server_response "facemark.io/infrastructure/serverResponse"
	"facemark.io/infrastructure/validator"
)

func CreateSubject(ctx *interfaces.ApplicationContext[dto.CreateSubjectDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	name := utils.NormalizeSubjectName(ctx.Body.Name)
	subjectRepo := repository.SubjectRepo()
	existing, err := subjectRepo.FindOneByFilter(map[string]any{
		"name": name,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if existing != nil {
		apperrors.EntityAlreadyExistsError(ctx.Ctx, "a subject already exists with this name")
		return
	}

	teacherName := ""
	if ctx.Body.TeacherID != "" {
		teacher, err := repository.TeacherRepo().FindOneByFilter(map[string]any{
			"teacherID": ctx.Body.TeacherID,
		})
		if err != nil {
			apperrors.FatalServerError(ctx.Ctx, err)
			return
		}
		if teacher == nil {
			apperrors.NotFoundError(ctx.Ctx, "no teacher found with this ID")
			return
		}
		teacherName = teacher.Name
	}

	department := ctx.Body.Department
	if department == "" {
		department = constants.DEFAULT_DEPARTMENT
	}
	subject, err := subjectRepo.CreateOne(entities.Subject{
		Name:        name,
		Code:        ctx.Body.Code,
		Department:  department,
		TeacherID:   ctx.Body.TeacherID,
		TeacherName: teacherName,
		Description: ctx.Body.Description,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "subject created", subject, nil, nil)
}

func FetchSubjects(ctx *interfaces.ApplicationContext[any]) {
	filter := map[string]any{}
	if department := ctx.GetStringQuery("department"); department != "" {
		filter["department"] = department
	}
	if teacherID := ctx.GetStringQuery("teacherID"); teacherID != "" {
		filter["teacherID"] = teacherID
	}
	subjects, err := repository.SubjectRepo().FindMany(filter)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "subjects fetched", subjects, nil, nil)
}

func UpdateSubject(ctx *interfaces.ApplicationContext[dto.UpdateSubjectDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	payload := map[string]any{}
	if ctx.Body.Code != nil {
		payload["code"] = *ctx.Body.Code
	}
	if ctx.Body.Department != nil {
		payload["department"] = *ctx.Body.Department
	}
	if ctx.Body.Description != nil {
		payload["description"] = *ctx.Body.Description
	}
	if ctx.Body.TeacherID != nil {
		teacher, err := repository.TeacherRepo().FindOneByFilter(map[string]any{
			"teacherID": *ctx.Body.TeacherID,
		})
		if err != nil {
			apperrors.FatalServerError(ctx.Ctx, err)
			return
		}
		if teacher == nil {
			apperrors.NotFoundError(ctx.Ctx, "no teacher found with this ID")
			return
		}
		payload["teacherID"] = teacher.TeacherID
		payload["teacherName"] = teacher.Name
	}
	if len(payload) == 0 {
		apperrors.ClientError(ctx.Ctx, "nothing to update", nil, nil)
		return
	}

	updated, err := repository.SubjectRepo().UpdatePartialByFilter(map[string]any{
		"name": utils.NormalizeSubjectName(ctx.GetStringParameter("name")),
	}, payload)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "subject not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "subject updated", nil, nil, nil)
}

func DeleteSubject(ctx *interfaces.ApplicationContext[any]) {
	subjectRepo := repository.SubjectRepo()
	subject, err := subjectRepo.FindOneByFilter(map[string]any{
		"name": utils.NormalizeSubjectName(ctx.GetStringParameter("name")),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if subject == nil {
		apperrors.NotFoundError(ctx.Ctx, "subject not found")
		return
	}
	if _, err := subjectRepo.DeleteByID(subject.ID); err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "subject deleted", nil, nil, nil)
}
