package controller

import (
	"net/http"
	"strings"
	"time"

	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/constants"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	server_response "facemark.io/infrastructure/serverResponse"
	"facemark.io/infrastructure/validator"
)

func CreateTeacher(ctx *interfaces.ApplicationContext[dto.CreateTeacherDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	teacherRepo := repository.TeacherRepo()
	existing, err := teacherRepo.FindOneByFilter(map[string]any{
		"teacherID": ctx.Body.TeacherID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if existing != nil {
		apperrors.EntityAlreadyExistsError(ctx.Ctx, "a teacher already exists with this ID")
		return
	}

	department := ctx.Body.Department
	if department == "" {
		department = constants.DEFAULT_DEPARTMENT
	}
	teacher, err := teacherRepo.CreateOne(entities.Teacher{
		TeacherID:  ctx.Body.TeacherID,
		Name:       ctx.Body.Name,
		Email:      ctx.Body.Email,
		Department: department,
		Phone:      ctx.Body.Phone,
		Status:     constants.PERSON_STATUS_ACTIVE,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "teacher created", teacher, nil, nil)
}

func FetchTeachers(ctx *interfaces.ApplicationContext[any]) {
	filter := map[string]any{}
	if department := ctx.GetStringQuery("department"); department != "" {
		filter["department"] = department
	}
	if status := ctx.GetStringQuery("status"); status != "" {
		filter["status"] = status
	}

	limit := ctx.GetInt64Query("limit", 50)
	skip := ctx.GetInt64Query("skip", 0)
	teachers, err := repository.TeacherRepo().FindMany(filter, database.FindOptions{
		Sort:  map[string]any{"name": 1},
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "teachers fetched", teachers, nil, nil)
}

func SearchTeachers(ctx *interfaces.ApplicationContext[any]) {
	query := strings.TrimSpace(ctx.GetStringQuery("q"))
	if len(query) < 2 {
		apperrors.ClientError(ctx.Ctx, "search query must be at least 2 characters", nil, nil)
		return
	}

	limit := int64(10)
	teachers, err := repository.TeacherRepo().FindMany(searchIdentityFilter("teacherID", query), database.FindOptions{
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "teachers fetched", map[string]any{
		"query":   query,
		"count":   len(teachers),
		"results": teachers,
	}, nil, nil)
}

func FetchTeacherByID(ctx *interfaces.ApplicationContext[any]) {
	teacher, err := repository.TeacherRepo().FindOneByFilter(map[string]any{
		"teacherID": ctx.GetStringParameter("teacherID"),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if teacher == nil {
		apperrors.NotFoundError(ctx.Ctx, "teacher not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "teacher fetched", teacher, nil, nil)
}

func UpdateTeacher(ctx *interfaces.ApplicationContext[dto.UpdateTeacherDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	payload := map[string]any{}
	if ctx.Body.Name != nil {
		payload["name"] = *ctx.Body.Name
	}
	if ctx.Body.Email != nil {
		payload["email"] = *ctx.Body.Email
	}
	if ctx.Body.Department != nil {
		payload["department"] = *ctx.Body.Department
	}
	if ctx.Body.Phone != nil {
		payload["phone"] = *ctx.Body.Phone
	}
	if ctx.Body.Status != nil {
		payload["status"] = *ctx.Body.Status
	}
	if len(payload) == 0 {
		apperrors.ClientError(ctx.Ctx, "nothing to update", nil, nil)
		return
	}

	updated, err := repository.TeacherRepo().UpdatePartialByFilter(map[string]any{
		"teacherID": ctx.GetStringParameter("teacherID"),
	}, payload)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "teacher not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "teacher updated", nil, nil, nil)
}

// DeleteTeacher retires the record the same way DeleteStudent does.
func DeleteTeacher(ctx *interfaces.ApplicationContext[any]) {
	teacherRepo := repository.TeacherRepo()
	teacher, err := teacherRepo.FindOneByFilter(map[string]any{
		"teacherID": ctx.GetStringParameter("teacherID"),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if teacher == nil {
		apperrors.NotFoundError(ctx.Ctx, "teacher not found")
		return
	}
	now := time.Now()
	if _, err := teacherRepo.UpdatePartialByID(teacher.ID, map[string]any{
		"status":        constants.PERSON_STATUS_DELETED,
		"deletedAt":     now,
		"deletedReason": "removed by " + ctx.GetStringContextData("PersonID"),
	}); err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "teacher deleted", nil, nil, nil)
}
