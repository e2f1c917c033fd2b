package controller

import (
	"context"
	"net/http"
	"regexp"
	"strings"
	"time"

	"facemark.io/application/admission"
	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/constants"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	attendance_service "facemark.io/application/services/attendance"
	"facemark.io/entities"
	"facemark.io/infrastructure/database"
	server_response "facemark.io/infrastructure/serverResponse"
	"facemark.io/infrastructure/validator"
)

func CreateStudent(ctx *interfaces.ApplicationContext[dto.CreateStudentDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	studentRepo := repository.StudentRepo()
	existing, err := studentRepo.FindOneByFilter(map[string]any{
		"studentID": ctx.Body.StudentID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if existing != nil {
		apperrors.EntityAlreadyExistsError(ctx.Ctx, "a student already exists with this ID")
		return
	}

	department := ctx.Body.Department
	if department == "" {
		department = constants.DEFAULT_DEPARTMENT
	}
	student, err := studentRepo.CreateOne(entities.Student{
		StudentID:    ctx.Body.StudentID,
		Name:         ctx.Body.Name,
		Email:        ctx.Body.Email,
		Department:   department,
		StudentClass: ctx.Body.StudentClass,
		Division:     ctx.Body.Division,
		Phone:        ctx.Body.Phone,
		Status:       constants.PERSON_STATUS_ACTIVE,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "student created", student, nil, nil)
}

func FetchStudents(ctx *interfaces.ApplicationContext[any]) {
	filter := map[string]any{}
	if class := ctx.GetStringQuery("class"); class != "" {
		filter["studentClass"] = class
	}
	if department := ctx.GetStringQuery("department"); department != "" {
		filter["department"] = department
	}
	if status := ctx.GetStringQuery("status"); status != "" {
		filter["status"] = status
	}

	limit := ctx.GetInt64Query("limit", 50)
	skip := ctx.GetInt64Query("skip", 0)
	students, err := repository.StudentRepo().FindMany(filter, database.FindOptions{
		Sort:  map[string]any{"name": 1},
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	total, err := repository.StudentRepo().CountDocs(filter)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "students fetched", map[string]any{
		"total":    total,
		"students": students,
	}, nil, nil)
}

// searchIdentityFilter builds a case-insensitive substring match over the
// fields people actually search by. The query is quoted so a stray regex
// metacharacter cannot break the lookup.
func searchIdentityFilter(idField string, query string) map[string]any {
	pattern := map[string]any{"$regex": regexp.QuoteMeta(query), "$options": "i"}
	return map[string]any{
		"$or": []map[string]any{
			{"name": pattern},
			{idField: pattern},
			{"email": pattern},
		},
	}
}

func SearchStudents(ctx *interfaces.ApplicationContext[any]) {
	query := strings.TrimSpace(ctx.GetStringQuery("q"))
	if len(query) < 2 {
		apperrors.ClientError(ctx.Ctx, "search query must be at least 2 characters", nil, nil)
		return
	}

	limit := int64(10)
	students, err := repository.StudentRepo().FindMany(searchIdentityFilter("studentID", query), database.FindOptions{
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "students fetched", map[string]any{
		"query":   query,
		"count":   len(students),
		"results": students,
	}, nil, nil)
}

func FetchStudentByID(ctx *interfaces.ApplicationContext[any]) {
	student, err := repository.StudentRepo().FindOneByFilter(map[string]any{
		"studentID": ctx.GetStringParameter("studentID"),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if student == nil {
		apperrors.NotFoundError(ctx.Ctx, "student not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "student fetched", student, nil, nil)
}

func UpdateStudent(ctx *interfaces.ApplicationContext[dto.UpdateStudentDTO]) {
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
	if ctx.Body.StudentClass != nil {
		payload["studentClass"] = *ctx.Body.StudentClass
	}
	if ctx.Body.Division != nil {
		payload["division"] = *ctx.Body.Division
	}
	if ctx.Body.Phone != nil {
		payload["phone"] = *ctx.Body.Phone
	}
	if ctx.Body.Status != nil {
		payload["status"] = *ctx.Body.Status
	}
	if len(payload) == 0 && ctx.Body.FaceImage == nil {
		apperrors.ClientError(ctx.Ctx, "nothing to update", nil, nil)
		return
	}

	studentID := ctx.GetStringParameter("studentID")
	if len(payload) != 0 {
		updated, err := repository.StudentRepo().UpdatePartialByFilter(map[string]any{
			"studentID": studentID,
		}, payload)
		if err != nil {
			apperrors.FatalServerError(ctx.Ctx, err)
			return
		}
		if updated == 0 {
			apperrors.NotFoundError(ctx.Ctx, "student not found")
			return
		}
	}

	if ctx.Body.FaceImage != nil {
		err := attendance_service.Service.Enroll(context.Background(), admission.RoleStudent, studentID, *ctx.Body.FaceImage)
		if err != nil {
			respondAdmissionError(ctx.Ctx, err)
			return
		}
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "student updated", nil, nil, nil)
}

// DeleteStudent retires the record instead of destroying it. Attendance
// history keeps pointing at a resolvable student.
func DeleteStudent(ctx *interfaces.ApplicationContext[any]) {
	studentRepo := repository.StudentRepo()
	student, err := studentRepo.FindOneByFilter(map[string]any{
		"studentID": ctx.GetStringParameter("studentID"),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if student == nil {
		apperrors.NotFoundError(ctx.Ctx, "student not found")
		return
	}
	now := time.Now()
	if _, err := studentRepo.UpdatePartialByID(student.ID, map[string]any{
		"status":        constants.PERSON_STATUS_DELETED,
		"deletedAt":     now,
		"deletedReason": "removed by " + ctx.GetStringContextData("PersonID"),
	}); err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "student deleted", nil, nil, nil)
}
