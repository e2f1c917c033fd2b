package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"facemark.io/application/admission"
	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/constants"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	attendance_service "facemark.io/application/services/attendance"
	"facemark.io/application/utils"
	"facemark.io/infrastructure/database"
	server_response "facemark.io/infrastructure/serverResponse"
	"facemark.io/infrastructure/validator"
)

// MarkAttendance runs a face-match submission end to end. Teachers marking
// their own ID go through the teacher collection; everything else is treated
// as a student submission.
func MarkAttendance(ctx *interfaces.ApplicationContext[dto.MarkAttendanceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	role := admission.RoleStudent
	if ctx.GetStringContextData("Role") == constants.ROLE_TEACHER &&
		ctx.GetStringContextData("PersonID") == ctx.Body.PersonID {
		role = admission.RoleTeacher
	}

	location := ctx.Body.Location
	if location == "" {
		location = ctx.GetStringContextData("Location")
	}

	result, err := attendance_service.Service.Admit(context.Background(), admission.MarkParams{
		Role:     role,
		PersonID: ctx.Body.PersonID,
		Subject:  ctx.Body.Subject,
		Image:    ctx.Body.Image,
		Location: location,
	})
	if err != nil {
		respondAdmissionError(ctx.Ctx, err)
		return
	}

	message := "attendance marked"
	if result.Enrolled {
		message = "face enrolled and attendance marked"
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, message, map[string]any{
		"record":   result.Record,
		"distance": result.Distance,
		"enrolled": result.Enrolled,
	}, nil, nil)
}

// MarkManualAttendance lets staff assert presence or absence without a face
// check. The route is gated to teachers.
func MarkManualAttendance(ctx *interfaces.ApplicationContext[dto.ManualAttendanceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	var date time.Time
	if ctx.Body.Date != "" {
		parsed, err := time.Parse("2006-01-02", ctx.Body.Date)
		if err != nil {
			apperrors.ClientError(ctx.Ctx, "date must be in YYYY-MM-DD format", nil, nil)
			return
		}
		date = parsed
	}

	record, err := attendance_service.Service.AdmitManual(context.Background(), admission.ManualMarkParams{
		Role:     admission.PersonRole(ctx.Body.Role),
		PersonID: ctx.Body.PersonID,
		Subject:  ctx.Body.Subject,
		Date:     date,
		Status:   ctx.Body.Status,
		Reason:   ctx.Body.Reason,
		MarkedBy: ctx.GetStringContextData("PersonID"),
	})
	if err != nil {
		respondAdmissionError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "attendance recorded", record, nil, nil)
}

// EnrollFace captures or replaces a reference image on behalf of a person.
func EnrollFace(ctx *interfaces.ApplicationContext[dto.EnrollFaceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	err := attendance_service.Service.Enroll(context.Background(), admission.PersonRole(ctx.Body.Role), ctx.Body.PersonID, ctx.Body.Image)
	if err != nil {
		respondAdmissionError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "face reference enrolled", nil, nil, nil)
}

// FetchAttendanceByDate lists records for one UTC calendar day, optionally
// narrowed to a subject. Defaults to today.
func FetchAttendanceByDate(ctx *interfaces.ApplicationContext[any]) {
	day := utils.StartOfUTCDay(time.Now())
	if raw := ctx.GetStringQuery("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.ClientError(ctx.Ctx, "date must be in YYYY-MM-DD format", nil, nil)
			return
		}
		day = utils.StartOfUTCDay(parsed)
	}

	filter := map[string]any{
		"day": map[string]any{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		},
	}
	if subject := utils.NormalizeSubjectName(ctx.GetStringQuery("subject")); subject != "" {
		filter["subject"] = subject
	}

	limit := ctx.GetInt64Query("limit", 100)
	skip := ctx.GetInt64Query("skip", 0)
	records, err := repository.AttendanceRepo().FindMany(filter, database.FindOptions{
		Sort:  map[string]any{"timestamp": -1},
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance fetched", map[string]any{
		"date":    day.Format("2006-01-02"),
		"count":   len(records),
		"records": records,
	}, nil, nil)
}

// FetchPersonAttendance returns a person's attendance history along with
// their running tallies.
func FetchPersonAttendance(ctx *interfaces.ApplicationContext[any]) {
	personID := ctx.GetStringParameter("personID")
	if personID == "" {
		apperrors.ClientError(ctx.Ctx, "personID is required", nil, nil)
		return
	}

	student, err := repository.StudentRepo().FindOneByFilter(map[string]any{
		"studentID": personID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	summary := map[string]any{}
	if student != nil {
		summary = map[string]any{
			"name":               student.Name,
			"totalAttendance":    student.TotalAttendance,
			"totalSessions":      student.TotalSessions,
			"subjectsAttendance": student.SubjectsAttendance,
			"subjectsTotal":      student.SubjectsTotal,
			"percentage":         student.AttendancePercentage(),
			"faceEnrolled":       student.FaceEnrolled(),
		}
	} else {
		teacher, err := repository.TeacherRepo().FindOneByFilter(map[string]any{
			"teacherID": personID,
		})
		if err != nil {
			apperrors.FatalServerError(ctx.Ctx, err)
			return
		}
		if teacher == nil {
			apperrors.NotFoundError(ctx.Ctx, "no student or teacher found with this ID")
			return
		}
		summary = map[string]any{
			"name":               teacher.Name,
			"totalAttendance":    teacher.TotalAttendance,
			"totalSessions":      teacher.TotalSessions,
			"subjectsAttendance": teacher.SubjectsAttendance,
			"subjectsTotal":      teacher.SubjectsTotal,
			"faceEnrolled":       teacher.FaceEnrolled(),
		}
	}

	filter := map[string]any{"studentID": personID}
	if subject := utils.NormalizeSubjectName(ctx.GetStringQuery("subject")); subject != "" {
		filter["subject"] = subject
	}
	limit := ctx.GetInt64Query("limit", 50)
	skip := ctx.GetInt64Query("skip", 0)
	records, err := repository.AttendanceRepo().FindMany(filter, database.FindOptions{
		Sort:  map[string]any{"timestamp": -1},
		Skip:  &skip,
		Limit: &limit,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance history fetched", map[string]any{
		"summary": summary,
		"records": records,
	}, nil, nil)
}

// FetchAttendanceStatistics aggregates present/absent counts over an optional
// person, subject and date range.
func FetchAttendanceStatistics(ctx *interfaces.ApplicationContext[any]) {
	filter := map[string]any{}
	if personID := ctx.GetStringQuery("personID"); personID != "" {
		filter["studentID"] = personID
	}
	if subject := utils.NormalizeSubjectName(ctx.GetStringQuery("subject")); subject != "" {
		filter["subject"] = subject
	}

	window := map[string]any{}
	if raw := ctx.GetStringQuery("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.ClientError(ctx.Ctx, "from must be in YYYY-MM-DD format", nil, nil)
			return
		}
		window["$gte"] = utils.StartOfUTCDay(parsed)
	}
	if raw := ctx.GetStringQuery("to"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.ClientError(ctx.Ctx, "to must be in YYYY-MM-DD format", nil, nil)
			return
		}
		window["$lt"] = utils.StartOfUTCDay(parsed).AddDate(0, 0, 1)
	}
	if len(window) != 0 {
		filter["day"] = window
	}

	attendanceRepo := repository.AttendanceRepo()
	total, err := attendanceRepo.CountDocs(filter)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	presentFilter := map[string]any{"status": constants.ATTENDANCE_STATUS_PRESENT}
	for key, value := range filter {
		presentFilter[key] = value
	}
	present, err := attendanceRepo.CountDocs(presentFilter)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(int64(float64(present)/float64(total)*100*100+0.5)) / 100
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "statistics calculated", map[string]any{
		"totalClasses":         total,
		"presentCount":         present,
		"absentCount":          total - present,
		"attendancePercentage": percentage,
	}, nil, nil)
}

// FetchAttendanceSummary tallies one UTC day across the whole school.
// Defaults to today.
func FetchAttendanceSummary(ctx *interfaces.ApplicationContext[any]) {
	day := utils.StartOfUTCDay(time.Now())
	if raw := ctx.GetStringQuery("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			apperrors.ClientError(ctx.Ctx, "date must be in YYYY-MM-DD format", nil, nil)
			return
		}
		day = utils.StartOfUTCDay(parsed)
	}

	records, err := repository.AttendanceRepo().FindMany(map[string]any{
		"day": map[string]any{
			"$gte": day,
			"$lt":  day.AddDate(0, 0, 1),
		},
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	present := 0
	for _, record := range records {
		if record.Status == constants.ATTENDANCE_STATUS_PRESENT {
			present++
		}
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "summary generated", map[string]any{
		"date":         day.Format("2006-01-02"),
		"totalPresent": present,
		"totalAbsent":  len(records) - present,
		"totalRecords": len(records),
		"records":      records,
	}, nil, nil)
}

// OverrideAttendanceRecord lets a teacher correct a record's status or attach
// a reason after the fact. Running counters are not rewritten; the override
// trail is the source of truth for corrections.
func OverrideAttendanceRecord(ctx *interfaces.ApplicationContext[dto.OverrideAttendanceDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	payload := map[string]any{}
	if ctx.Body.Status != nil {
		payload["status"] = *ctx.Body.Status
	}
	if ctx.Body.Reason != nil {
		payload["reason"] = *ctx.Body.Reason
	}
	if len(payload) == 0 {
		apperrors.ClientError(ctx.Ctx, "nothing to update", nil, nil)
		return
	}
	payload["markedBy"] = ctx.GetStringContextData("PersonID")

	updated, err := repository.AttendanceRepo().UpdatePartialByID(ctx.GetStringParameter("id"), payload)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if updated == 0 {
		apperrors.NotFoundError(ctx.Ctx, "attendance record not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "attendance record updated", nil, nil, nil)
}

func respondAdmissionError(ctx any, err error) {
	switch {
	case errors.Is(err, admission.ErrPersonNotFound):
		apperrors.NotFoundError(ctx, "no person is registered with this ID")
	case errors.Is(err, admission.ErrAlreadyMarked):
		apperrors.CustomError(ctx, "attendance has already been marked for this subject today", &constants.ATTENDANCE_ALREADY_MARKED)
	case errors.Is(err, admission.ErrInvalidImage):
		apperrors.CustomError(ctx, "the submitted image could not be read. capture and try again", &constants.INVALID_IMAGE_PAYLOAD)
	// extraction timeouts surface to the user exactly like a face that was
	// never found; the pipeline already logged the distinction
	case errors.Is(err, admission.ErrNoFaceDetected), errors.Is(err, admission.ErrExtractionTimeout):
		apperrors.CustomError(ctx, "no face was found in the picture. retake it with your face clearly visible", &constants.NO_FACE_IN_IMAGE)
	case errors.Is(err, admission.ErrFaceMismatch):
		apperrors.CustomError(ctx, "this face does not match the enrolled reference", &constants.FACE_MISMATCH)
	case errors.Is(err, admission.ErrInvalidStatus):
		apperrors.ClientError(ctx, "status must be Present or Absent", nil, nil)
	default:
		apperrors.UnknownError(ctx, err, nil)
	}
}
