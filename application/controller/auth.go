package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/constants"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	"facemark.io/application/repository"
	"facemark.io/entities"
	"facemark.io/infrastructure/auth"
	"facemark.io/infrastructure/cryptography"
	"facemark.io/infrastructure/database/repository/cache"
	"facemark.io/infrastructure/logger"
	messagequeue "facemark.io/infrastructure/message_queue"
	queue_tasks "facemark.io/infrastructure/message_queue/tasks"
	mq_types "facemark.io/infrastructure/message_queue/types"
	server_response "facemark.io/infrastructure/serverResponse"
	"facemark.io/infrastructure/validator"
	"github.com/golang-jwt/jwt/v4"
)

func RegisterUser(ctx *interfaces.ApplicationContext[dto.RegisterUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	userRepo := repository.UserRepo()
	existing, err := userRepo.FindOneByFilter(map[string]any{
		"email": ctx.Body.Email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if existing != nil {
		apperrors.EntityAlreadyExistsError(ctx.Ctx, "an account already exists with this email")
		return
	}

	hashedPassword, err := cryptography.CryptoHasher.HashString(ctx.Body.Password, nil)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	department := ctx.Body.Department
	if department == "" {
		department = constants.DEFAULT_DEPARTMENT
	}

	profileID, err := createProfileForRole(ctx.Body, department)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if profileID == "" {
		apperrors.EntityAlreadyExistsError(ctx.Ctx, "an account already exists with this ID")
		return
	}

	user, err := userRepo.CreateOne(entities.User{
		Name:      ctx.Body.Name,
		Email:     ctx.Body.Email,
		Password:  string(hashedPassword),
		PersonID:  ctx.Body.PersonID,
		Role:      ctx.Body.Role,
		Status:    constants.PERSON_STATUS_ACTIVE,
		ProfileID: profileID,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	emailPayload, _ := json.Marshal(queue_tasks.EmailPayload{
		To:       user.Email,
		Subject:  "Welcome to FaceMark",
		Template: "welcome",
		Opts: map[string]any{
			"Name":     user.Name,
			"PersonID": user.PersonID,
		},
	})
	messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
		Name:     queue_tasks.HandleEmailDeliveryTaskName,
		Payload:  emailPayload,
		Priority: mq_types.Low,
	})

	server_response.Responder.Respond(ctx.Ctx, http.StatusCreated, "account created", map[string]any{
		"id":       user.ID,
		"personID": user.PersonID,
		"role":     user.Role,
	}, nil, &constants.ACCOUNT_CREATED)
}

// createProfileForRole creates the role-specific profile unless one already
// exists for the ID. An empty return with nil error means the ID is taken.
func createProfileForRole(payload *dto.RegisterUserDTO, department string) (string, error) {
	if payload.Role == constants.ROLE_TEACHER {
		teacherRepo := repository.TeacherRepo()
		existing, err := teacherRepo.FindOneByFilter(map[string]any{"teacherID": payload.PersonID})
		if err != nil {
			return "", err
		}
		if existing != nil {
			return "", nil
		}
		teacher, err := teacherRepo.CreateOne(entities.Teacher{
			TeacherID:  payload.PersonID,
			Name:       payload.Name,
			Email:      payload.Email,
			Department: department,
			Phone:      payload.Phone,
			Status:     constants.PERSON_STATUS_ACTIVE,
		})
		if err != nil {
			return "", err
		}
		return teacher.ID, nil
	}
	studentRepo := repository.StudentRepo()
	existing, err := studentRepo.FindOneByFilter(map[string]any{"studentID": payload.PersonID})
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", nil
	}
	student, err := studentRepo.CreateOne(entities.Student{
		StudentID:    payload.PersonID,
		Name:         payload.Name,
		Email:        payload.Email,
		Department:   department,
		StudentClass: payload.StudentClass,
		Division:     payload.Division,
		Phone:        payload.Phone,
		Status:       constants.PERSON_STATUS_ACTIVE,
	})
	if err != nil {
		return "", err
	}
	return student.ID, nil
}

func LoginUser(ctx *interfaces.ApplicationContext[dto.LoginUserDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	userRepo := repository.UserRepo()
	user, err := userRepo.FindOneByFilter(map[string]any{
		"email": ctx.Body.Email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if user == nil || !cryptography.CryptoHasher.VerifyHashData(user.Password, ctx.Body.Password) {
		apperrors.AuthenticationError(ctx.Ctx, "invalid email or password")
		return
	}
	if user.Status != constants.PERSON_STATUS_ACTIVE {
		apperrors.AuthenticationError(ctx.Ctx, "this account has been deactivated")
		return
	}

	token, err := auth.GenerateAuthToken(auth.ClaimsData{
		UserID:    user.ID,
		Role:      user.Role,
		PersonID:  user.PersonID,
		Name:      user.Name,
		Email:     user.Email,
		DeviceID:  ctx.DeviceID,
		UserAgent: ctx.UserAgent,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour * 24).Unix(),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	hashedAccessToken, _ := cryptography.CryptoHasher.HashString(*token, nil)
	cache.Cache.CreateEntry(fmt.Sprintf("%s-access", user.ID), string(hashedAccessToken), time.Hour*24)

	now := time.Now()
	if _, err = userRepo.UpdatePartialByID(user.ID, map[string]any{
		"lastLogin": now,
	}); err != nil {
		logger.Warning("could not record last login", logger.LoggerOptions{
			Key:  "userID",
			Data: user.ID,
		})
	}

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "login successful", map[string]any{
		"token": token,
		"user": map[string]any{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"role":     user.Role,
			"personID": user.PersonID,
		},
	}, nil, nil)
}

func LogoutUser(ctx *interfaces.ApplicationContext[any]) {
	userID := ctx.GetStringContextData("UserID")
	auth.SignOutUser(fmt.Sprintf("%s-access", userID), "user initiated logout")
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "logged out", nil, nil, nil)
}

func RequestPasswordReset(ctx *interfaces.ApplicationContext[dto.RequestPasswordResetDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	user, err := repository.UserRepo().FindOneByFilter(map[string]any{
		"email": ctx.Body.Email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	// the response does not reveal whether the account exists
	if user != nil {
		otp, err := auth.GenerateOTP(6, user.Email)
		if err != nil {
			apperrors.FatalServerError(ctx.Ctx, err)
			return
		}
		emailPayload, _ := json.Marshal(queue_tasks.EmailPayload{
			To:       user.Email,
			Subject:  "Your FaceMark password reset code",
			Template: "otp",
			Opts: map[string]any{
				"Otp": *otp,
			},
		})
		messagequeue.TaskQueue.Enqueue(mq_types.QueueTask{
			Name:     queue_tasks.HandleEmailDeliveryTaskName,
			Payload:  emailPayload,
			Priority: mq_types.High,
		})
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "if that account exists, a reset code has been sent", nil, nil, nil)
}

func ResetPassword(ctx *interfaces.ApplicationContext[dto.ResetPasswordDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	msg, valid := auth.VerifyOTP(ctx.Body.Email, ctx.Body.Otp)
	if !valid {
		apperrors.ClientError(ctx.Ctx, msg, nil, nil)
		return
	}

	userRepo := repository.UserRepo()
	user, err := userRepo.FindOneByFilter(map[string]any{
		"email": ctx.Body.Email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "account not found")
		return
	}

	hashedPassword, err := cryptography.CryptoHasher.HashString(ctx.Body.NewPassword, nil)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if _, err = userRepo.UpdatePartialByID(user.ID, map[string]any{
		"password": string(hashedPassword),
	}); err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	// existing sessions die with the password
	auth.SignOutUser(fmt.Sprintf("%s-access", user.ID), "password reset")

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "password reset successful", nil, nil, nil)
}

// VerifyAuthToken reports whether a token is currently valid along with the
// identity it carries. Clients use it to decide whether to re-authenticate.
func VerifyAuthToken(ctx *interfaces.ApplicationContext[dto.VerifyTokenDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	token, err := auth.DecodeAuthToken(ctx.Body.Token)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "this token is invalid or has expired")
		return
	}
	claims := token.Claims.(jwt.MapClaims)
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "token is valid", map[string]any{
		"valid":    true,
		"userID":   claims["userID"],
		"role":     claims["role"],
		"email":    claims["email"],
		"personID": claims["personID"],
	}, nil, nil)
}

// RefreshAuthToken exchanges a token with a verified signature, expired or
// not, for a fresh 24 hour one bound to the same account and device.
func RefreshAuthToken(ctx *interfaces.ApplicationContext[dto.RefreshTokenDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	token, err := auth.DecodeAuthTokenIgnoringExpiry(ctx.Body.Token)
	if err != nil {
		apperrors.AuthenticationError(ctx.Ctx, "this token is invalid")
		return
	}
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := claims["userID"].(string)

	user, err := repository.UserRepo().FindByID(userID)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "account not found")
		return
	}
	if user.Status != constants.PERSON_STATUS_ACTIVE {
		apperrors.AuthenticationError(ctx.Ctx, "this account has been deactivated")
		return
	}

	newToken, err := auth.GenerateAuthToken(auth.ClaimsData{
		UserID:    user.ID,
		Role:      user.Role,
		PersonID:  user.PersonID,
		Name:      user.Name,
		Email:     user.Email,
		DeviceID:  ctx.DeviceID,
		UserAgent: ctx.UserAgent,
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour * 24).Unix(),
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	hashedAccessToken, _ := cryptography.CryptoHasher.HashString(*newToken, nil)
	cache.Cache.CreateEntry(fmt.Sprintf("%s-access", user.ID), string(hashedAccessToken), time.Hour*24)

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "token refreshed", map[string]any{
		"token": newToken,
	}, nil, nil)
}

func ChangePassword(ctx *interfaces.ApplicationContext[dto.ChangePasswordDTO]) {
	validationErr := validator.ValidatorInstance.ValidateStruct(ctx.Body)
	if validationErr != nil {
		apperrors.ValidationFailedError(ctx.Ctx, validationErr)
		return
	}

	userRepo := repository.UserRepo()
	user, err := userRepo.FindOneByFilter(map[string]any{
		"email": ctx.Body.Email,
	})
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "account not found")
		return
	}
	if !cryptography.CryptoHasher.VerifyHashData(user.Password, ctx.Body.OldPassword) {
		apperrors.AuthenticationError(ctx.Ctx, "incorrect old password")
		return
	}

	hashedPassword, err := cryptography.CryptoHasher.HashString(ctx.Body.NewPassword, nil)
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if _, err = userRepo.UpdatePartialByID(user.ID, map[string]any{
		"password": string(hashedPassword),
	}); err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}

	auth.SignOutUser(fmt.Sprintf("%s-access", user.ID), "password changed")

	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "password changed successfully", nil, nil, nil)
}

func FetchUserProfile(ctx *interfaces.ApplicationContext[any]) {
	user, err := repository.UserRepo().FindByID(ctx.GetStringParameter("id"))
	if err != nil {
		apperrors.FatalServerError(ctx.Ctx, err)
		return
	}
	if user == nil {
		apperrors.NotFoundError(ctx.Ctx, "account not found")
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "account fetched", map[string]any{
		"id":        user.ID,
		"name":      user.Name,
		"email":     user.Email,
		"personID":  user.PersonID,
		"role":      user.Role,
		"status":    user.Status,
		"createdAt": user.CreatedAt,
		"lastLogin": user.LastLogin,
	}, nil, nil)
}
