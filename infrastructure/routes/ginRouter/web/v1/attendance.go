package routev1

import (
	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/constants"
	"facemark.io/application/controller"
	"facemark.io/application/controller/dto"
	"facemark.io/application/interfaces"
	middlewares "facemark.io/infrastructure/middleware"
	"github.com/gin-gonic/gin"
)

func AttendanceRouter(router *gin.RouterGroup) {
	attendanceRouter := router.Group("/attendance")
	{
		attendanceRouter.POST("/mark", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.MarkAttendanceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.MarkAttendance(&interfaces.ApplicationContext[dto.MarkAttendanceDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.POST("/manual", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ManualAttendanceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.MarkManualAttendance(&interfaces.ApplicationContext[dto.ManualAttendanceDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.POST("/enroll", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.EnrollFaceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.EnrollFace(&interfaces.ApplicationContext[dto.EnrollFaceDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.GET("", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchAttendanceByDate(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.GET("/statistics", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchAttendanceStatistics(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.GET("/summary", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchAttendanceSummary(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.PUT("/:id", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.OverrideAttendanceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.OverrideAttendanceRecord(&interfaces.ApplicationContext[dto.OverrideAttendanceDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
				Param: map[string]string{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		attendanceRouter.GET("/person/:personID", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchPersonAttendance(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"personID": ctx.Param("personID"),
				},
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
