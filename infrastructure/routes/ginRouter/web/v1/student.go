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

func StudentRouter(router *gin.RouterGroup) {
	studentRouter := router.Group("/student")
	{
		studentRouter.POST("", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateStudentDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateStudent(&interfaces.ApplicationContext[dto.CreateStudentDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		studentRouter.GET("", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchStudents(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		studentRouter.GET("/search", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.SearchStudents(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		studentRouter.GET("/:studentID", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchStudentByID(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"studentID": ctx.Param("studentID"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		studentRouter.PATCH("/:studentID", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateStudentDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateStudent(&interfaces.ApplicationContext[dto.UpdateStudentDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
				Param: map[string]string{
					"studentID": ctx.Param("studentID"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		studentRouter.DELETE("/:studentID", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.DeleteStudent(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"studentID": ctx.Param("studentID"),
				},
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
