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

func SubjectRouter(router *gin.RouterGroup) {
	subjectRouter := router.Group("/subject")
	{
		subjectRouter.POST("", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateSubjectDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateSubject(&interfaces.ApplicationContext[dto.CreateSubjectDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		subjectRouter.GET("", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchSubjects(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		subjectRouter.PATCH("/:name", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateSubjectDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateSubject(&interfaces.ApplicationContext[dto.UpdateSubjectDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
				Param: map[string]string{
					"name": ctx.Param("name"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		subjectRouter.DELETE("/:name", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.DeleteSubject(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"name": ctx.Param("name"),
				},
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
