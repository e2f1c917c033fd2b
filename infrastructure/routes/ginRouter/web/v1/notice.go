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

func NoticeRouter(router *gin.RouterGroup) {
	noticeRouter := router.Group("/notice")
	{
		noticeRouter.POST("", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CreateNoticeDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.CreateNotice(&interfaces.ApplicationContext[dto.CreateNoticeDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		noticeRouter.GET("", middlewares.UserAuthenticationMiddleware(), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchNotices(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		noticeRouter.PATCH("/:id", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateNoticeDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateNotice(&interfaces.ApplicationContext[dto.UpdateNoticeDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
				Param: map[string]string{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		noticeRouter.DELETE("/:id", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.DeleteNotice(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"id": ctx.Param("id"),
				},
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
