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

func DeviceRouter(router *gin.RouterGroup) {
	deviceRouter := router.Group("/device")
	{
		deviceRouter.POST("/register", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.RegisterDeviceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.RegisterDevice(&interfaces.ApplicationContext[dto.RegisterDeviceDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		// terminals call this on a timer with their registered ID. they do not
		// hold user sessions so the route is left open
		deviceRouter.POST("/sync", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.DeviceSyncDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			if body.IPAddress == "" {
				body.IPAddress = ctx.ClientIP()
			}
			controller.SyncDevice(&interfaces.ApplicationContext[dto.DeviceSyncDTO]{
				Ctx:      ctx,
				Body:     &body,
				Keys:     appContext.Keys,
				DeviceID: appContext.DeviceID,
			})
		})

		deviceRouter.GET("", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchDevices(&interfaces.ApplicationContext[any]{
				Ctx:      ctx,
				Keys:     appContext.Keys,
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		deviceRouter.GET("/:deviceID", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchDeviceByID(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"deviceID": ctx.Param("deviceID"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		deviceRouter.GET("/:deviceID/logs", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.FetchDeviceLogs(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"deviceID": ctx.Param("deviceID"),
				},
				Query:    ctx.Request.URL.Query(),
				DeviceID: appContext.DeviceID,
			})
		})

		deviceRouter.PATCH("/:deviceID", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.UpdateDeviceDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.UpdateDevice(&interfaces.ApplicationContext[dto.UpdateDeviceDTO]{
				Ctx:  ctx,
				Body: &body,
				Keys: appContext.Keys,
				Param: map[string]string{
					"deviceID": ctx.Param("deviceID"),
				},
				DeviceID: appContext.DeviceID,
			})
		})

		deviceRouter.DELETE("/:deviceID", middlewares.UserAuthenticationMiddleware(constants.ROLE_TEACHER), func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.DeleteDevice(&interfaces.ApplicationContext[any]{
				Ctx:  ctx,
				Keys: appContext.Keys,
				Param: map[string]string{
					"deviceID": ctx.Param("deviceID"),
				},
				DeviceID: appContext.DeviceID,
			})
		})
	}
}
