package routev1

import (
	"facemark.io/application/controller"
	"facemark.io/application/interfaces"
	"github.com/gin-gonic/gin"
)

func MiscRouter(router *gin.RouterGroup) {
	miscRouter := router.Group("/misc")
	{
		miscRouter.GET("/health", func(ctx *gin.Context) {
			controller.HealthCheck(&interfaces.ApplicationContext[any]{
				Ctx: ctx,
			})
		})
	}
}
