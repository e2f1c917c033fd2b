package middlewares

import (
	"strings"

	"facemark.io/application/interfaces"
	"facemark.io/application/middlewares"
	"github.com/gin-gonic/gin"
)

func UserAuthenticationMiddleware(requiredRoles ...string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authToken := strings.TrimPrefix(ctx.GetHeader("Authorization"), "Bearer ")
		appContext, next := middlewares.UserAuthenticationMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:      ctx,
			Keys:     ctx.Keys,
			Header:   ctx.Request.Header,
			DeviceID: ctx.Request.Header.Get("X-Device-Id"),
		}, authToken, requiredRoles)
		if next {
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
