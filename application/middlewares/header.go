package middlewares

import (
	"errors"

	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/interfaces"
	"facemark.io/infrastructure/useragent"
)

func UserAgentMiddleware(ctx *interfaces.ApplicationContext[any]) (*interfaces.ApplicationContext[any], bool) {
	agent := ctx.GetHeader("User-Agent")
	if agent == nil || *agent == "" {
		apperrors.ClientError(ctx.Ctx, "missing user-agent header", []error{errors.New("user agent header missing")}, nil)
		return nil, false
	}
	agentDetails := useragent.ParseUserAgent(*agent)
	if agentDetails.Bot {
		apperrors.UnsupportedUserAgent(ctx.Ctx)
		return nil, false
	}
	ctx.UserAgent = *agent
	ctx.DeviceName = agentDetails.Name
	deviceID := ctx.GetHeader("X-Device-Id")
	if deviceID == nil || *deviceID == "" {
		apperrors.MalformedHeader(ctx.Ctx)
		return nil, false
	}
	ctx.DeviceID = *deviceID
	return ctx, true
}
