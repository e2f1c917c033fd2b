package middlewares

import (
	"fmt"

	"facemark.io/application/interfaces"
	"facemark.io/infrastructure/ipresolver"
	"facemark.io/infrastructure/logger"
)

// IPAddressMiddleware resolves the client IP to a coarse location. Attendance
// submissions without an explicit location fall back to it. Resolution
// failures never block the request.
func IPAddressMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	ipResult, err := ipresolver.IPResolverInstance.LookUp(clientIP)
	if err != nil {
		logger.Warning("could not resolve client ip", logger.LoggerOptions{
			Key:  "ip",
			Data: clientIP,
		}, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		ctx.SetContextData("Location", "")
		return ctx, true
	}
	location := ipResult.City
	if location != "" && ipResult.CountryCode != "" {
		location = fmt.Sprintf("%s, %s", ipResult.City, ipResult.CountryCode)
	}
	ctx.SetContextData("Location", location)
	ctx.SetContextData("IPAddress", ipResult.IPAddress)
	return ctx, true
}
