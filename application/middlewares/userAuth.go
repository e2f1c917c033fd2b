package middlewares

import (
	apperrors "facemark.io/application/appErrors"
	"facemark.io/application/interfaces"
	authusecase "facemark.io/application/usecases/auth"
)

// UserAuthenticationMiddleware validates the bearer token and, when
// requiredRoles is non-empty, gates the route to those roles.
func UserAuthenticationMiddleware(ctx *interfaces.ApplicationContext[any], authToken string, requiredRoles []string) (*interfaces.ApplicationContext[any], bool) {
	authResult := authusecase.IsUserSignedIn(authToken, ctx.DeviceID)

	if !authResult.IsAuthenticated {
		apperrors.AuthenticationError(ctx.Ctx, authResult.ErrorMessage)
		return nil, false
	}

	if len(requiredRoles) != 0 {
		allowed := false
		for _, role := range requiredRoles {
			if authResult.Role == role {
				allowed = true
				break
			}
		}
		if !allowed {
			apperrors.ForbiddenError(ctx.Ctx, "you do not have access to this resource")
			return nil, false
		}
	}

	ctx.SetContextData("UserID", authResult.UserID)
	ctx.SetContextData("Email", authResult.Email)
	ctx.SetContextData("Name", authResult.Name)
	ctx.SetContextData("Role", authResult.Role)
	ctx.SetContextData("PersonID", authResult.PersonID)
	ctx.SetContextData("UserAgent", authResult.UserAgent)
	ctx.SetContextData("DeviceID", authResult.DeviceID)

	return ctx, true
}
