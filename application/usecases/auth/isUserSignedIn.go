package auth_usecases

import (
	"fmt"
	"os"

	"facemark.io/infrastructure/auth"
	"facemark.io/infrastructure/cryptography"
	"facemark.io/infrastructure/database/repository/cache"
	"facemark.io/infrastructure/logger"
	"github.com/golang-jwt/jwt/v4"
)

type UserAuthResult struct {
	IsAuthenticated bool
	UserID          string
	Email           string
	Name            string
	Role            string
	PersonID        string
	UserAgent       string
	DeviceID        string
	ErrorMessage    string
}

// IsUserSignedIn validates the bearer token against its claims and the
// server-side session record, so a signed-out token fails even before expiry.
func IsUserSignedIn(authToken string, deviceID string) UserAuthResult {
	result := UserAuthResult{
		IsAuthenticated: false,
	}

	if authToken == "" {
		result.ErrorMessage = "missing auth token"
		return result
	}

	validAccessToken, err := auth.DecodeAuthToken(authToken)
	if err != nil {
		result.ErrorMessage = "this session has expired"
		return result
	}

	authTokenClaims, ok := validAccessToken.Claims.(jwt.MapClaims)
	if !ok {
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if authTokenClaims["iss"] != os.Getenv("JWT_ISSUER") {
		logger.Warning("attempt to access account with tampered jwt", logger.LoggerOptions{
			Key:  "token claims",
			Data: validAccessToken,
		})
		result.ErrorMessage = "unauthorised access"
		return result
	}

	if deviceID != "" && authTokenClaims["deviceID"] != deviceID {
		logger.Warning("client made request using device id different from that in access token", logger.LoggerOptions{
			Key:  "token device id",
			Data: authTokenClaims["deviceID"],
		}, logger.LoggerOptions{
			Key:  "request device id",
			Data: deviceID,
		})
		result.ErrorMessage = "unauthorized access"
		return result
	}

	userID, _ := authTokenClaims["userID"].(string)
	sessionToken := cache.Cache.FindOne(fmt.Sprintf("%s-access", userID))
	if sessionToken == nil {
		result.ErrorMessage = "this session has expired"
		return result
	}
	match := cryptography.CryptoHasher.VerifyHashData(*sessionToken, authToken)
	if !match {
		result.ErrorMessage = "this session has expired"
		return result
	}

	result.IsAuthenticated = true
	result.UserID = userID
	result.Email, _ = authTokenClaims["email"].(string)
	result.Name, _ = authTokenClaims["name"].(string)
	result.Role, _ = authTokenClaims["role"].(string)
	result.PersonID, _ = authTokenClaims["personID"].(string)
	result.UserAgent, _ = authTokenClaims["userAgent"].(string)
	result.DeviceID, _ = authTokenClaims["deviceID"].(string)

	return result
}
