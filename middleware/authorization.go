package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TokenVerifier validates a session token with the identity provider and
// returns the external user id it belongs to.
type TokenVerifier interface {
	VerifySessionToken(ctx context.Context, sessionToken string) (string, error)
}

func GetBearerToken(authorizationHeader string) (string, error) {
	if authorizationHeader == "" {
		return "", errors.New("authorization header is required")
	}

	// Split authorization header into Bearer and token.
	bearerTokenParts := strings.Split(authorizationHeader, " ")

	if len(bearerTokenParts) != 2 {
		return "", errors.New("invalid authorization header format")
	}

	if bearerTokenParts[0] != "Bearer" {
		return "", errors.New("invalid authorization scheme, expected 'Bearer'")
	}

	return bearerTokenParts[1], nil
}

func AuthorizationMiddleware(tokenVerifier TokenVerifier) gin.HandlerFunc {
	return func(ginContext *gin.Context) {
		bearerToken, getTokenError := GetBearerToken(ginContext.GetHeader("Authorization"))

		if getTokenError != nil {
			ginContext.JSON(http.StatusUnauthorized, gin.H{"error": getTokenError.Error()})
			ginContext.Abort()

			return
		}

		clerkUserID, verifyTokenError := tokenVerifier.VerifySessionToken(ginContext.Request.Context(), bearerToken)

		if verifyTokenError != nil {
			ginContext.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session token"})
			ginContext.Abort()

			return
		}

		ginContext.Set("clerkUserId", clerkUserID)
		ginContext.Next()
	}
}
