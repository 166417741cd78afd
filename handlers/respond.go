package handlers

import (
	"github.com/gin-gonic/gin"

	"order-service/internal/apperr"
	"order-service/internal/auth"
)

// fail maps any error to the structured taxonomy and writes the response.
// Errors already in the taxonomy pass through as-is; everything else becomes
// INTERNAL with a generic message (detail stays in server logs).
func fail(c *gin.Context, err error) {
	appErr := apperr.From(err)
	c.AbortWithStatusJSON(apperr.HTTPStatus(appErr.Code), gin.H{"error": appErr})
}

// callerClaims pulls the authenticated caller's claims out of the request
// context, set there by the authentication middleware.
func callerClaims(c *gin.Context) (auth.Claims, bool) {
	claims, ok := c.Request.Context().Value(auth.ClaimsKey).(auth.Claims)
	return claims, ok
}
