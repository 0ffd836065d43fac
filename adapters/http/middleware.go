package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/devlink/pkg/apperror"
	"github.com/khoahotran/devlink/pkg/auth"
	"github.com/khoahotran/devlink/pkg/logger"
)

const (
	GinContextKeyUserID = "userID"
)

// AuthMiddleware answers "who is calling", nothing more. It aborts before
// any handler or repository code runs, so an unauthenticated caller can
// never learn whether a resource exists.
func AuthMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)

		c.Next()
	}
}

// ErrorMiddleware turns app errors collected by handlers into HTTP
// responses. Internal failures are logged with their cause and surfaced as
// a generic body.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last().Err
		status := apperror.ToHTTPStatus(err)

		if appErr, ok := err.(*apperror.AppError); ok {
			if status >= http.StatusInternalServerError {
				log.Error("Request failed", appErr.Err, zap.String("path", c.Request.URL.Path), zap.String("details", appErr.Details))
				c.JSON(status, gin.H{"error": "internal server error"})
				return
			}
			c.JSON(status, appErr.ToJSON())
			return
		}

		log.Error("Request failed with unhandled error", err, zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// parsePagination reads limit/offset query params. Bad or missing values
// fall back to the use case defaults.
func parsePagination(c *gin.Context) (limit, offset int) {
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userID, true
}
