package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/requestdata"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

// RequireAuth validates the bearer token, loads the account and places the
// caller's identity on the request context. Everything behind it can assume
// requestdata is present.
func RequireAuth(auth services.AuthService, userRepo repos.UserRepo, log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			abortUnauthorized(c, "missing bearer token")
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		claims, err := auth.ParseToken(raw)
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), nil, claims.UserID)
		if err != nil {
			log.Warn("User lookup failed during auth", "user_id", claims.UserID, "error", err)
			abortUnauthorized(c, "invalid token")
			return
		}
		if user == nil || !user.IsActive {
			abortUnauthorized(c, "invalid token")
			return
		}

		rd := &requestdata.RequestData{
			UserID:  user.ID,
			IsStaff: user.IsStaff,
			IsAdmin: user.IsAdmin,
		}
		c.Request = c.Request.WithContext(requestdata.WithRequestData(c.Request.Context(), rd))
		c.Next()
	}
}

// RequireStaff sits behind RequireAuth on the admin routes.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		rd := requestdata.GetRequestData(c.Request.Context())
		if rd == nil || (!rd.IsStaff && !rd.IsAdmin) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"message": "staff access required",
			})
			return
		}
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
	})
}
