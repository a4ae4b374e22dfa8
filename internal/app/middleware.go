package app

import (
	"github.com/gin-gonic/gin"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/middleware"
)

type Middleware struct {
	RequireAuth  gin.HandlerFunc
	RequireStaff gin.HandlerFunc
}

func wireMiddleware(log *logger.Logger, s Services, r Repos) Middleware {
	log.Info("Wiring middleware...")
	return Middleware{
		RequireAuth:  middleware.RequireAuth(s.Auth, r.User, log),
		RequireStaff: middleware.RequireStaff(),
	}
}
