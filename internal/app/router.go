package app

import (
	"github.com/gin-gonic/gin"

	"github.com/maplewood-labs/participate-backend/internal/server"
)

func wireRouter(cfg Config, h Handlers, m Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AllowedOrigins:       cfg.AllowedOrigins,
		AuthHandler:          h.Auth,
		ProgressHandler:      h.Progress,
		PersonHandler:        h.Person,
		GroupHandler:         h.Group,
		ParticipationHandler: h.Participation,
		RoleHandler:          h.Role,
		GuardianHandler:      h.Guardian,
		BadgeHandler:         h.Badge,
		CertificateHandler:   h.Certificate,
		CSVImportHandler:     h.CSVImport,
		CatalogHandler:       h.Catalog,
		RequireAuth:          m.RequireAuth,
		RequireStaff:         m.RequireStaff,
	})
}
