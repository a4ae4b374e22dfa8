package app

import (
	"github.com/maplewood-labs/participate-backend/internal/handlers"
	"github.com/maplewood-labs/participate-backend/internal/logger"
)

type Handlers struct {
	Auth          *handlers.AuthHandler
	Progress      *handlers.ProgressHandler
	Person        *handlers.PersonHandler
	Group         *handlers.GroupHandler
	Participation *handlers.ParticipationHandler
	Role          *handlers.RoleHandler
	Guardian      *handlers.GuardianHandler
	Badge         *handlers.BadgeHandler
	Certificate   *handlers.CertificateHandler
	CSVImport     *handlers.CSVImportHandler
	Catalog       *handlers.CatalogHandler
}

func wireHandlers(log *logger.Logger, s Services, r Repos) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:          handlers.NewAuthHandler(s.Auth),
		Progress:      handlers.NewProgressHandler(s.Progress),
		Person:        handlers.NewPersonHandler(s.Admin, s.Directory, s.Display),
		Group:         handlers.NewGroupHandler(s.Admin, s.Directory),
		Participation: handlers.NewParticipationHandler(s.Admin, s.Directory, s.Display, s.YearSelect),
		Role:          handlers.NewRoleHandler(s.Admin, r.Role),
		Guardian:      handlers.NewGuardianHandler(s.Admin, r.GuardianStudent),
		Badge:         handlers.NewBadgeHandler(r.Badge, r.JobRun, s.JobQueue),
		Certificate:   handlers.NewCertificateHandler(s.Certificate, s.CertRender),
		CSVImport:     handlers.NewCSVImportHandler(s.CSVImport),
		Catalog:       handlers.NewCatalogHandler(r.Pathway, r.Theme, r.CoreCompetency),
	}
}
