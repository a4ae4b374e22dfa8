package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/maplewood-labs/participate-backend/internal/handlers"
)

type RouterConfig struct {
	AllowedOrigins []string

	AuthHandler          *handlers.AuthHandler
	ProgressHandler      *handlers.ProgressHandler
	PersonHandler        *handlers.PersonHandler
	GroupHandler         *handlers.GroupHandler
	ParticipationHandler *handlers.ParticipationHandler
	RoleHandler          *handlers.RoleHandler
	GuardianHandler      *handlers.GuardianHandler
	BadgeHandler         *handlers.BadgeHandler
	CertificateHandler   *handlers.CertificateHandler
	CSVImportHandler     *handlers.CSVImportHandler
	CatalogHandler       *handlers.CatalogHandler

	RequireAuth  gin.HandlerFunc
	RequireStaff gin.HandlerFunc
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/api/auth/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	api := router.Group("/api")
	api.Use(cfg.RequireAuth)

	// Slideshow progress
	api.POST("/slideshows/progress", cfg.ProgressHandler.Save)
	api.GET("/slideshows/progress", cfg.ProgressHandler.Get)
	api.GET("/slideshows/progress/all", cfg.ProgressHandler.List)

	// Directory reads
	api.GET("/people", cfg.PersonHandler.List)
	api.GET("/people/:id/participations", cfg.PersonHandler.Participations)
	api.GET("/people/:id/summary", cfg.PersonHandler.Summary)
	api.GET("/people/:id/guardians", cfg.GuardianHandler.ListForStudent)
	api.GET("/groups", cfg.GroupHandler.List)
	api.GET("/groups/:id/participations", cfg.GroupHandler.Participations)
	api.GET("/groups/:id/facilitators", cfg.GroupHandler.Facilitators)
	api.GET("/participations", cfg.ParticipationHandler.List)
	api.GET("/participations/year-choices", cfg.ParticipationHandler.YearChoices)
	api.GET("/participations/:id/years", cfg.ParticipationHandler.YearsDisplay)
	api.GET("/participations/:id/years/widget", cfg.ParticipationHandler.YearsWidget)
	api.GET("/roles", cfg.RoleHandler.List)
	api.GET("/badges", cfg.BadgeHandler.List)
	api.GET("/pathways", cfg.CatalogHandler.ListPathways)
	api.GET("/groups/:id/theme", cfg.CatalogHandler.GroupTheme)
	api.GET("/core-competencies", cfg.CatalogHandler.ListCompetencies)

	// Certificates
	api.GET("/certificates/mine", cfg.CertificateHandler.Mine)
	api.POST("/certificates/mine/image", cfg.CertificateHandler.RenderImage)

	// ===============
	// || Staff     ||
	// ===============
	staff := api.Group("/")
	staff.Use(cfg.RequireStaff)

	staff.POST("/people", cfg.PersonHandler.Save)
	staff.DELETE("/people/:id", cfg.PersonHandler.Delete)
	staff.POST("/groups", cfg.GroupHandler.Save)
	staff.DELETE("/groups/:id", cfg.GroupHandler.Delete)
	staff.DELETE("/groups/:id/members/:personID", cfg.GroupHandler.RemoveMember)
	staff.POST("/participations", cfg.ParticipationHandler.Save)
	staff.DELETE("/participations/:id", cfg.ParticipationHandler.Delete)
	staff.POST("/roles", cfg.RoleHandler.Save)
	staff.DELETE("/roles/:id", cfg.RoleHandler.Delete)
	staff.POST("/guardians", cfg.GuardianHandler.Save)
	staff.DELETE("/guardians/:id", cfg.GuardianHandler.Delete)
	staff.POST("/pathways", cfg.CatalogHandler.SavePathway)
	staff.POST("/themes", cfg.CatalogHandler.SaveTheme)
	staff.POST("/badges/import", cfg.BadgeHandler.ImportArchive)
	staff.GET("/badges/import/:id", cfg.BadgeHandler.ImportStatus)
	staff.POST("/import/people", cfg.CSVImportHandler.ImportPeople)
	staff.POST("/import/guardians", cfg.CSVImportHandler.ImportGuardians)
	staff.GET("/import/people/template", cfg.CSVImportHandler.PeopleTemplate)
	staff.GET("/import/guardians/template", cfg.CSVImportHandler.GuardianTemplate)

	return router
}
