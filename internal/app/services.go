package app

import (
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/cache"
	"github.com/maplewood-labs/participate-backend/internal/jobs"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

type Services struct {
	Cache       cache.Store
	Auth        services.AuthService
	Directory   services.DirectoryService
	Display     services.DisplayService
	Invalidator *services.Invalidator
	Admin       services.AdminService
	Progress    services.ProgressService
	YearSelect  services.YearSelectService
	Certificate services.CertificateService
	CertRender  services.CertificateRenderService
	CSVImport   services.CSVImportService
	BadgeImport services.BadgeImportService
	JobQueue    *jobs.Queue
	JobWorker   *jobs.Worker
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	var store cache.Store
	if cfg.CacheBackend == "memory" {
		store = cache.NewMemoryStore()
	} else {
		redisStore, err := cache.NewRedisStore(log)
		if err != nil {
			return Services{}, err
		}
		store = redisStore
	}

	invalidator := services.NewInvalidator(log, store, r.User, r.Person, r.Participation)
	display := services.NewDisplayService(log, store, r.Person, r.Participation)
	directory := services.NewDirectoryService(log, store, r.Role, r.Person, r.Group, r.Participation)
	admin := services.NewAdminService(db, log, r.Role, r.Person, r.Group, r.Participation, r.GuardianStudent, display, invalidator)
	badgeImport := services.NewBadgeImportService(log, r.Badge, cfg.MediaRoot)

	certificate := services.NewCertificateService(log, r.Certificate)
	certRender, err := services.NewCertificateRenderService(log, certificate, r.User, cfg.MediaRoot, cfg.CertFontPath)
	if err != nil {
		return Services{}, err
	}

	registry := jobs.NewRegistry()
	registry.Register(services.JobTypeBadgeZipImport, jobs.HandlerFunc(badgeImport.HandleJob))

	queue := jobs.NewQueue(db, log, r.JobRun)
	worker := jobs.NewWorker(db, log, r.JobRun, registry, jobs.DefaultWorkerPolicy())

	return Services{
		Cache:       store,
		Auth:        services.NewAuthService(log, r.User, cfg.JWTSecretKey, cfg.AccessTokenTTL),
		Directory:   directory,
		Display:     display,
		Invalidator: invalidator,
		Admin:       admin,
		Progress:    services.NewProgressService(log, r.SlideshowProgress),
		YearSelect:  services.NewYearSelectService(log, store, r.Participation, cfg.YearChoiceSpan),
		Certificate: certificate,
		CertRender:  certRender,
		CSVImport:   services.NewCSVImportService(db, log, r.User, r.Person, r.Role, admin),
		BadgeImport: badgeImport,
		JobQueue:    queue,
		JobWorker:   worker,
	}, nil
}
