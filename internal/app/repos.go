package app

import (
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
)

type Repos struct {
	User              repos.UserRepo
	Role              repos.RoleRepo
	Person            repos.PersonRepo
	GuardianStudent   repos.GuardianStudentRepo
	Group             repos.GroupRepo
	Participation     repos.ParticipationRepo
	Badge             repos.BadgeRepo
	CoreCompetency    repos.CoreCompetencyRepo
	Theme             repos.ThemeRepo
	Pathway           repos.PathwayRepo
	Certificate       repos.CertificateRepo
	SlideshowProgress repos.SlideshowProgressRepo
	JobRun            repos.JobRunRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:              repos.NewUserRepo(db, log),
		Role:              repos.NewRoleRepo(db, log),
		Person:            repos.NewPersonRepo(db, log),
		GuardianStudent:   repos.NewGuardianStudentRepo(db, log),
		Group:             repos.NewGroupRepo(db, log),
		Participation:     repos.NewParticipationRepo(db, log),
		Badge:             repos.NewBadgeRepo(db, log),
		CoreCompetency:    repos.NewCoreCompetencyRepo(db, log),
		Theme:             repos.NewThemeRepo(db, log),
		Pathway:           repos.NewPathwayRepo(db, log),
		Certificate:       repos.NewCertificateRepo(db, log),
		SlideshowProgress: repos.NewSlideshowProgressRepo(db, log),
		JobRun:            repos.NewJobRunRepo(db, log),
	}
}
