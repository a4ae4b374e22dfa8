package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

// AdminService owns the mutating back-office operations. Every mutation runs
// against the entity store first and then hands the invalidator the affected
// identities; cache trouble never rolls a mutation back.
type AdminService interface {
	SaveRole(ctx context.Context, row *types.Role) error
	DeleteRole(ctx context.Context, id uuid.UUID) error
	SavePerson(ctx context.Context, row *types.Person) error
	DeletePerson(ctx context.Context, id uuid.UUID) error
	SaveGroup(ctx context.Context, row *types.Group) error
	DeleteGroup(ctx context.Context, id uuid.UUID) error
	SaveParticipation(ctx context.Context, row *types.Participation) error
	DeleteParticipation(ctx context.Context, id uuid.UUID) error
	RemoveGroupMember(ctx context.Context, groupID, personID uuid.UUID) error
	SaveGuardian(ctx context.Context, guardianID, studentID uuid.UUID, relationship, notes string) (*types.GuardianStudent, error)
	DeleteGuardian(ctx context.Context, id uuid.UUID) error
}

type adminService struct {
	db                *gorm.DB
	log               *logger.Logger
	roleRepo          repos.RoleRepo
	personRepo        repos.PersonRepo
	groupRepo         repos.GroupRepo
	participationRepo repos.ParticipationRepo
	guardianRepo      repos.GuardianStudentRepo
	display           DisplayService
	invalidator       *Invalidator
}

func NewAdminService(
	db *gorm.DB,
	baseLog *logger.Logger,
	roleRepo repos.RoleRepo,
	personRepo repos.PersonRepo,
	groupRepo repos.GroupRepo,
	participationRepo repos.ParticipationRepo,
	guardianRepo repos.GuardianStudentRepo,
	display DisplayService,
	invalidator *Invalidator,
) AdminService {
	return &adminService{
		db:                db,
		log:               baseLog.With("service", "AdminService"),
		roleRepo:          roleRepo,
		personRepo:        personRepo,
		groupRepo:         groupRepo,
		participationRepo: participationRepo,
		guardianRepo:      guardianRepo,
		display:           display,
		invalidator:       invalidator,
	}
}

func (s *adminService) SaveRole(ctx context.Context, row *types.Role) error {
	if row == nil {
		return fmt.Errorf("nil role")
	}
	isNew := row.ID == uuid.Nil
	var titleChanged bool
	if !isNew {
		existing, err := s.roleRepo.GetByID(ctx, nil, row.ID)
		if err != nil {
			return fmt.Errorf("load role: %w", err)
		}
		if existing == nil {
			isNew = true
		} else {
			titleChanged = !strings.EqualFold(existing.Title, row.Title)
		}
	}

	if err := s.roleRepo.Save(ctx, nil, row); err != nil {
		return fmt.Errorf("save role: %w", err)
	}

	if isNew {
		s.invalidator.RoleCreated(ctx)
	} else if titleChanged {
		s.invalidator.RoleChanged(ctx, row.ID)
		s.refreshDisplaysForRole(ctx, row.ID)
	}
	return nil
}

func (s *adminService) DeleteRole(ctx context.Context, id uuid.UUID) error {
	// Affected people and groups must be computed while the role rows still
	// reference it.
	s.invalidator.RoleDeleting(ctx, id)
	affected, err := s.personRepo.ListByRoleID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("list people for role: %w", err)
	}

	if err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.personRepo.ClearRole(ctx, tx, id); err != nil {
			return fmt.Errorf("clear role references: %w", err)
		}
		if err := s.roleRepo.Delete(ctx, tx, id); err != nil {
			return fmt.Errorf("delete role: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}
	s.invalidator.RoleDeleted(ctx)

	for _, person := range affected {
		if _, err := s.display.RefreshPersonDisplay(ctx, person.ID); err != nil {
			s.log.Warn("Display refresh failed after role delete", "person_id", person.ID, "error", err)
		}
	}
	return nil
}

func (s *adminService) SavePerson(ctx context.Context, row *types.Person) error {
	if row == nil {
		return fmt.Errorf("nil person")
	}
	if err := s.personRepo.Save(ctx, nil, row); err != nil {
		return fmt.Errorf("save person: %w", err)
	}
	if _, err := s.display.RefreshPersonDisplay(ctx, row.ID); err != nil {
		s.log.Warn("Display refresh failed after person save", "person_id", row.ID, "error", err)
	}
	s.invalidator.PersonSaved(ctx, row.ID)
	return nil
}

func (s *adminService) DeletePerson(ctx context.Context, id uuid.UUID) error {
	s.invalidator.PersonDeleting(ctx, id)
	if err := s.personRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

func (s *adminService) SaveGroup(ctx context.Context, row *types.Group) error {
	if row == nil {
		return fmt.Errorf("nil group")
	}
	if err := s.groupRepo.Save(ctx, nil, row); err != nil {
		return fmt.Errorf("save group: %w", err)
	}
	s.invalidator.GroupChanged(ctx, row.ID)
	return nil
}

func (s *adminService) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	// Invalidate first so the tracked-key index is still intact.
	s.invalidator.GroupChanged(ctx, id)
	if err := s.groupRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete group: %w", err)
	}
	return nil
}

func (s *adminService) SaveParticipation(ctx context.Context, row *types.Participation) error {
	if row == nil {
		return fmt.Errorf("nil participation")
	}
	if err := s.participationRepo.Save(ctx, nil, row); err != nil {
		return fmt.Errorf("save participation: %w", err)
	}
	s.invalidator.ParticipationChanged(ctx, row)
	return nil
}

func (s *adminService) DeleteParticipation(ctx context.Context, id uuid.UUID) error {
	row, err := s.participationRepo.GetByID(ctx, nil, id)
	if err != nil {
		return fmt.Errorf("load participation: %w", err)
	}
	if row == nil {
		return nil
	}
	if err := s.participationRepo.Delete(ctx, nil, id); err != nil {
		return fmt.Errorf("delete participation: %w", err)
	}
	s.invalidator.ParticipationChanged(ctx, row)
	return nil
}

// RemoveGroupMember is the membership edit path: it removes the associative
// rows joining the pair and invalidates both sides.
func (s *adminService) RemoveGroupMember(ctx context.Context, groupID, personID uuid.UUID) error {
	if err := s.participationRepo.DeleteByGroupAndPerson(ctx, nil, groupID, personID); err != nil {
		return fmt.Errorf("remove group member: %w", err)
	}
	s.invalidator.GroupChanged(ctx, groupID)
	s.invalidator.PersonSaved(ctx, personID)
	return nil
}

// SaveGuardian get-or-creates on the (guardian, student) pair; a repeat call
// updates the relationship label in place.
func (s *adminService) SaveGuardian(ctx context.Context, guardianID, studentID uuid.UUID, relationship, notes string) (*types.GuardianStudent, error) {
	if guardianID == studentID {
		return nil, fmt.Errorf("a person cannot be their own guardian")
	}
	existing, err := s.guardianRepo.GetByPair(ctx, nil, guardianID, studentID)
	if err != nil {
		return nil, fmt.Errorf("load guardian relationship: %w", err)
	}
	if existing == nil {
		existing = &types.GuardianStudent{
			GuardianID: guardianID,
			StudentID:  studentID,
			IsActive:   true,
		}
	}
	existing.Relationship = relationship
	if notes != "" {
		existing.Notes = notes
	}
	if err := s.guardianRepo.Save(ctx, nil, existing); err != nil {
		return nil, fmt.Errorf("save guardian relationship: %w", err)
	}
	return existing, nil
}

func (s *adminService) DeleteGuardian(ctx context.Context, id uuid.UUID) error {
	return s.guardianRepo.Delete(ctx, nil, id)
}

func (s *adminService) refreshDisplaysForRole(ctx context.Context, roleID uuid.UUID) {
	people, err := s.personRepo.ListByRoleID(ctx, nil, roleID)
	if err != nil {
		s.log.Warn("Display refresh lookup failed after role change", "role_id", roleID, "error", err)
		return
	}
	for _, person := range people {
		if _, err := s.display.RefreshPersonDisplay(ctx, person.ID); err != nil {
			s.log.Warn("Display refresh failed after role change", "person_id", person.ID, "error", err)
		}
	}
}
