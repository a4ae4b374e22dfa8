package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/cache"
	"github.com/maplewood-labs/participate-backend/internal/db"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/services"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return gdb
}

type testEnv struct {
	db    *gorm.DB
	log   *logger.Logger
	store cache.Store

	users          repos.UserRepo
	roles          repos.RoleRepo
	people         repos.PersonRepo
	groups         repos.GroupRepo
	participations repos.ParticipationRepo
	guardians      repos.GuardianStudentRepo
	badges         repos.BadgeRepo

	directory   services.DirectoryService
	display     services.DisplayService
	invalidator *services.Invalidator
	admin       services.AdminService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gdb := newTestDB(t)
	log := logger.NewNop()
	store := cache.NewMemoryStore()

	env := &testEnv{
		db:             gdb,
		log:            log,
		store:          store,
		users:          repos.NewUserRepo(gdb, log),
		roles:          repos.NewRoleRepo(gdb, log),
		people:         repos.NewPersonRepo(gdb, log),
		groups:         repos.NewGroupRepo(gdb, log),
		participations: repos.NewParticipationRepo(gdb, log),
		guardians:      repos.NewGuardianStudentRepo(gdb, log),
		badges:         repos.NewBadgeRepo(gdb, log),
	}
	env.invalidator = services.NewInvalidator(log, store, env.users, env.people, env.participations)
	env.display = services.NewDisplayService(log, store, env.people, env.participations)
	env.directory = services.NewDirectoryService(log, store, env.roles, env.people, env.groups, env.participations)
	env.admin = services.NewAdminService(gdb, log, env.roles, env.people, env.groups, env.participations, env.guardians, env.display, env.invalidator)
	return env
}

func (e *testEnv) createUser(t *testing.T, email, first, last string) *types.User {
	t.Helper()
	user := &types.User{
		Email:     email,
		Username:  email,
		Password:  "x",
		FirstName: first,
		LastName:  last,
		IsActive:  true,
	}
	if _, err := e.users.Create(context.Background(), nil, user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func (e *testEnv) createRole(t *testing.T, title string) *types.Role {
	t.Helper()
	role := &types.Role{Title: title}
	if err := e.roles.Save(context.Background(), nil, role); err != nil {
		t.Fatalf("create role: %v", err)
	}
	return role
}

func (e *testEnv) createPerson(t *testing.T, user *types.User, roleID *uuid.UUID) *types.Person {
	t.Helper()
	person := &types.Person{UserID: user.ID, RoleID: roleID, IsPublic: true}
	if err := e.people.Save(context.Background(), nil, person); err != nil {
		t.Fatalf("create person: %v", err)
	}
	return person
}

func (e *testEnv) createGroup(t *testing.T, name string) *types.Group {
	t.Helper()
	group := &types.Group{Name: name, IsPublic: true}
	if err := e.groups.Save(context.Background(), nil, group); err != nil {
		t.Fatalf("create group: %v", err)
	}
	return group
}

func (e *testEnv) createParticipation(t *testing.T, person *types.Person, group *types.Group, years []int) *types.Participation {
	t.Helper()
	row := &types.Participation{
		PersonID: person.ID,
		GroupID:  group.ID,
		Years:    years,
		IsPublic: true,
	}
	if err := e.participations.Save(context.Background(), nil, row); err != nil {
		t.Fatalf("create participation: %v", err)
	}
	return row
}
