package services_test

import (
	"context"
	"testing"

	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

func TestCertificateIssuedOncePerUser(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewCertificateService(env.log, repos.NewCertificateRepo(env.db, env.log))
	user := env.createUser(t, "grad@example.com", "Gr", "Ad")
	ctx := context.Background()

	first, err := svc.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("first issue: %v", err)
	}
	second, err := svc.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("second call issued a new certificate")
	}
	if !first.IssuedAt.Equal(second.IssuedAt) {
		t.Fatalf("IssuedAt changed: %v vs %v", first.IssuedAt, second.IssuedAt)
	}
}

func TestAttachImageKeepsIssuedAt(t *testing.T) {
	env := newTestEnv(t)
	repo := repos.NewCertificateRepo(env.db, env.log)
	svc := services.NewCertificateService(env.log, repo)
	user := env.createUser(t, "img@example.com", "I", "M")
	ctx := context.Background()

	issued, err := svc.GetOrCreate(ctx, user.ID)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := svc.AttachImage(ctx, user.ID, "/media/certs/img.png"); err != nil {
		t.Fatalf("attach: %v", err)
	}

	reloaded, err := repo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.ImagePath != "/media/certs/img.png" {
		t.Fatalf("image path = %q", reloaded.ImagePath)
	}
	if !reloaded.IssuedAt.Equal(issued.IssuedAt) {
		t.Fatalf("IssuedAt mutated by image attach: %v vs %v", reloaded.IssuedAt, issued.IssuedAt)
	}
}

func TestSaveGuardianGetOrCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	role := env.createRole(t, "Student")
	guardianRole := env.createRole(t, "Guardian")
	student := env.createPerson(t, env.createUser(t, "s@example.com", "S", "T"), &role.ID)
	guardian := env.createPerson(t, env.createUser(t, "g@example.com", "G", "U"), &guardianRole.ID)

	first, err := env.admin.SaveGuardian(ctx, guardian.ID, student.ID, "Father", "")
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := env.admin.SaveGuardian(ctx, guardian.ID, student.ID, "Stepfather", "updated")
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if first.ID != second.ID {
		t.Fatal("repeat save created a second relationship row")
	}
	if second.Relationship != "Stepfather" {
		t.Fatalf("relationship = %q, want Stepfather", second.Relationship)
	}

	if _, err := env.admin.SaveGuardian(ctx, student.ID, student.ID, "Self", ""); err == nil {
		t.Fatal("expected error for self-guardianship")
	}
}
