package services_test

import (
	"context"
	"testing"

	"github.com/maplewood-labs/participate-backend/internal/requestdata"
)

func TestGroupParticipationsFacilitatorFirstOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	facilitator := env.createRole(t, "Facilitator")
	student := env.createRole(t, "Student")
	group := env.createGroup(t, "Robotics")

	// Insertion order is deliberately scrambled.
	zoe := env.createPerson(t, env.createUser(t, "zoe@example.com", "Zoe", "Adams"), &student.ID)
	bea := env.createPerson(t, env.createUser(t, "bea@example.com", "Bea", "Ng"), &facilitator.ID)
	amy := env.createPerson(t, env.createUser(t, "amy@example.com", "Amy", "Ng"), &student.ID)
	env.createParticipation(t, zoe, group, []int{2024})
	env.createParticipation(t, bea, group, []int{2024})
	env.createParticipation(t, amy, group, []int{2024})

	listings, err := env.directory.GroupParticipations(ctx, group.ID, 1)
	if err != nil {
		t.Fatalf("group participations: %v", err)
	}
	if len(listings) != 3 {
		t.Fatalf("expected 3 listings, got %d", len(listings))
	}
	gotOrder := []string{listings[0].PersonName, listings[1].PersonName, listings[2].PersonName}
	wantOrder := []string{"Bea Ng", "Amy Ng", "Zoe Adams"}
	for i := range wantOrder {
		if gotOrder[i] != wantOrder[i] {
			t.Fatalf("listing order = %v, want %v", gotOrder, wantOrder)
		}
	}
	if !listings[0].IsFacilitator || listings[1].IsFacilitator {
		t.Fatalf("facilitator flags wrong: %+v", listings)
	}
}

func TestAdminListsArePermissionScoped(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	staffUser := env.createUser(t, "staff@example.com", "Staff", "User")
	staffUser.IsStaff = true
	if err := env.users.Save(ctx, nil, staffUser); err != nil {
		t.Fatalf("mark staff: %v", err)
	}
	role := env.createRole(t, "Student")
	env.createPerson(t, env.createUser(t, "one@example.com", "One", "A"), &role.ID)
	env.createPerson(t, env.createUser(t, "two@example.com", "Two", "B"), &role.ID)
	selfUser := env.createUser(t, "self@example.com", "Self", "C")
	env.createPerson(t, selfUser, &role.ID)

	staffView, err := env.directory.PeopleAdminList(ctx, &requestdata.RequestData{UserID: staffUser.ID, IsStaff: true})
	if err != nil {
		t.Fatalf("staff list: %v", err)
	}
	if len(staffView) != 3 {
		t.Fatalf("staff should see 3 people, got %d", len(staffView))
	}

	selfView, err := env.directory.PeopleAdminList(ctx, &requestdata.RequestData{UserID: selfUser.ID})
	if err != nil {
		t.Fatalf("self list: %v", err)
	}
	if len(selfView) != 1 || selfView[0].UserID != selfUser.ID {
		t.Fatalf("non-staff should see only themselves, got %d rows", len(selfView))
	}
}

func TestParticipationChangeDropsPersonSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	role := env.createRole(t, "Student")
	person := env.createPerson(t, env.createUser(t, "p@example.com", "Pat", "Q"), &role.ID)
	chess := env.createGroup(t, "Chess")
	env.createParticipation(t, person, chess, []int{2024})

	summary, err := env.display.PersonParticipationSummary(ctx, person.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if summary != "Chess" {
		t.Fatalf("summary = %q, want Chess", summary)
	}

	drama := env.createGroup(t, "Drama")
	row := env.createParticipation(t, person, drama, []int{2024})
	env.invalidator.ParticipationChanged(ctx, row)

	summary, err = env.display.PersonParticipationSummary(ctx, person.ID)
	if err != nil {
		t.Fatalf("summary after change: %v", err)
	}
	if summary != "Chess, Drama" {
		t.Fatalf("summary after change = %q, want %q", summary, "Chess, Drama")
	}
}
