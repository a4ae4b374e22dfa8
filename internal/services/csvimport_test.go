package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/maplewood-labs/participate-backend/internal/services"
)

func newCSVService(env *testEnv) services.CSVImportService {
	return services.NewCSVImportService(env.db, env.log, env.users, env.people, env.roles, env.admin)
}

func TestImportPeopleCreatesAccounts(t *testing.T) {
	env := newTestEnv(t)
	env.createRole(t, "Student")
	svc := newCSVService(env)

	csv := strings.Join([]string{
		"email,first_name,last_name,role,graduating_year",
		"new@example.com,New,Kid,student,2027",
	}, "\n")

	report, err := svc.ImportPeople(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 1 || len(report.RowErrors) != 0 {
		t.Fatalf("report = %+v", report)
	}
	if len(report.Credentials) != 1 || report.Credentials[0].Email != "new@example.com" {
		t.Fatalf("expected one generated credential, got %+v", report.Credentials)
	}
	if report.Credentials[0].Password == "" {
		t.Fatal("generated password is empty")
	}

	user, err := env.users.GetByEmail(context.Background(), nil, "new@example.com")
	if err != nil || user == nil {
		t.Fatalf("user not created: %v", err)
	}
	person, err := env.people.GetByUserID(context.Background(), nil, user.ID)
	if err != nil || person == nil {
		t.Fatalf("person not created: %v", err)
	}
	if person.GraduatingYear == nil || *person.GraduatingYear != 2027 {
		t.Fatalf("graduating year = %v, want 2027", person.GraduatingYear)
	}
}

func TestImportPeopleCollectsRowErrors(t *testing.T) {
	env := newTestEnv(t)
	env.createRole(t, "Student")
	svc := newCSVService(env)

	csv := strings.Join([]string{
		"email,first_name,last_name,role",
		"ok@example.com,Ok,Row,Student",
		",Missing,Email,Student",
		"bad@example.com,Bad,Role,Astronaut",
	}, "\n")

	report, err := svc.ImportPeople(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 1 {
		t.Fatalf("created = %d, want 1", report.Created)
	}
	if len(report.RowErrors) != 2 {
		t.Fatalf("row errors = %v, want 2 entries", report.RowErrors)
	}
}

func TestImportPeopleRequiresColumns(t *testing.T) {
	env := newTestEnv(t)
	svc := newCSVService(env)

	if _, err := svc.ImportPeople(context.Background(), strings.NewReader("first_name,last_name\nA,B")); err == nil {
		t.Fatal("expected error for missing required columns")
	}
}

func TestImportGuardiansLinksExistingPeople(t *testing.T) {
	env := newTestEnv(t)
	role := env.createRole(t, "Student")
	guardianRole := env.createRole(t, "Guardian")
	student := env.createPerson(t, env.createUser(t, "kid@example.com", "Kid", "A"), &role.ID)
	guardian := env.createPerson(t, env.createUser(t, "parent@example.com", "Parent", "A"), &guardianRole.ID)
	svc := newCSVService(env)

	csv := strings.Join([]string{
		"guardian_email,student_email,relationship,notes",
		"parent@example.com,kid@example.com,Mother,",
		"parent@example.com,nobody@example.com,Mother,",
	}, "\n")

	report, err := svc.ImportGuardians(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if report.Created != 1 || len(report.RowErrors) != 1 {
		t.Fatalf("report = %+v, want 1 created / 1 row error", report)
	}

	row, err := env.guardians.GetByPair(context.Background(), nil, guardian.ID, student.ID)
	if err != nil || row == nil {
		t.Fatalf("relationship not created: %v", err)
	}
	if row.Relationship != "Mother" {
		t.Fatalf("relationship = %q, want Mother", row.Relationship)
	}
}

func TestCredentialsCSV(t *testing.T) {
	env := newTestEnv(t)
	svc := newCSVService(env)

	body, err := svc.CredentialsCSV([]services.NewCredential{
		{Email: "a@example.com", Username: "a", Password: "Pw123!"},
	})
	if err != nil {
		t.Fatalf("credentials csv: %v", err)
	}
	got := string(body)
	if !strings.HasPrefix(got, "email,username,password\n") || !strings.Contains(got, "a@example.com,a,Pw123!") {
		t.Fatalf("unexpected csv: %q", got)
	}
}
