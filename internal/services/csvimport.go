package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
	"github.com/maplewood-labs/participate-backend/internal/utils"
)

var (
	peopleCSVHeader   = []string{"email", "first_name", "last_name", "role", "graduating_year", "is_public"}
	guardianCSVHeader = []string{"guardian_email", "student_email", "relationship", "notes"}
)

// NewCredential is a generated initial password for an account the import
// created. Exported once via the credentials CSV and never persisted in clear.
type NewCredential struct {
	Email    string
	Username string
	Password string
}

// CSVImportReport lists row outcomes. RowErrors holds one message per failed
// row; failures never abort the run.
type CSVImportReport struct {
	Created     int             `json:"created"`
	Updated     int             `json:"updated"`
	RowErrors   []string        `json:"row_errors,omitempty"`
	Credentials []NewCredential `json:"-"`
}

// CSVImportService bulk-loads people and guardian relationships from CSV and
// produces the matching templates plus the credentials export for accounts
// created during a run.
type CSVImportService interface {
	ImportPeople(ctx context.Context, r io.Reader) (*CSVImportReport, error)
	ImportGuardians(ctx context.Context, r io.Reader) (*CSVImportReport, error)
	PeopleTemplate() []byte
	GuardianTemplate() []byte
	CredentialsCSV(creds []NewCredential) ([]byte, error)
}

type csvImportService struct {
	db         *gorm.DB
	log        *logger.Logger
	userRepo   repos.UserRepo
	personRepo repos.PersonRepo
	roleRepo   repos.RoleRepo
	admin      AdminService
}

func NewCSVImportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	personRepo repos.PersonRepo,
	roleRepo repos.RoleRepo,
	admin AdminService,
) CSVImportService {
	return &csvImportService{
		db:         db,
		log:        baseLog.With("service", "CSVImportService"),
		userRepo:   userRepo,
		personRepo: personRepo,
		roleRepo:   roleRepo,
		admin:      admin,
	}
}

// ImportPeople reads rows with a required email and role. Unknown emails get a
// user account with a generated password; known emails update the existing
// person in place.
func (s *csvImportService) ImportPeople(ctx context.Context, r io.Reader) (*CSVImportReport, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "email", "role")
	if err != nil {
		return nil, err
	}

	report := &CSVImportReport{}
	for i, record := range records {
		line := i + 2
		if err := s.importPersonRow(ctx, cols, record, report); err != nil {
			report.RowErrors = append(report.RowErrors, fmt.Sprintf("row %d: %v", line, err))
			s.log.Warn("People import row failed", "row", line, "error", err)
		}
	}
	return report, nil
}

func (s *csvImportService) importPersonRow(ctx context.Context, cols map[string]int, record []string, report *CSVImportReport) error {
	email := strings.ToLower(strings.TrimSpace(field(record, cols, "email")))
	roleTitle := strings.TrimSpace(field(record, cols, "role"))
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if roleTitle == "" {
		return fmt.Errorf("role is required")
	}

	role, err := s.roleRepo.GetByTitleFold(ctx, nil, roleTitle)
	if err != nil {
		return fmt.Errorf("resolve role: %w", err)
	}
	if role == nil {
		return fmt.Errorf("unknown role %q", roleTitle)
	}

	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	isNew := user == nil
	if isNew {
		plain := utils.GeneratePassword(10)
		hashed, hErr := utils.HashPassword(plain)
		if hErr != nil {
			return fmt.Errorf("hash password: %w", hErr)
		}
		user = &types.User{
			Email:     email,
			Username:  usernameFromEmail(email),
			Password:  hashed,
			FirstName: strings.TrimSpace(field(record, cols, "first_name")),
			LastName:  strings.TrimSpace(field(record, cols, "last_name")),
			IsActive:  true,
		}
		if _, err := s.userRepo.Create(ctx, nil, user); err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		report.Credentials = append(report.Credentials, NewCredential{
			Email:    email,
			Username: user.Username,
			Password: plain,
		})
	} else {
		if first := strings.TrimSpace(field(record, cols, "first_name")); first != "" {
			user.FirstName = first
		}
		if last := strings.TrimSpace(field(record, cols, "last_name")); last != "" {
			user.LastName = last
		}
		if err := s.userRepo.Save(ctx, nil, user); err != nil {
			return fmt.Errorf("update user: %w", err)
		}
	}

	person, err := s.personRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return fmt.Errorf("lookup person: %w", err)
	}
	if person == nil {
		person = &types.Person{UserID: user.ID, IsPublic: true}
	}
	person.RoleID = &role.ID
	if raw := strings.TrimSpace(field(record, cols, "graduating_year")); raw != "" {
		year, cErr := strconv.Atoi(raw)
		if cErr != nil {
			return fmt.Errorf("invalid graduating_year %q", raw)
		}
		person.GraduatingYear = &year
	}
	if raw := strings.TrimSpace(field(record, cols, "is_public")); raw != "" {
		public, cErr := strconv.ParseBool(raw)
		if cErr != nil {
			return fmt.Errorf("invalid is_public %q", raw)
		}
		person.IsPublic = public
	}

	wasNewPerson := person.ID == uuid.Nil
	if err := s.admin.SavePerson(ctx, person); err != nil {
		return err
	}
	if isNew || wasNewPerson {
		report.Created++
	} else {
		report.Updated++
	}
	return nil
}

// ImportGuardians links existing people by email; both sides must already
// exist.
func (s *csvImportService) ImportGuardians(ctx context.Context, r io.Reader) (*CSVImportReport, error) {
	records, header, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	cols, err := columnIndex(header, "guardian_email", "student_email")
	if err != nil {
		return nil, err
	}

	report := &CSVImportReport{}
	for i, record := range records {
		line := i + 2
		if err := s.importGuardianRow(ctx, cols, record); err != nil {
			report.RowErrors = append(report.RowErrors, fmt.Sprintf("row %d: %v", line, err))
			s.log.Warn("Guardian import row failed", "row", line, "error", err)
			continue
		}
		report.Created++
	}
	return report, nil
}

func (s *csvImportService) importGuardianRow(ctx context.Context, cols map[string]int, record []string) error {
	guardian, err := s.personByEmail(ctx, field(record, cols, "guardian_email"))
	if err != nil {
		return err
	}
	student, err := s.personByEmail(ctx, field(record, cols, "student_email"))
	if err != nil {
		return err
	}
	_, err = s.admin.SaveGuardian(ctx, guardian.ID, student.ID,
		strings.TrimSpace(field(record, cols, "relationship")),
		strings.TrimSpace(field(record, cols, "notes")))
	return err
}

func (s *csvImportService) personByEmail(ctx context.Context, email string) (*types.Person, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user %s: %w", email, err)
	}
	if user == nil {
		return nil, fmt.Errorf("no account for %s", email)
	}
	person, err := s.personRepo.GetByUserID(ctx, nil, user.ID)
	if err != nil {
		return nil, fmt.Errorf("lookup person for %s: %w", email, err)
	}
	if person == nil {
		return nil, fmt.Errorf("no person record for %s", email)
	}
	return person, nil
}

func (s *csvImportService) PeopleTemplate() []byte {
	return templateCSV(peopleCSVHeader)
}

func (s *csvImportService) GuardianTemplate() []byte {
	return templateCSV(guardianCSVHeader)
}

func (s *csvImportService) CredentialsCSV(creds []NewCredential) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"email", "username", "password"}); err != nil {
		return nil, err
	}
	for _, c := range creds {
		if err := w.Write([]string{c.Email, c.Username, c.Password}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func readCSV(r io.Reader) ([][]string, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("csv is empty")
	}
	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return rows[1:], header, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[h] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func field(record []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func usernameFromEmail(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}

func templateCSV(header []string) []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write(header)
	w.Flush()
	return buf.Bytes()
}
