package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/cache"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
)

// DisplayService maintains the denormalized display strings: the persisted
// per-person cached_str plus the cache-backed participation summaries and
// formatted school years. Recomputation happens on triggering events only;
// staleness in between is tolerated.
type DisplayService interface {
	RefreshPersonDisplay(ctx context.Context, personID uuid.UUID) (string, error)
	PersonParticipationSummary(ctx context.Context, personID uuid.UUID) (string, error)
	ParticipationYearsDisplay(ctx context.Context, participationID uuid.UUID) (string, error)
}

type displayService struct {
	log               *logger.Logger
	store             cache.Store
	personRepo        repos.PersonRepo
	participationRepo repos.ParticipationRepo
}

func NewDisplayService(
	baseLog *logger.Logger,
	store cache.Store,
	personRepo repos.PersonRepo,
	participationRepo repos.ParticipationRepo,
) DisplayService {
	return &displayService{
		log:               baseLog.With("service", "DisplayService"),
		store:             store,
		personRepo:        personRepo,
		participationRepo: participationRepo,
	}
}

// RefreshPersonDisplay recomputes "Name (Role[, Graduating: YYYY])" and
// persists it through a single-column update so the person save path is not
// re-entered.
func (s *displayService) RefreshPersonDisplay(ctx context.Context, personID uuid.UUID) (string, error) {
	person, err := s.personRepo.GetByID(ctx, nil, personID)
	if err != nil {
		return "", fmt.Errorf("load person: %w", err)
	}
	if person == nil {
		return "", nil
	}
	display := person.DisplayString()
	if err := s.personRepo.UpdateCachedStr(ctx, nil, personID, display); err != nil {
		return "", fmt.Errorf("update cached display: %w", err)
	}
	return display, nil
}

func (s *displayService) PersonParticipationSummary(ctx context.Context, personID uuid.UUID) (string, error) {
	key := cache.PersonParticipationSummaryKey(personID)
	if raw, ok := s.store.Get(ctx, key); ok {
		return string(raw), nil
	}

	rows, err := s.participationRepo.ListByPersonID(ctx, nil, personID)
	if err != nil {
		return "", fmt.Errorf("list participations: %w", err)
	}
	seen := make(map[string]struct{})
	names := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.Group == nil {
			continue
		}
		if _, dup := seen[row.Group.Name]; dup {
			continue
		}
		seen[row.Group.Name] = struct{}{}
		names = append(names, row.Group.Name)
	}
	sort.Strings(names)
	summary := strings.Join(names, ", ")
	if summary == "" {
		summary = "-"
	}

	s.store.Set(ctx, key, []byte(summary), cache.DisplayTTL)
	s.store.Track(ctx, cache.PersonOwner(personID), key)
	return summary, nil
}

func (s *displayService) ParticipationYearsDisplay(ctx context.Context, participationID uuid.UUID) (string, error) {
	key := cache.ParticipationYearsKey(participationID)
	if raw, ok := s.store.Get(ctx, key); ok {
		return string(raw), nil
	}

	row, err := s.participationRepo.GetByID(ctx, nil, participationID)
	if err != nil {
		return "", fmt.Errorf("load participation: %w", err)
	}
	if row == nil {
		return "", nil
	}
	display := row.FormatSchoolYears()

	s.store.Set(ctx, key, []byte(display), cache.DisplayTTL)
	s.store.Track(ctx, cache.ParticipationOwner(participationID), key)
	return display, nil
}
