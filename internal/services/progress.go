package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/types"
)

// ProgressInput carries one save request. Pointer fields distinguish "absent"
// from zero; absent or null values coalesce to 0/false.
type ProgressInput struct {
	SlideshowSlug string
	CurrentH      *int
	CurrentV      *int
	MaxPercentage *int
	Completed     *bool
}

// ProgressState is the client-facing snapshot. A user with no record for a
// slideshow gets the zero state rather than an error.
type ProgressState struct {
	SlideshowSlug string `json:"slideshow_slug"`
	CurrentH      int    `json:"current_h"`
	CurrentV      int    `json:"current_v"`
	MaxPercentage int    `json:"max_percentage"`
	Completed     bool   `json:"completed"`
}

// ProgressService upserts and reads per-user slideshow progress. Positions are
// last-write-wins; the max percentage is a watermark that only moves up.
type ProgressService interface {
	Save(ctx context.Context, userID uuid.UUID, input ProgressInput) (*ProgressState, error)
	Get(ctx context.Context, userID uuid.UUID, slug string) (*ProgressState, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]ProgressState, error)
}

type progressService struct {
	log  *logger.Logger
	repo repos.SlideshowProgressRepo
}

func NewProgressService(baseLog *logger.Logger, repo repos.SlideshowProgressRepo) ProgressService {
	return &progressService{
		log:  baseLog.With("service", "ProgressService"),
		repo: repo,
	}
}

func (s *progressService) Save(ctx context.Context, userID uuid.UUID, input ProgressInput) (*ProgressState, error) {
	slug := strings.TrimSpace(input.SlideshowSlug)
	if slug == "" {
		return nil, fmt.Errorf("slideshow_slug is required")
	}

	row, err := s.repo.GetByUserAndSlug(ctx, nil, userID, slug)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	created := row == nil
	if created {
		row = &types.SlideshowProgress{
			UserID:        userID,
			SlideshowSlug: slug,
		}
	}

	row.CurrentH = coalesceInt(input.CurrentH)
	row.CurrentV = coalesceInt(input.CurrentV)
	if pct := coalesceInt(input.MaxPercentage); pct > row.MaxPercentage {
		row.MaxPercentage = pct
	}
	if input.Completed != nil && *input.Completed {
		row.Completed = true
	}

	if created {
		if _, err := s.repo.Create(ctx, nil, row); err != nil {
			return nil, fmt.Errorf("create progress: %w", err)
		}
	} else if err := s.repo.Save(ctx, nil, row); err != nil {
		return nil, fmt.Errorf("save progress: %w", err)
	}
	return stateOf(row), nil
}

func (s *progressService) Get(ctx context.Context, userID uuid.UUID, slug string) (*ProgressState, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("slideshow_slug is required")
	}
	row, err := s.repo.GetByUserAndSlug(ctx, nil, userID, slug)
	if err != nil {
		return nil, fmt.Errorf("load progress: %w", err)
	}
	if row == nil {
		return &ProgressState{SlideshowSlug: slug}, nil
	}
	return stateOf(row), nil
}

func (s *progressService) ListForUser(ctx context.Context, userID uuid.UUID) ([]ProgressState, error) {
	rows, err := s.repo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	states := make([]ProgressState, 0, len(rows))
	for _, row := range rows {
		states = append(states, *stateOf(row))
	}
	return states, nil
}

func stateOf(row *types.SlideshowProgress) *ProgressState {
	return &ProgressState{
		SlideshowSlug: row.SlideshowSlug,
		CurrentH:      row.CurrentH,
		CurrentV:      row.CurrentV,
		MaxPercentage: row.MaxPercentage,
		Completed:     row.Completed,
	}
}

func coalesceInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}
