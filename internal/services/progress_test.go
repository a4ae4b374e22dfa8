package services_test

import (
	"context"
	"testing"

	"github.com/maplewood-labs/participate-backend/internal/repos"
	"github.com/maplewood-labs/participate-backend/internal/services"
)

func intPtr(v int) *int { return &v }

func TestProgressSaveIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewProgressService(env.log, repos.NewSlideshowProgressRepo(env.db, env.log))
	user := env.createUser(t, "a@example.com", "A", "One")
	ctx := context.Background()

	input := services.ProgressInput{
		SlideshowSlug: "orientation",
		CurrentH:      intPtr(3),
		CurrentV:      intPtr(1),
		MaxPercentage: intPtr(40),
	}
	first, err := svc.Save(ctx, user.ID, input)
	if err != nil {
		t.Fatalf("first save: %v", err)
	}
	second, err := svc.Save(ctx, user.ID, input)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}
	if *first != *second {
		t.Fatalf("repeated save changed state: %+v vs %+v", first, second)
	}
}

func TestProgressWatermarkNeverDecreases(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewProgressService(env.log, repos.NewSlideshowProgressRepo(env.db, env.log))
	user := env.createUser(t, "b@example.com", "B", "Two")
	ctx := context.Background()

	if _, err := svc.Save(ctx, user.ID, services.ProgressInput{
		SlideshowSlug: "orientation",
		MaxPercentage: intPtr(10),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	state, err := svc.Save(ctx, user.ID, services.ProgressInput{
		SlideshowSlug: "orientation",
		CurrentH:      intPtr(7),
		MaxPercentage: intPtr(5),
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if state.MaxPercentage != 10 {
		t.Fatalf("watermark dropped to %d, want 10", state.MaxPercentage)
	}
	if state.CurrentH != 7 {
		t.Fatalf("CurrentH = %d, want 7 (positions are last-write-wins)", state.CurrentH)
	}
}

func TestProgressMissingFieldsCoalesceToZero(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewProgressService(env.log, repos.NewSlideshowProgressRepo(env.db, env.log))
	user := env.createUser(t, "c@example.com", "C", "Three")
	ctx := context.Background()

	if _, err := svc.Save(ctx, user.ID, services.ProgressInput{
		SlideshowSlug: "orientation",
		CurrentH:      intPtr(4),
		CurrentV:      intPtr(2),
	}); err != nil {
		t.Fatalf("save: %v", err)
	}
	state, err := svc.Save(ctx, user.ID, services.ProgressInput{SlideshowSlug: "orientation"})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if state.CurrentH != 0 || state.CurrentV != 0 {
		t.Fatalf("omitted positions should store zero, got h=%d v=%d", state.CurrentH, state.CurrentV)
	}
}

func TestProgressGetReturnsZeroDefaults(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewProgressService(env.log, repos.NewSlideshowProgressRepo(env.db, env.log))
	user := env.createUser(t, "d@example.com", "D", "Four")

	state, err := svc.Get(context.Background(), user.ID, "never-opened")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if state.CurrentH != 0 || state.CurrentV != 0 || state.MaxPercentage != 0 || state.Completed {
		t.Fatalf("expected zero state, got %+v", state)
	}
}

func TestProgressSaveRequiresSlug(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewProgressService(env.log, repos.NewSlideshowProgressRepo(env.db, env.log))
	user := env.createUser(t, "e@example.com", "E", "Five")

	if _, err := svc.Save(context.Background(), user.ID, services.ProgressInput{}); err == nil {
		t.Fatal("expected error for missing slideshow_slug")
	}
}
