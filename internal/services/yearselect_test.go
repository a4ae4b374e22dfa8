package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/maplewood-labs/participate-backend/internal/services"
)

func TestYearChoicesNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewYearSelectService(env.log, env.store, env.participations, 5)

	choices, err := svc.Choices(context.Background())
	if err != nil {
		t.Fatalf("choices: %v", err)
	}
	if len(choices) != 6 {
		t.Fatalf("expected 6 choices, got %d", len(choices))
	}
	current := time.Now().Year()
	if choices[0].Value != current {
		t.Fatalf("first choice = %d, want current year %d", choices[0].Value, current)
	}
	if choices[5].Value != current-5 {
		t.Fatalf("last choice = %d, want %d", choices[5].Value, current-5)
	}
	if choices[0].Label != fmt.Sprintf("%d-%d", current, current+1) {
		t.Fatalf("label = %q", choices[0].Label)
	}
}

func TestYearWidgetMarksSelectedYears(t *testing.T) {
	env := newTestEnv(t)
	svc := services.NewYearSelectService(env.log, env.store, env.participations, 5)
	ctx := context.Background()

	role := env.createRole(t, "Student")
	person := env.createPerson(t, env.createUser(t, "w@example.com", "W", "X"), &role.ID)
	group := env.createGroup(t, "Band")
	current := time.Now().Year()
	row := env.createParticipation(t, person, group, []int{current})

	html, err := svc.Widget(ctx, row.ID)
	if err != nil {
		t.Fatalf("widget: %v", err)
	}
	checked := fmt.Sprintf(`value="%d" checked`, current)
	if !strings.Contains(html, checked) {
		t.Fatalf("widget does not mark current year selected:\n%s", html)
	}
	unchecked := fmt.Sprintf(`value="%d" checked`, current-1)
	if strings.Contains(html, unchecked) {
		t.Fatalf("widget marks unselected year:\n%s", html)
	}
}
