package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/maplewood-labs/participate-backend/internal/cache"
	"github.com/maplewood-labs/participate-backend/internal/logger"
	"github.com/maplewood-labs/participate-backend/internal/repos"
)

// DefaultYearChoiceSpan is how many school years back the selector offers in
// addition to the current one.
const DefaultYearChoiceSpan = 5

// YearChoice is a selectable school year starting in Value.
type YearChoice struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

var yearWidgetTmpl = template.Must(template.New("year_widget").Parse(`<div class="year-select">
{{- range .Choices }}
<label><input type="checkbox" name="years" value="{{ .Value }}"{{ if index $.Selected .Value }} checked{{ end }}> {{ .Label }}</label>
{{- end }}
</div>`))

// YearSelectService produces the school-year choice list and the rendered
// multi-select widget for a participation's years. Choices change once a year,
// so they are cached for a long time; the widget cache is keyed by the
// serialized selection so every distinct selection renders once.
type YearSelectService interface {
	Choices(ctx context.Context) ([]YearChoice, error)
	Widget(ctx context.Context, participationID uuid.UUID) (string, error)
}

type yearSelectService struct {
	log               *logger.Logger
	store             cache.Store
	participationRepo repos.ParticipationRepo
	span              int
	now               func() time.Time
}

func NewYearSelectService(baseLog *logger.Logger, store cache.Store, participationRepo repos.ParticipationRepo, span int) YearSelectService {
	if span <= 0 {
		span = DefaultYearChoiceSpan
	}
	return &yearSelectService{
		log:               baseLog.With("service", "YearSelectService"),
		store:             store,
		participationRepo: participationRepo,
		span:              span,
		now:               time.Now,
	}
}

// Choices lists the current school year and the span before it, newest first.
func (s *yearSelectService) Choices(ctx context.Context) ([]YearChoice, error) {
	key := cache.YearChoicesKey()
	var cached []YearChoice
	if cache.GetJSON(ctx, s.store, key, &cached) {
		return cached, nil
	}

	current := s.now().Year()
	choices := make([]YearChoice, 0, s.span+1)
	for year := current; year >= current-s.span; year-- {
		choices = append(choices, YearChoice{
			Value: year,
			Label: fmt.Sprintf("%d-%d", year, year+1),
		})
	}

	cache.SetJSON(ctx, s.store, key, choices, cache.YearChoicesTTL)
	return choices, nil
}

func (s *yearSelectService) Widget(ctx context.Context, participationID uuid.UUID) (string, error) {
	row, err := s.participationRepo.GetByID(ctx, nil, participationID)
	if err != nil {
		return "", fmt.Errorf("load participation: %w", err)
	}
	if row == nil {
		return "", fmt.Errorf("participation %s not found", participationID)
	}

	serialized := serializeYears(row.Years)
	key := cache.YearWidgetKey(participationID, serialized)
	if raw, ok := s.store.Get(ctx, key); ok {
		return string(raw), nil
	}

	choices, err := s.Choices(ctx)
	if err != nil {
		return "", err
	}
	selected := make(map[int]bool, len(row.Years))
	for _, year := range row.Years {
		selected[year] = true
	}

	var buf bytes.Buffer
	if err := yearWidgetTmpl.Execute(&buf, map[string]any{
		"Choices":  choices,
		"Selected": selected,
	}); err != nil {
		return "", fmt.Errorf("render year widget: %w", err)
	}
	html := buf.String()

	s.store.Set(ctx, key, []byte(html), cache.DisplayTTL)
	s.store.Track(ctx, cache.ParticipationOwner(participationID), key)
	return html, nil
}

func serializeYears(years []int) string {
	parts := make([]string, 0, len(years))
	for _, y := range years {
		parts = append(parts, strconv.Itoa(y))
	}
	return strings.Join(parts, ",")
}
