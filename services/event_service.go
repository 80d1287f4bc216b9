package services

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/pskpp/festival/brackets"
	"github.com/pskpp/festival/models"
	"github.com/pskpp/festival/repositories"
	"github.com/pskpp/festival/utils"
)

// FilterAll is the filter value that disables category or status filtering.
const FilterAll = "Semua"

// BracketNotifier is told about every change of an event's bracket.
// *brackets.Hub implements it.
type BracketNotifier interface {
	NotifyBracketUpdated(eventID string, layout *brackets.Layout)
}

type EventService interface {
	List(ctx context.Context, filter EventFilter) ([]models.Event, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, input EventInput) (*models.Event, error)
	Update(ctx context.Context, id string, input EventInput) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	ToggleFeatured(ctx context.Context, id string) (*models.Event, error)
	Facets(ctx context.Context) (*EventFacets, error)

	GetBracket(ctx context.Context, id string) (models.Bracket, error)
	BracketLayout(ctx context.Context, id string) (*brackets.Layout, error)
	ReplaceBracket(ctx context.Context, id string, bracket models.Bracket) (*brackets.Layout, error)
	GenerateBracket(ctx context.Context, id string, entrants []string) (*brackets.Layout, error)
	AddRound(ctx context.Context, id string, title string) (*brackets.Layout, error)
	RemoveRound(ctx context.Context, id string, round int) (*brackets.Layout, error)
	SetRoundTitle(ctx context.Context, id string, round int, title string) (*brackets.Layout, error)
	AddMatch(ctx context.Context, id string, round int) (*brackets.Layout, error)
	RemoveMatch(ctx context.Context, id string, round, match int) (*brackets.Layout, error)
	UpdateParticipant(ctx context.Context, id string, round, match, participant int, input ParticipantUpdate) (*brackets.Layout, error)
}

// EventFilter narrows List. Empty fields match everything. From and To are
// YYYY-MM-DD; an event matches when its span overlaps [From, To].
type EventFilter struct {
	Query        string
	Categories   []string
	GameStatuses []string
	From         string
	To           string
}

type EventInput struct {
	ImageURL     string                   `json:"image_url"`
	Title        string                   `json:"title"`
	Category     string                   `json:"category"`
	CategoryIcon models.EventCategoryIcon `json:"category_icon,omitempty"`
	GameStatus   string                   `json:"game_status,omitempty"`
	Date         string                   `json:"date"`
	StartTime    string                   `json:"start_time,omitempty"`
	EndDate      string                   `json:"end_date,omitempty"`
	EndTime      string                   `json:"end_time,omitempty"`
	Location     string                   `json:"location"`
	Description  string                   `json:"description,omitempty"`
	Schedule     []models.ScheduleItem    `json:"schedule,omitempty"`
	IsFeatured   bool                     `json:"is_featured"`
	// nil keeps the stored bracket on update.
	BracketData models.Bracket `json:"bracket_data,omitempty"`
}

// ParticipantUpdate edits one side of a match. Nil fields are left as they are.
type ParticipantUpdate struct {
	Name       *string `json:"name,omitempty"`
	Score      *int    `json:"score,omitempty"`
	ClearScore bool    `json:"clear_score,omitempty"`
}

type EventFacets struct {
	Categories   []string `json:"categories"`
	GameStatuses []string `json:"game_statuses"`
}

type eventService struct {
	events    *repositories.EventRepository
	generator brackets.BracketGenerator
	notifier  BracketNotifier
	logger    *slog.Logger
	now       func() time.Time
}

func NewEventService(events *repositories.EventRepository, notifier BracketNotifier, logger *slog.Logger) EventService {
	if logger == nil {
		logger = slog.Default()
	}
	return &eventService{
		events:    events,
		generator: brackets.NewSingleEliminationGenerator(),
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

func (s *eventService) List(ctx context.Context, filter EventFilter) ([]models.Event, error) {
	from, err := parseFilterDate(filter.From)
	if err != nil {
		return nil, err
	}
	to, err := parseFilterDate(filter.To)
	if err != nil {
		return nil, err
	}

	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	result := make([]models.Event, 0, len(events))
	for _, e := range events {
		if query != "" && !strings.Contains(strings.ToLower(e.Title), query) {
			continue
		}
		if !matchesSet(filter.Categories, e.Category) || !matchesSet(filter.GameStatuses, e.GameStatus) {
			continue
		}
		if !overlaps(e, from, to) {
			continue
		}
		result = append(result, e)
	}

	// Избранные сначала, остальные в сохранённом порядке.
	slices.SortStableFunc(result, func(a, b models.Event) int {
		switch {
		case a.IsFeatured && !b.IsFeatured:
			return -1
		case !a.IsFeatured && b.IsFeatured:
			return 1
		}
		return 0
	})
	return result, nil
}

func parseFilterDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %w: %q", ErrValidationFailed, ErrInvalidDate, s)
	}
	return t, nil
}

func matchesSet(set []string, value string) bool {
	if len(set) == 0 || slices.Contains(set, FilterAll) {
		return true
	}
	return value != "" && slices.Contains(set, value)
}

// overlaps reports whether the event span meets [from, to]. Events with an
// unparsable date are never filtered out by date.
func overlaps(e models.Event, from, to time.Time) bool {
	if from.IsZero() && to.IsZero() {
		return true
	}
	start, end, ok := e.Span()
	if !ok {
		return true
	}
	if !from.IsZero() && end.Before(from) {
		return false
	}
	if !to.IsZero() && start.After(to) {
		return false
	}
	return true
}

func (s *eventService) Get(ctx context.Context, id string) (*models.Event, error) {
	e, err := s.events.Get(ctx, id)
	if err != nil {
		return nil, handleRepositoryError(err, ErrEventNotFound)
	}
	return e, nil
}

func validateEventInput(input *EventInput) error {
	input.Title = strings.TrimSpace(input.Title)
	var e models.Event
	input.apply(&e)
	return invalid(e.Validate())
}

func (input EventInput) apply(e *models.Event) {
	e.ImageURL = input.ImageURL
	e.Title = input.Title
	e.Category = input.Category
	e.CategoryIcon = input.CategoryIcon
	e.GameStatus = input.GameStatus
	e.Date = input.Date
	e.StartTime = input.StartTime
	e.EndDate = input.EndDate
	e.EndTime = input.EndTime
	e.Location = input.Location
	e.Description = input.Description
	e.Schedule = input.Schedule
	e.IsFeatured = input.IsFeatured
	if input.BracketData != nil {
		e.BracketData = input.BracketData
	}
}

func (s *eventService) stamp() *time.Time {
	now := s.now().UTC()
	return &now
}

// Create stores a new event at the top of the list. Its id is the slug of the
// title followed by the creation time in milliseconds.
func (s *eventService) Create(ctx context.Context, input EventInput) (*models.Event, error) {
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}

	now := s.stamp()
	slug := utils.Slugify(input.Title)
	if slug == "" {
		slug = "acara"
	}
	event := models.Event{ID: fmt.Sprintf("%s-%d", slug, now.UnixMilli()), LastUpdated: now}
	input.apply(&event)

	if err := s.events.Create(ctx, event, true); err != nil {
		return nil, handleRepositoryError(err, ErrEventNotFound)
	}
	s.logger.Info("event created", slog.String("event_id", event.ID))
	return &event, nil
}

func (s *eventService) Update(ctx context.Context, id string, input EventInput) (*models.Event, error) {
	if err := validateEventInput(&input); err != nil {
		return nil, err
	}

	var updated models.Event
	err := s.events.Mutate(ctx, id, func(e *models.Event) error {
		input.apply(e)
		e.LastUpdated = s.stamp()
		updated = *e
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, ErrEventNotFound)
	}
	if input.BracketData != nil {
		s.notify(id, updated.BracketData)
	}
	return &updated, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.events.Delete(ctx, id); err != nil {
		return handleRepositoryError(err, ErrEventNotFound)
	}
	s.logger.Info("event deleted", slog.String("event_id", id))
	return nil
}

func (s *eventService) ToggleFeatured(ctx context.Context, id string) (*models.Event, error) {
	var updated models.Event
	err := s.events.Mutate(ctx, id, func(e *models.Event) error {
		e.IsFeatured = !e.IsFeatured
		updated = *e
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, ErrEventNotFound)
	}
	return &updated, nil
}

// Facets returns the distinct categories and game statuses, sorted.
func (s *eventService) Facets(ctx context.Context) (*EventFacets, error) {
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	facets := &EventFacets{Categories: []string{}, GameStatuses: []string{}}
	for _, e := range events {
		if e.Category != "" && !slices.Contains(facets.Categories, e.Category) {
			facets.Categories = append(facets.Categories, e.Category)
		}
		if e.GameStatus != "" && !slices.Contains(facets.GameStatuses, e.GameStatus) {
			facets.GameStatuses = append(facets.GameStatuses, e.GameStatus)
		}
	}
	slices.SortFunc(facets.Categories, cmp.Compare[string])
	slices.SortFunc(facets.GameStatuses, cmp.Compare[string])
	return facets, nil
}

func (s *eventService) GetBracket(ctx context.Context, id string) (models.Bracket, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.BracketData == nil {
		return models.Bracket{}, nil
	}
	return e.BracketData, nil
}

// BracketLayout returns nil when the event has no rounds.
func (s *eventService) BracketLayout(ctx context.Context, id string) (*brackets.Layout, error) {
	b, err := s.GetBracket(ctx, id)
	if err != nil {
		return nil, err
	}
	return brackets.Compute(b), nil
}

// editBracket runs fn on the stored bracket, saves the event and pushes the
// new layout to subscribers.
func (s *eventService) editBracket(ctx context.Context, id string, fn func(b *models.Bracket) error) (*brackets.Layout, error) {
	var bracket models.Bracket
	err := s.events.Mutate(ctx, id, func(e *models.Event) error {
		b := e.BracketData.Clone()
		if err := fn(&b); err != nil {
			return err
		}
		e.BracketData = b
		e.LastUpdated = s.stamp()
		bracket = b
		return nil
	})
	if err != nil {
		return nil, handleRepositoryError(err, ErrEventNotFound)
	}
	return s.notify(id, bracket), nil
}

func (s *eventService) notify(id string, bracket models.Bracket) *brackets.Layout {
	layout := brackets.Compute(bracket)
	if layout != nil && len(layout.Warnings) > 0 {
		s.logger.Warn("bracket rounds do not halve", slog.String("event_id", id), slog.Any("warnings", layout.Warnings))
	}
	if s.notifier != nil {
		s.notifier.NotifyBracketUpdated(id, layout)
	}
	return layout
}

func (s *eventService) ReplaceBracket(ctx context.Context, id string, bracket models.Bracket) (*brackets.Layout, error) {
	if bracket == nil {
		bracket = models.Bracket{}
	}
	return s.editBracket(ctx, id, func(b *models.Bracket) error {
		*b = bracket.Clone()
		return nil
	})
}

func (s *eventService) GenerateBracket(ctx context.Context, id string, entrants []string) (*brackets.Layout, error) {
	generated, err := s.generator.GenerateBracket(ctx, brackets.GenerateBracketParams{Entrants: entrants})
	if err != nil {
		if errors.Is(err, brackets.ErrNotEnoughEntrants) {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		return nil, fmt.Errorf("failed to generate bracket with %s: %w", s.generator.GetName(), err)
	}
	return s.ReplaceBracket(ctx, id, generated)
}

func (s *eventService) AddRound(ctx context.Context, id string, title string) (*brackets.Layout, error) {
	return s.editBracket(ctx, id, func(b *models.Bracket) error {
		b.AddRound(strings.TrimSpace(title))
		return nil
	})
}

func (s *eventService) RemoveRound(ctx context.Context, id string, round int) (*brackets.Layout, error) {
	return s.editBracket(ctx, id, func(b *models.Bracket) error {
		return b.RemoveRound(round)
	})
}

func (s *eventService) SetRoundTitle(ctx context.Context, id string, round int, title string) (*brackets.Layout, error) {
	return s.editBracket(ctx, id, func(b *models.Bracket) error {
		return b.SetRoundTitle(round, title)
	})
}

func (s *eventService) AddMatch(ctx context.Context, id string, round int) (*brackets.Layout, error) {
	return s.editBracket(ctx, id, func(b *models.Bracket) error {
		_, err := b.AddMatch(round)
		return err
	})
}

func (s *eventService) RemoveMatch(ctx context.Context, id string, round, match int) (*brackets.Layout, error) {
	return s.editBracket(ctx, id, func(b *models.Bracket) error {
		return b.RemoveMatch(round, match)
	})
}

func (s *eventService) UpdateParticipant(ctx context.Context, id string, round, match, participant int, input ParticipantUpdate) (*brackets.Layout, error) {
	if input.ClearScore && input.Score != nil {
		return nil, fmt.Errorf("%w: score and clear_score are mutually exclusive", ErrValidationFailed)
	}
	if input.Name == nil && input.Score == nil && !input.ClearScore {
		return nil, fmt.Errorf("%w: nothing to update", ErrValidationFailed)
	}
	return s.editBracket(ctx, id, func(b *models.Bracket) error {
		if input.Name != nil {
			if err := b.SetParticipantName(round, match, participant, *input.Name); err != nil {
				return err
			}
		}
		switch {
		case input.ClearScore:
			return b.SetParticipantScore(round, match, participant, nil)
		case input.Score != nil:
			return b.SetParticipantScore(round, match, participant, input.Score)
		}
		return nil
	})
}
