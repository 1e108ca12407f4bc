// Package planner holds the route planning page: the trip form, the generated
// plan variants and the edits made to them.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/anonto42/travel-match/gateway/internal/apiclient"
	"github.com/anonto42/travel-match/gateway/internal/models"
)

var (
	ErrUnknownVariant = errors.New("unknown plan variant")
	ErrUnknownDay     = errors.New("unknown plan day")
	ErrOutOfRange     = errors.New("item index out of range")
)

type Interests struct {
	Nature   int `json:"nature" validate:"min=0,max=100"`
	Culture  int `json:"culture" validate:"min=0,max=100"`
	Food     int `json:"food" validate:"min=0,max=100"`
	Shopping int `json:"shopping" validate:"min=0,max=100"`
	Relax    int `json:"relax" validate:"min=0,max=100"`
}

// Form mirrors the planning form. Transport is public, car or mixed; pace is
// easy, medium or hard.
type Form struct {
	RouteName    string    `json:"routeName" validate:"max=64"`
	StartCity    string    `json:"startCity" validate:"max=64"`
	StartDate    string    `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate      string    `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	PeopleCount  int       `json:"peopleCount" validate:"min=1,max=99"`
	Destinations []string  `json:"destinations" validate:"dive,max=64"`
	Budget       float64   `json:"budget" validate:"gte=0"`
	Transport    string    `json:"transportType" validate:"oneof=public car mixed"`
	Pace         string    `json:"pace" validate:"oneof=easy medium hard"`
	Interests    Interests `json:"interests"`
}

func defaultForm(now time.Time) Form {
	return Form{
		RouteName:    "My trip",
		StartDate:    now.Format(dateLayout),
		EndDate:      now.AddDate(0, 0, 4).Format(dateLayout),
		PeopleCount:  2,
		Destinations: []string{"Beijing", "Hangzhou"},
		Budget:       8000,
		Transport:    "mixed",
		Pace:         "medium",
		Interests:    Interests{Nature: 60, Culture: 80, Food: 70, Shopping: 40, Relax: 50},
	}
}

// BuildAIRequest converts the form into the upstream generation request.
func BuildAIRequest(f Form) (models.AiGenerateRouteRequest, error) {
	weights, err := json.Marshal(f.Interests)
	if err != nil {
		return models.AiGenerateRouteRequest{}, fmt.Errorf("encode interests: %w", err)
	}
	transport := f.Transport
	if transport == "car" {
		transport = "drive"
	}
	intensity := "moderate"
	switch f.Pace {
	case "easy":
		intensity = "relaxed"
	case "hard":
		intensity = "high"
	}
	budget := f.Budget
	return models.AiGenerateRouteRequest{
		DepartureCity:       f.StartCity,
		Destinations:        append([]string{}, f.Destinations...),
		StartDate:           f.StartDate,
		EndDate:             f.EndDate,
		TotalBudget:         &budget,
		PeopleCount:         f.PeopleCount,
		Transport:           transport,
		Intensity:           intensity,
		InterestWeightsJSON: string(weights),
	}, nil
}

type API interface {
	GenerateRoute(ctx context.Context, body models.AiGenerateRouteRequest) apiclient.Result[models.AiGenerateRouteResponse]
}

type BudgetSummary struct {
	PerDay    int     `json:"perDay"`
	PerPerson int     `json:"perPerson"`
	Total     float64 `json:"total"`
}

type Store struct {
	api API
	now func() time.Time

	mu       sync.RWMutex
	form     Form
	variants []models.AiPlanVariant
	activeID string
}

func New(api API) *Store {
	return newStore(api, time.Now)
}

func newStore(api API, now func() time.Time) *Store {
	return &Store{
		api:      api,
		now:      now,
		form:     defaultForm(now()),
		variants: emptyVariants(),
		activeID: "a",
	}
}

func (s *Store) Form() Form {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f := s.form
	f.Destinations = append([]string{}, f.Destinations...)
	return f
}

// SetForm replaces the form. Destinations are trimmed and de-duplicated.
func (s *Store) SetForm(f Form) {
	dests := f.Destinations
	f.Destinations = make([]string, 0, len(dests))
	for _, d := range dests {
		f.Destinations = appendDestination(f.Destinations, d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = f
}

func (s *Store) SetRouteName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.RouteName = name
}

func appendDestination(list []string, d string) []string {
	d = strings.TrimSpace(d)
	if d == "" {
		return list
	}
	for _, x := range list {
		if x == d {
			return list
		}
	}
	return append(list, d)
}

func (s *Store) AddDestination(d string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form.Destinations = appendDestination(s.form.Destinations, d)
}

func (s *Store) RemoveDestination(d string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.form.Destinations))
	for _, x := range s.form.Destinations {
		if x != d {
			out = append(out, x)
		}
	}
	s.form.Destinations = out
}

// Generate rebuilds the three variants locally from the form's start date,
// today when the date is missing or unreadable.
func (s *Store) Generate() []models.AiPlanVariant {
	s.mu.Lock()
	defer s.mu.Unlock()
	start, err := time.Parse(dateLayout, s.form.StartDate)
	if err != nil {
		now := s.now()
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	}
	s.variants = mockVariants(start)
	if s.activeID == "" {
		s.activeID = "a"
	}
	return cloneVariants(s.variants)
}

// GenerateAI asks the upstream planner. State is only replaced on success.
func (s *Store) GenerateAI(ctx context.Context) ([]models.AiPlanVariant, error) {
	req, err := BuildAIRequest(s.Form())
	if err != nil {
		return nil, err
	}
	resp, err := s.api.GenerateRoute(ctx, req).Get()
	if err != nil {
		return nil, fmt.Errorf("generate route: %w", err)
	}
	if len(resp.Variants) == 0 {
		return nil, fmt.Errorf("generate route: no variants returned")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.variants = cloneVariants(resp.Variants)
	if s.variantLocked(s.activeID) == nil {
		s.activeID = s.variants[0].ID
	}
	return cloneVariants(s.variants), nil
}

func (s *Store) SetActiveVariant(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.variantLocked(id) == nil {
		return fmt.Errorf("%w: %q", ErrUnknownVariant, id)
	}
	s.activeID = id
	return nil
}

func (s *Store) variantLocked(id string) *models.AiPlanVariant {
	for i := range s.variants {
		if s.variants[i].ID == id {
			return &s.variants[i]
		}
	}
	return nil
}

// activeLocked falls back to the first variant when the active id is stale.
func (s *Store) activeLocked() *models.AiPlanVariant {
	if v := s.variantLocked(s.activeID); v != nil {
		return v
	}
	if len(s.variants) == 0 {
		return nil
	}
	return &s.variants[0]
}

func (s *Store) dayLocked(dayIndex int) (*models.AiDayPlan, error) {
	v := s.activeLocked()
	if v == nil {
		return nil, ErrUnknownVariant
	}
	for i := range v.Days {
		if v.Days[i].DayIndex == dayIndex {
			return &v.Days[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownDay, dayIndex)
}

// ReorderDayItems moves one stop of the active variant's day and recomputes
// the day's duration.
func (s *Store) ReorderDayItems(dayIndex, from, to int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, err := s.dayLocked(dayIndex)
	if err != nil {
		return err
	}
	n := len(day.Items)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("%w: %d -> %d of %d", ErrOutOfRange, from, to, n)
	}
	if from == to {
		return nil
	}
	items := append([]models.AiPoiItem{}, day.Items...)
	moved := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]models.AiPoiItem{moved}, items[to:]...)...)
	day.Items = items
	day.DurationMinutes = dayDuration(items)
	return nil
}

// RemoveDayItem drops a stop by id. It reports whether anything was removed.
func (s *Store) RemoveDayItem(dayIndex int, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	day, err := s.dayLocked(dayIndex)
	if err != nil {
		return false, err
	}
	items := make([]models.AiPoiItem, 0, len(day.Items))
	for _, it := range day.Items {
		if it.ID != itemID {
			items = append(items, it)
		}
	}
	removed := len(items) != len(day.Items)
	day.Items = items
	day.DurationMinutes = dayDuration(items)
	return removed, nil
}

func (s *Store) budgetLocked() BudgetSummary {
	out := BudgetSummary{Total: s.form.Budget}
	v := s.activeLocked()
	if v == nil || len(v.Days) == 0 {
		return out
	}
	out.PerDay = int(math.Round(s.form.Budget / float64(len(v.Days))))
	if s.form.PeopleCount > 0 {
		out.PerPerson = int(math.Round(s.form.Budget / float64(s.form.PeopleCount)))
	}
	return out
}

func (s *Store) Budget() BudgetSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.budgetLocked()
}

type Snapshot struct {
	Form            Form                   `json:"form"`
	Variants        []models.AiPlanVariant `json:"variants"`
	ActiveVariantID string                 `json:"activeVariantId"`
	ActiveDays      []models.AiDayPlan     `json:"activeDays"`
	Budget          BudgetSummary          `json:"budget"`
}

func (s *Store) Snapshot() Snapshot {
	form := s.Form()
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		Form:            form,
		Variants:        cloneVariants(s.variants),
		ActiveVariantID: s.activeID,
		ActiveDays:      []models.AiDayPlan{},
		Budget:          s.budgetLocked(),
	}
	if v := s.activeLocked(); v != nil {
		snap.ActiveDays = cloneVariants([]models.AiPlanVariant{*v})[0].Days
	}
	return snap
}

func cloneVariants(in []models.AiPlanVariant) []models.AiPlanVariant {
	out := make([]models.AiPlanVariant, len(in))
	for i, v := range in {
		days := make([]models.AiDayPlan, len(v.Days))
		for j, d := range v.Days {
			d.Items = append([]models.AiPoiItem{}, d.Items...)
			days[j] = d
		}
		v.Days = days
		out[i] = v
	}
	return out
}
