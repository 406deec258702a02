package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/mealhistory"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
)

// HistoryService holds the per-day meal history view and its expanded day.
type HistoryService struct {
	meals  MealService
	logger logging.Logger
	now    func() time.Time

	mu       sync.Mutex
	buckets  []models.DayBucket
	expander *mealhistory.Expander
}

func NewHistoryService(meals MealService, logger logging.Logger) *HistoryService {
	return &HistoryService{
		meals:    meals,
		logger:   logger.With("component", "history"),
		now:      time.Now,
		expander: mealhistory.NewExpander(0),
	}
}

// Load fetches every meal and rebuilds the buckets. The most recent day
// starts expanded.
func (h *HistoryService) Load(ctx context.Context) ([]models.DayBucket, error) {
	records, err := h.meals.List(ctx, "")
	if err != nil {
		return nil, err
	}
	buckets := mealhistory.Aggregate(records, h.now())

	h.mu.Lock()
	defer h.mu.Unlock()
	h.buckets = buckets
	h.expander.Reset(len(buckets))
	h.logger.Debug(ctx, "history loaded", "meals", len(records), "days", len(buckets))
	return slices.Clone(h.buckets), nil
}

// Buckets returns the last loaded view.
func (h *HistoryService) Buckets() []models.DayBucket {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.buckets)
}

// Rename renames the meal on the backend and patches the loaded view
// without a re-fetch.
func (h *HistoryService) Rename(ctx context.Context, id, name string) error {
	name = strings.TrimSpace(name)
	if _, err := h.meals.Rename(ctx, id, name); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !mealhistory.RenameMealLocally(h.buckets, id, name) {
		h.logger.Debug(ctx, "renamed meal not in loaded history", "meal_id", id)
	}
	return nil
}

// Delete removes the meal on the backend and reloads the view, since day
// totals change.
func (h *HistoryService) Delete(ctx context.Context, id string) ([]models.DayBucket, error) {
	if err := h.meals.Delete(ctx, id); err != nil {
		return nil, err
	}
	return h.Load(ctx)
}

// Toggle expands or collapses day i of the loaded view.
func (h *HistoryService) Toggle(i int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expander.Toggle(i)
}

func (h *HistoryService) IsExpanded(i int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.expander.IsExpanded(i)
}
