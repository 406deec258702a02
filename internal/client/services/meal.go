package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nutritrack/internal/client/client"
	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"github.com/dmitrijs2005/nutritrack/internal/timex"
)

var (
	ErrEmptyText = errors.New("text must not be empty")
	ErrEmptyID   = errors.New("meal id must not be empty")
)

// MealService wraps the meal endpoints with local argument checks.
type MealService interface {
	Create(ctx context.Context, description, name string) (*models.MealResult, error)
	Today(ctx context.Context) (*models.TodaySummary, error)
	// List returns every meal, or those of date (YYYY-MM-DD) when set.
	List(ctx context.Context, date string) ([]models.MealRecord, error)
	Rename(ctx context.Context, id, name string) (*models.MealResult, error)
	Update(ctx context.Context, id, description, name string) (*models.MealResult, error)
	Delete(ctx context.Context, id string) error
}

type mealService struct {
	client client.Client
	logger logging.Logger
}

func NewMealService(c client.Client, logger logging.Logger) MealService {
	return &mealService{client: c, logger: logger.With("component", "meals")}
}

func (m *mealService) Create(ctx context.Context, description, name string) (*models.MealResult, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyText
	}
	res, err := m.client.CreateMeal(ctx, description, strings.TrimSpace(name))
	if err != nil {
		m.logger.Warn(ctx, "create meal failed", "err", err)
		return nil, fmt.Errorf("create meal error: %w", err)
	}
	return res, nil
}

func (m *mealService) Today(ctx context.Context) (*models.TodaySummary, error) {
	s, err := m.client.TodayMeals(ctx)
	if err != nil {
		return nil, fmt.Errorf("today meals error: %w", err)
	}
	return s, nil
}

func (m *mealService) List(ctx context.Context, date string) ([]models.MealRecord, error) {
	if date != "" && !timex.IsDateKey(date) {
		return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
	}
	meals, err := m.client.ListMeals(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("list meals error: %w", err)
	}
	return meals, nil
}

func (m *mealService) Rename(ctx context.Context, id, name string) (*models.MealResult, error) {
	name = strings.TrimSpace(name)
	switch {
	case id == "":
		return nil, ErrEmptyID
	case name == "":
		return nil, ErrEmptyText
	}
	res, err := m.client.RenameMeal(ctx, id, name)
	if err != nil {
		m.logger.Warn(ctx, "rename meal failed", "meal_id", id, "err", err)
		return nil, fmt.Errorf("rename meal error: %w", err)
	}
	return res, nil
}

func (m *mealService) Update(ctx context.Context, id, description, name string) (*models.MealResult, error) {
	description = strings.TrimSpace(description)
	switch {
	case id == "":
		return nil, ErrEmptyID
	case description == "":
		return nil, ErrEmptyText
	}
	res, err := m.client.UpdateMeal(ctx, id, description, strings.TrimSpace(name))
	if err != nil {
		m.logger.Warn(ctx, "update meal failed", "meal_id", id, "err", err)
		return nil, fmt.Errorf("update meal error: %w", err)
	}
	return res, nil
}

func (m *mealService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := m.client.DeleteMeal(ctx, id); err != nil {
		m.logger.Warn(ctx, "delete meal failed", "meal_id", id, "err", err)
		return fmt.Errorf("delete meal error: %w", err)
	}
	return nil
}
