package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/logging"
	"golang.org/x/sync/errgroup"
)

// Band is the color of the calorie progress bar.
type Band string

const (
	BandRed    Band = "red"
	BandYellow Band = "yellow"
	BandGreen  Band = "green"
)

// Progress is consumption against a goal, as a percentage capped at 100.
type Progress struct {
	Consumed float64
	Goal     float64
	Percent  float64
}

func NewProgress(consumed, goal float64) Progress {
	return Progress{Consumed: consumed, Goal: goal, Percent: Percent(consumed, goal)}
}

// Percent returns consumed as a share of goal, capped at 100. A goal of zero
// yields zero.
func Percent(consumed, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return min(consumed/goal*100, 100)
}

// CalorieBand maps a calorie percentage to the progress bar color.
func CalorieBand(percent float64) Band {
	switch {
	case percent <= 50:
		return BandRed
	case percent <= 85:
		return BandYellow
	}
	return BandGreen
}

// Dashboard is today's overview. Profile and meals load independently;
// a failed half leaves its error set and its fields zero.
type Dashboard struct {
	UserName  string
	Objective string

	Calories Progress
	Protein  Progress
	Carbs    Progress
	Fat      Progress
	Band     Band

	Meals []models.MealRecord

	ProfileErr error
	MealsErr   error
}

// HasMacros reports whether any macro was consumed today.
func (d *Dashboard) HasMacros() bool {
	return d.Protein.Consumed > 0 || d.Carbs.Consumed > 0 || d.Fat.Consumed > 0
}

type DashboardService struct {
	auth   AuthService
	meals  MealService
	logger logging.Logger
}

func NewDashboardService(auth AuthService, meals MealService, logger logging.Logger) *DashboardService {
	return &DashboardService{auth: auth, meals: meals, logger: logger.With("component", "dashboard")}
}

// Load fetches the profile and today's meals concurrently. It fails only
// when the session is rejected or both halves fail.
func (s *DashboardService) Load(ctx context.Context) (*Dashboard, error) {
	var (
		profile *models.Profile
		today   *models.TodaySummary
		d       Dashboard
	)

	// Only an expired session fails the group and cancels the other call.
	// A half that fails for any other reason leaves its part blank.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if profile, err = s.auth.Profile(gctx); err != nil {
			s.logger.Warn(ctx, "failed to load profile", "err", err)
			d.ProfileErr = err
		}
		return rejected("load profile", err)
	})
	g.Go(func() error {
		var err error
		if today, err = s.meals.Today(gctx); err != nil {
			s.logger.Warn(ctx, "failed to load today's meals", "err", err)
			d.MealsErr = err
		}
		return rejected("load meals", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if d.ProfileErr != nil && d.MealsErr != nil {
		return nil, fmt.Errorf("dashboard unavailable: %w", errors.Join(d.ProfileErr, d.MealsErr))
	}

	var goals models.Totals
	if profile != nil {
		d.UserName = profile.FullName
		d.Objective = models.ObjectiveLabel(profile.Objective)
		goals = models.Totals{
			Calories: profile.CalorieGoal,
			Protein:  profile.ProteinGoal,
			Carbs:    profile.CarbsGoal,
			Fat:      profile.FatGoal,
		}
	}
	var consumed models.Totals
	if today != nil {
		d.Meals = today.Meals
		consumed = today.Totals
	}

	d.Calories = NewProgress(consumed.Calories, goals.Calories)
	d.Protein = NewProgress(consumed.Protein, goals.Protein)
	d.Carbs = NewProgress(consumed.Carbs, goals.Carbs)
	d.Fat = NewProgress(consumed.Fat, goals.Fat)
	d.Band = CalorieBand(d.Calories.Percent)
	return &d, nil
}
