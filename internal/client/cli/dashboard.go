package cli

import (
	"context"

	"github.com/dmitrijs2005/nutritrack/internal/client/services"
)

func (a *App) printProgress(label, unit string, p services.Progress) {
	a.printf("%-9s %6.0f / %.0f %s (%.0f%%)\n", label, p.Consumed, p.Goal, unit, p.Percent)
}

// Dashboard prints today's progress against the daily goals.
func (a *App) Dashboard(ctx context.Context) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	d, err := a.session.Dashboard.Load(rctx)
	if err != nil {
		return a.check(ctx, err)
	}

	if d.ProfileErr != nil {
		a.println("Profile unavailable, goals are not shown")
	} else {
		a.printf("Hello, %s! Objective: %s\n", d.UserName, d.Objective)
	}

	a.printProgress("Calories", "kcal", d.Calories)
	a.printf("          status: %s\n", d.Band)
	if d.HasMacros() {
		a.printProgress("Protein", "g", d.Protein)
		a.printProgress("Carbs", "g", d.Carbs)
		a.printProgress("Fat", "g", d.Fat)
	}

	if d.MealsErr != nil {
		a.println("Today's meals are unavailable")
		return nil
	}
	if len(d.Meals) == 0 {
		a.println("No meals logged today, tell me what you ate with 'say <meal>'")
		return nil
	}
	a.println("Today's meals:")
	for _, m := range d.Meals {
		a.printf("  %s [%s]  %.0f kcal\n", m.DisplayName, m.ID, m.TotalCalories)
	}
	return nil
}
