package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
)

func (a *App) printBuckets(buckets []models.DayBucket) {
	if len(buckets) == 0 {
		a.println("No meals logged yet")
		return
	}
	for i, b := range buckets {
		label := b.DateKey
		if !b.LocalDate.IsZero() {
			label = b.LocalDate.Format("Mon 02/01/2006")
		}
		if b.IsToday {
			label += " (today)"
		}
		marker := "+"
		if a.session.History.IsExpanded(i) {
			marker = "-"
		}
		a.printf("%s %d. %s  %.0f kcal\n", marker, i+1, label, b.TotalCalories)
		if !a.session.History.IsExpanded(i) {
			continue
		}
		for _, m := range b.Meals {
			a.printf("    %s [%s]  %.0f kcal\n", m.Name, m.ID, m.TotalCalories)
			for _, f := range m.Foods {
				a.printf("      • %s  %.0f kcal\n", f.Description, f.Calories)
			}
		}
	}
}

// History fetches all meals and prints them grouped by day.
func (a *App) History(ctx context.Context) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	buckets, err := a.session.History.Load(rctx)
	if err != nil {
		return a.check(ctx, err)
	}
	a.printBuckets(buckets)
	return nil
}

// Expand opens day n (1-based) of the last loaded history, closing the one
// that was open; expanding the open day closes it.
func (a *App) Expand(ctx context.Context, n int) error {
	buckets := a.session.History.Buckets()
	if n < 1 || n > len(buckets) {
		return fmt.Errorf("no day %d in the history, run 'history' first", n)
	}
	a.session.History.Toggle(n - 1)
	a.printBuckets(buckets)
	return nil
}

func (a *App) Rename(ctx context.Context, mealID, name string) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	if err := a.session.History.Rename(rctx, mealID, name); err != nil {
		return a.check(ctx, err)
	}
	a.println("Meal renamed")
	if len(a.session.History.Buckets()) > 0 {
		a.printBuckets(a.session.History.Buckets())
	}
	return nil
}

// Remove deletes a meal from the history and reloads it.
func (a *App) Remove(ctx context.Context, mealID string) error {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	buckets, err := a.session.History.Delete(rctx, mealID)
	if err != nil {
		return a.check(ctx, err)
	}
	a.println("Meal deleted")
	a.printBuckets(buckets)
	return nil
}
