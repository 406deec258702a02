// Package mealhistory turns the flat meal list returned by the backend into
// per-day buckets for the history view.
package mealhistory

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/nutritrack/internal/client/models"
	"github.com/dmitrijs2005/nutritrack/internal/timex"
)

var ErrBadDate = errors.New("bad meal date")

// ParseLocalDate reads the calendar day of a backend date string such as
// "2025-03-10" or "2025-03-10T00:00:00" and returns midnight of that day in
// the local zone. Parsing the components directly keeps a UTC offset from
// moving the day.
func ParseLocalDate(s string) (time.Time, error) {
	day, _, _ := strings.Cut(s, "T")
	parts := strings.Split(day, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}

	var ymd [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
		}
		ymd[i] = n
	}
	if ymd[1] < 1 || ymd[1] > 12 || ymd[2] < 1 || ymd[2] > 31 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
	}

	return time.Date(ymd[0], time.Month(ymd[1]), ymd[2], 0, 0, 0, 0, time.Local), nil
}

// FoodLabel renders a food as "<description> (<quantity><unit>)".
func FoodLabel(f models.FoodItem) string {
	return fmt.Sprintf("%s (%s%s)", f.Description, strconv.FormatFloat(f.Quantity, 'f', -1, 64), f.Unit)
}

type group struct {
	key   string
	date  time.Time
	valid bool
	meals []models.MealRecord
}

// Aggregate groups records by their literal date string and returns one
// bucket per date, most recent first. Meal totals come from the backend; a
// day's total is the sum of its meals. Dates that cannot be parsed sort
// last with a zero LocalDate.
func Aggregate(records []models.MealRecord, now time.Time) []models.DayBucket {
	byKey := make(map[string]*group)
	var groups []*group
	for _, r := range records {
		g, ok := byKey[r.Date]
		if !ok {
			g = &group{key: r.Date}
			if d, err := ParseLocalDate(r.Date); err == nil {
				g.date, g.valid = d, true
			}
			byKey[r.Date] = g
			groups = append(groups, g)
		}
		g.meals = append(g.meals, r)
	}

	slices.SortStableFunc(groups, func(a, b *group) int {
		switch {
		case a.valid != b.valid:
			if a.valid {
				return -1
			}
			return 1
		case !a.date.Equal(b.date):
			return b.date.Compare(a.date)
		}
		return cmp.Compare(b.key, a.key)
	})

	today := timex.DateKey(now)
	buckets := make([]models.DayBucket, 0, len(groups))
	for _, g := range groups {
		b := models.DayBucket{
			DateKey:   g.key,
			LocalDate: g.date,
			Meals:     make([]models.BucketMeal, 0, len(g.meals)),
			IsToday:   g.valid && timex.DateKey(g.date) == today,
		}
		for _, r := range g.meals {
			m := models.BucketMeal{
				ID:            r.ID,
				Name:          r.DisplayName,
				Foods:         make([]models.FoodLine, 0, len(r.Foods)),
				TotalCalories: r.TotalCalories,
			}
			for _, f := range r.Foods {
				m.Foods = append(m.Foods, models.FoodLine{Description: FoodLabel(f), Calories: f.Calories})
			}
			b.Meals = append(b.Meals, m)
			b.TotalCalories += r.TotalCalories
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// RenameMealLocally renames the first meal with id across buckets in place
// and reports whether one was found.
func RenameMealLocally(buckets []models.DayBucket, id, name string) bool {
	for i := range buckets {
		for j := range buckets[i].Meals {
			if buckets[i].Meals[j].ID == id {
				buckets[i].Meals[j].Name = name
				return true
			}
		}
	}
	return false
}
