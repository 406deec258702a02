package models

import "time"

// FoodLine is a food as shown in the history view, e.g. "rice (200g)".
type FoodLine struct {
	Description string
	Calories    float64
}

// BucketMeal is a meal inside a DayBucket.
type BucketMeal struct {
	ID            string
	Name          string
	Foods         []FoodLine
	TotalCalories float64
}

// DayBucket groups the meals of one calendar day. Buckets are derived from
// MealRecords and never persisted.
type DayBucket struct {
	// DateKey is the raw date string the meals were grouped by.
	DateKey string
	// LocalDate is midnight of that calendar day in the local time zone.
	LocalDate     time.Time
	Meals         []BucketMeal
	TotalCalories float64
	IsToday       bool
}
