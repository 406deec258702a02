package timex

import "time"

// DateLayout is the calendar date key format used for chat logs and meal
// records.
const DateLayout = "2006-01-02"

// DateKey formats t as YYYY-MM-DD in t's own location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// IsDateKey reports whether s is a valid YYYY-MM-DD calendar date.
func IsDateKey(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil && len(s) == len(DateLayout)
}
