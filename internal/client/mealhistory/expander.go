package mealhistory

// Expander tracks which day of the history view is open. At most one day is
// expanded at a time.
type Expander struct {
	days     int
	expanded int
}

// NewExpander returns an expander over days buckets with the first one open.
func NewExpander(days int) *Expander {
	e := &Expander{}
	e.Reset(days)
	return e
}

// Reset forgets the current state after the bucket list changed.
func (e *Expander) Reset(days int) {
	e.days = days
	e.expanded = -1
	if days > 0 {
		e.expanded = 0
	}
}

// Toggle collapses day i when it is open, otherwise opens it and collapses
// the previous one. Out-of-range indexes are ignored.
func (e *Expander) Toggle(i int) bool {
	if i < 0 || i >= e.days {
		return false
	}
	if e.expanded == i {
		e.expanded = -1
	} else {
		e.expanded = i
	}
	return true
}

func (e *Expander) Expanded() (int, bool) {
	return e.expanded, e.expanded >= 0
}

func (e *Expander) IsExpanded(i int) bool {
	return e.expanded >= 0 && e.expanded == i
}
