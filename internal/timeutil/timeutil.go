package timeutil

import "time"

// PreviousMonth returns the first and last day of the calendar month
// preceding the month of value.
func PreviousMonth(value time.Time) (first, last time.Time) {
	firstOfCurrent := time.Date(value.Year(), value.Month(), 1, 0, 0, 0, 0, value.Location())
	last = firstOfCurrent.AddDate(0, 0, -1)
	first = time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, last.Location())
	return first, last
}
