package report

import (
	"strings"
	"time"

	"kimaireport/internal/timeutil"
)

const (
	dateLayout  = "2006-01-02"
	beginSuffix = "T00:00:00"
	endSuffix   = "T23:59:59"
)

// Window is the inclusive timestamp range filtering which timesheet
// entries a report covers, normalized to full-day boundaries.
type Window struct {
	Begin string
	End   string
}

// NewWindow builds the reporting window. Explicit YYYY-MM-DD bounds are
// used as given; each missing bound falls back to the matching edge of the
// calendar month preceding now.
func NewWindow(startDate, endDate string, now time.Time) Window {
	first, last := timeutil.PreviousMonth(now)

	startDate = strings.TrimSpace(startDate)
	if startDate == "" {
		startDate = first.Format(dateLayout)
	}
	endDate = strings.TrimSpace(endDate)
	if endDate == "" {
		endDate = last.Format(dateLayout)
	}

	return Window{
		Begin: startDate + beginSuffix,
		End:   endDate + endSuffix,
	}
}
