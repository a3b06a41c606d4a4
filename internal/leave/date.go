package leave

import (
	"strings"
	"time"

	leaveerrors "github.com/felicienmukamba/gestion-des-ressources-humaines/internal/leave/errors"
)

const DateLayout = "2006-01-02"

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Days counts the calendar days of r, both ends included.
func (r DateRange) Days() int {
	return int(NormalizeDate(r.End).Sub(NormalizeDate(r.Start)).Hours()/24) + 1
}

// Overlaps uses inclusive bounds: ranges sharing a single day overlap.
func Overlaps(a, b DateRange) bool {
	return !a.Start.After(b.End) && !a.End.Before(b.Start)
}

// NormalizeDate keeps the calendar date of t, as seen in t's location, at UTC
// midnight.
func NormalizeDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// UTCToday is the UTC calendar day of now, normalized like submitted dates.
func UTCToday(now time.Time) time.Time {
	return NormalizeDate(now.UTC())
}

// ParseDate reads a YYYY-MM-DD date as UTC midnight.
func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func formatDate(t time.Time) string {
	return t.Format(DateLayout)
}
