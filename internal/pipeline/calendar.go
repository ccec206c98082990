package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/transito-cc/backend-go/internal/domain"
)

// Day-first layouts tried in order. The source system emits dd/mm dates
// with and without a time part; ISO forms show up in newer extracts.
var dayFirstLayouts = []string{
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"02/01/2006",
	"02-01-2006 15:04:05",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParseDayFirst parses a source timestamp with day-first precedence.
// ok is false when no layout matches.
func ParseDayFirst(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dayFirstLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DeriveCalendar expands a creation timestamp into the time-bucket fields
// used by every calendar grouping. An unparseable timestamp yields an
// invalid Calendar; the row itself is kept.
func DeriveCalendar(createdAt string) domain.Calendar {
	t, ok := ParseDayFirst(createdAt)
	if !ok {
		return domain.Calendar{}
	}

	isoYear, isoWeek := t.ISOWeek()

	return domain.Calendar{
		Valid:       true,
		Date:        time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()),
		Hour:        t.Hour(),
		Year:        t.Year(),
		MonthNum:    int(t.Month()),
		MonthName:   t.Month().String(),
		YearMonth:   t.Format("2006-01"),
		Day:         t.Day(),
		WeekdayName: t.Weekday().String(),
		YearWeek:    fmt.Sprintf("%d-%02d", isoYear, isoWeek),
	}
}

// ContactMonth parses the contact timestamp the same way but keeps only
// the month number. Zero when the value does not parse.
func ContactMonth(contactAt string) int {
	t, ok := ParseDayFirst(contactAt)
	if !ok {
		return 0
	}
	return int(t.Month())
}
