package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveCalendar(t *testing.T) {
	// 05/01/2026 must parse day-first: January 5th, not May 1st.
	cal := DeriveCalendar("05/01/2026 14:30:00")
	require.True(t, cal.Valid)
	assert.Equal(t, 2026, cal.Year)
	assert.Equal(t, 1, cal.MonthNum)
	assert.Equal(t, "January", cal.MonthName)
	assert.Equal(t, 5, cal.Day)
	assert.Equal(t, 14, cal.Hour)
	assert.Equal(t, "2026-01", cal.YearMonth)
	assert.Equal(t, "Monday", cal.WeekdayName)
	assert.Equal(t, "2026-02", cal.YearWeek)
	assert.Equal(t, "2026-01-05", cal.Date.Format("2006-01-02"))
}

func TestDeriveCalendarISOWeekPadding(t *testing.T) {
	// Jan 1st 2027 falls in ISO week 53 of 2026.
	cal := DeriveCalendar("01/01/2027")
	require.True(t, cal.Valid)
	assert.Equal(t, "2026-53", cal.YearWeek)

	// Early-week keys are zero-padded.
	cal = DeriveCalendar("09/01/2026")
	require.True(t, cal.Valid)
	assert.Equal(t, "2026-02", cal.YearWeek)
}

func TestDeriveCalendarInvalid(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"not a date",
		"32/01/2026",
		"2026/13/40",
	}

	for _, in := range tests {
		cal := DeriveCalendar(in)
		assert.False(t, cal.Valid, "input %q should not parse", in)
	}
}

func TestDeriveCalendarISOForm(t *testing.T) {
	cal := DeriveCalendar("2026-01-05 09:15:00")
	require.True(t, cal.Valid)
	assert.Equal(t, 1, cal.MonthNum)
	assert.Equal(t, 5, cal.Day)
	assert.Equal(t, 9, cal.Hour)
}

func TestContactMonth(t *testing.T) {
	assert.Equal(t, 3, ContactMonth("15/03/2026 10:00:00"))
	assert.Equal(t, 0, ContactMonth("garbage"))
	assert.Equal(t, 0, ContactMonth(""))
}
