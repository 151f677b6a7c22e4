package database_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nrampal/prospecta/internal/infra/database"
)

func TestDayWindow(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 42, 7, 0, time.UTC)

	start, end := database.DayWindow(now)

	assert.Equal(t, time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekWindowStartsSunday(t *testing.T) {
	// 2026-03-10 is a Tuesday; the containing week starts Sunday 2026-03-08.
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	start, end := database.WeekWindow(now)

	assert.Equal(t, time.Sunday, start.Weekday())
	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestWeekWindowOnSunday(t *testing.T) {
	now := time.Date(2026, 3, 8, 9, 0, 0, 0, time.UTC)

	start, end := database.WeekWindow(now)

	assert.Equal(t, time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthWindow(t *testing.T) {
	now := time.Date(2026, 12, 25, 23, 59, 0, 0, time.UTC)

	start, end := database.MonthWindow(now)

	assert.Equal(t, time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), end)
}
