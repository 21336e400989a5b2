package utils_test

import (
	"testing"
	"time"

	"github.com/opscheduler/opscheduler-api/utils"
	"github.com/stretchr/testify/assert"
)

func TestDayBoundsCoverWholeDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	assert.NoError(t, err)

	now := time.Date(2025, time.March, 14, 15, 9, 26, 0, loc)
	start, end := utils.DayBounds(now)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, loc), start)
	assert.True(t, end.After(now))
	assert.Equal(t, 14, end.Day())

	// An operation one second into the next day falls outside the window.
	nextDay := time.Date(2025, time.March, 15, 0, 0, 1, 0, loc)
	assert.True(t, nextDay.After(end))
}

func TestDayBoundsMidnightInput(t *testing.T) {
	midnight := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	start, end := utils.DayBounds(midnight)

	assert.Equal(t, midnight, start)
	assert.Equal(t, 1, end.Day())
	assert.True(t, end.Sub(start) < 24*time.Hour)
}
