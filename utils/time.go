package utils

import "time"

// DayBounds returns the start and end of the day containing t, in t's
// location. Used for the dashboard's "today's operations" window.
func DayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	end := time.Date(year, month, day, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
	return start, end
}
