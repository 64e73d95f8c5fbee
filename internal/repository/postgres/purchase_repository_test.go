package postgres

import (
	"testing"
	"time"
)

func TestCurrentWeekMondayAnchor(t *testing.T) {
	// Wednesday afternoon
	wed := time.Date(2026, time.August, 26, 15, 30, 0, 0, time.UTC)

	start, end := currentWeek(wed)

	if start.Weekday() != time.Monday {
		t.Errorf("week starts on %v, want Monday", start.Weekday())
	}
	if !start.Equal(time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("week start = %v, want Monday Aug 24 midnight", start)
	}
	if !end.Equal(start.AddDate(0, 0, 7)) {
		t.Errorf("week end = %v, want start + 7 days", end)
	}
}

func TestCurrentWeekOnBoundaries(t *testing.T) {
	// Monday itself stays in its own week
	mon := time.Date(2026, time.August, 24, 0, 0, 1, 0, time.UTC)
	start, _ := currentWeek(mon)
	if !start.Equal(time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Monday start = %v, want the same Monday", start)
	}

	// Sunday belongs to the week that began six days earlier
	sun := time.Date(2026, time.August, 30, 23, 59, 0, 0, time.UTC)
	start, end := currentWeek(sun)
	if !start.Equal(time.Date(2026, time.August, 24, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Sunday start = %v, want previous Monday", start)
	}
	if !sun.Before(end) {
		t.Errorf("Sunday %v should fall before week end %v", sun, end)
	}
}
