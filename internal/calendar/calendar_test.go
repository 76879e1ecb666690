package calendar

import (
	"testing"
	"time"
)

func TestProjectMonthStatuses(t *testing.T) {
	today := time.Date(2026, time.August, 15, 10, 30, 0, 0, time.UTC)
	completed := []string{"2026-08-01", "2026-08-14", "2026-08-15"}

	view := ProjectMonth(2026, time.August, completed, today)

	if view.Year != 2026 || view.Month != 8 {
		t.Fatalf("view header = %d-%d, want 2026-8", view.Year, view.Month)
	}
	if len(view.Days) != 31 {
		t.Fatalf("august has %d days in view, want 31", len(view.Days))
	}

	for _, d := range view.Days {
		switch {
		case d.Day > 15:
			if d.Status != StatusUpcoming {
				t.Errorf("day %d status = %s, want upcoming", d.Day, d.Status)
			}
		case d.Day == 1 || d.Day == 14 || d.Day == 15:
			if d.Status != StatusAchieved {
				t.Errorf("day %d status = %s, want achieved", d.Day, d.Status)
			}
		default:
			if d.Status != StatusMissed {
				t.Errorf("day %d status = %s, want missed", d.Day, d.Status)
			}
		}
		if (d.Day == 15) != d.IsToday {
			t.Errorf("day %d IsToday = %v", d.Day, d.IsToday)
		}
	}
}

func TestProjectMonthOrdering(t *testing.T) {
	today := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	view := ProjectMonth(2026, time.August, nil, today)

	for i, d := range view.Days {
		if d.Day != i+1 {
			t.Fatalf("days out of order at index %d: got day %d", i, d.Day)
		}
	}
}

func TestProjectMonthLengths(t *testing.T) {
	today := time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.February, 28},
		{2028, time.February, 29}, // leap year
		{2026, time.April, 30},
		{2026, time.December, 31},
	}

	for _, c := range cases {
		view := ProjectMonth(c.year, c.month, nil, today)
		if len(view.Days) != c.want {
			t.Errorf("%d-%d: %d days, want %d", c.year, c.month, len(view.Days), c.want)
		}
	}
}

func TestProjectPastMonthAllMissedOrAchieved(t *testing.T) {
	today := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	view := ProjectMonth(2026, time.July, []string{"2026-07-04"}, today)

	for _, d := range view.Days {
		if d.Status == StatusUpcoming {
			t.Errorf("past month day %d marked upcoming", d.Day)
		}
		if d.Day == 4 && d.Status != StatusAchieved {
			t.Errorf("day 4 status = %s, want achieved", d.Status)
		}
	}
}

func TestProjectFutureMonthAllUpcoming(t *testing.T) {
	today := time.Date(2026, time.August, 15, 0, 0, 0, 0, time.UTC)
	view := ProjectMonth(2026, time.September, nil, today)

	for _, d := range view.Days {
		if d.Status != StatusUpcoming {
			t.Errorf("future month day %d status = %s, want upcoming", d.Day, d.Status)
		}
	}
}
