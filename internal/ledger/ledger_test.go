package ledger

import (
	"errors"
	"math"
	"testing"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		input   string
		wantMl  float64
		wantErr bool
	}{
		{"700", 700, false},
		{"700ml", 700, false},
		{"700 ml", 700, false},
		{"  250.5 ML ", 250.5, false},
		{"", 0, true},
		{"ml", 0, true},
		{"0", 0, true},
		{"0ml", 0, true},
		{"abc", 0, true},
		{"-300", 300, false}, // sign is stripped, value is read as positive
		{"1.2.3", 0, true},
	}

	for _, c := range cases {
		got, err := ParseAmount(c.input)
		if c.wantErr {
			if !errors.Is(err, ErrInvalidAmount) {
				t.Errorf("ParseAmount(%q): want ErrInvalidAmount, got %v", c.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseAmount(%q): unexpected error %v", c.input, err)
			continue
		}
		if got != c.wantMl {
			t.Errorf("ParseAmount(%q) = %v, want %v", c.input, got, c.wantMl)
		}
	}
}

func TestAddAccumulatesPerDate(t *testing.T) {
	l := Ledger{}

	l.Add("2026-08-28", MlToLiters(700))
	l.Add("2026-08-28", MlToLiters(800))
	l.Add("2026-08-28", MlToLiters(600))
	l.Add("2026-08-27", MlToLiters(500))

	if got := l.TotalFor("2026-08-28"); math.Abs(got-2.1) > 1e-9 {
		t.Errorf("total for 2026-08-28 = %v, want 2.1", got)
	}
	if got := l.TotalFor("2026-08-27"); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("total for 2026-08-27 = %v, want 0.5", got)
	}
}

func TestTotalForMissingDateIsZero(t *testing.T) {
	l := Ledger{"2026-08-27": 1.5}

	if got := l.TotalFor("2026-08-28"); got != 0 {
		t.Errorf("total for fresh day = %v, want 0", got)
	}
	// the previous day's entry is untouched
	if got := l.TotalFor("2026-08-27"); got != 1.5 {
		t.Errorf("previous day total = %v, want 1.5", got)
	}
}

func TestHistorySortedAscending(t *testing.T) {
	l := Ledger{
		"2026-08-28": 2.1,
		"2026-08-01": 1.0,
		"2026-08-15": 3.0,
	}

	entries := l.History()
	if len(entries) != 3 {
		t.Fatalf("history length = %d, want 3", len(entries))
	}
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Date >= entries[i].Date {
			t.Errorf("history not ascending: %s before %s", entries[i-1].Date, entries[i].Date)
		}
	}
}
