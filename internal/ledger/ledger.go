package ledger

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"time"
)

// DateLayout is the ISO key format used for all per-day entries.
const DateLayout = "2006-01-02"

// ErrInvalidAmount is returned when an intake input does not parse to a
// positive finite number of milliliters.
var ErrInvalidAmount = errors.New("invalid intake amount")

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// Ledger maps an ISO date (YYYY-MM-DD) to the accumulated liters recorded for
// that date. Values never decrease within a date.
type Ledger map[string]float64

// ParseAmount strips non-numeric characters from a raw input like "700 ml"
// and returns the amount in milliliters. Accepts "700", "700ml", "700 ml".
func ParseAmount(raw string) (float64, error) {
	cleaned := nonNumeric.ReplaceAllString(raw, "")
	if cleaned == "" {
		return 0, ErrInvalidAmount
	}

	ml, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if ml <= 0 || math.IsInf(ml, 0) || math.IsNaN(ml) {
		return 0, ErrInvalidAmount
	}

	return ml, nil
}

// Add accumulates liters onto the entry for date, creating it at 0.0 first.
func (l Ledger) Add(date string, liters float64) float64 {
	l[date] += liters
	return l[date]
}

// TotalFor returns the accumulated liters for date, 0.0 when no entry exists
// yet. A fresh calendar day starts from zero without touching prior entries.
func (l Ledger) TotalFor(date string) float64 {
	return l[date]
}

// Entry is one (date, liters) pair of the ledger history.
type Entry struct {
	Date   string  `json:"date"`
	Liters float64 `json:"liters"`
}

// History returns all entries sorted by date ascending.
func (l Ledger) History() []Entry {
	entries := make([]Entry, 0, len(l))
	for date, liters := range l {
		entries = append(entries, Entry{Date: date, Liters: liters})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries
}

// MlToLiters converts milliliters to liters.
func MlToLiters(ml float64) float64 {
	return ml / 1000.0
}

// DateOf formats t as a ledger key.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}
