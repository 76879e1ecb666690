package streak

import (
	"sort"
	"time"
)

const dateLayout = "2006-01-02"

// Record tracks which calendar days met the daily goal and the contiguous
// streak derived from them. CompletedDays is kept sorted ascending with no
// duplicates, matching the persisted JSON shape.
type Record struct {
	CompletedDays []string `json:"completed_days"`
	CurrentStreak int      `json:"current_streak"`
}

// NewRecord returns an empty streak record.
func NewRecord() Record {
	return Record{CompletedDays: []string{}}
}

// Contains reports whether date is already marked completed.
func (r *Record) Contains(date string) bool {
	i := sort.SearchStrings(r.CompletedDays, date)
	return i < len(r.CompletedDays) && r.CompletedDays[i] == date
}

// MarkCompleted inserts date into the completed set, keeping it sorted.
// Idempotent: marking an already-completed date is a no-op and returns false.
func (r *Record) MarkCompleted(date string) bool {
	i := sort.SearchStrings(r.CompletedDays, date)
	if i < len(r.CompletedDays) && r.CompletedDays[i] == date {
		return false
	}
	r.CompletedDays = append(r.CompletedDays, "")
	copy(r.CompletedDays[i+1:], r.CompletedDays[i:])
	r.CompletedDays[i] = date
	return true
}

// Recompute fully re-derives the current streak: starting from today, step
// back one calendar day at a time while the date is in the completed set and
// count each hit. When today itself is not completed the walk starts from
// yesterday, so an unfinished today does not reset an alive streak. The
// result is stored on the record and returned.
//
// This is always a full re-derivation, never an incremental bump: days can be
// marked out of order, and walking the set is the only way the count stays
// equal to the maximal contiguous run ending at today (or yesterday).
func (r *Record) Recompute(today time.Time) int {
	completed := make(map[string]struct{}, len(r.CompletedDays))
	for _, d := range r.CompletedDays {
		completed[d] = struct{}{}
	}

	cursor := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	if _, ok := completed[cursor.Format(dateLayout)]; !ok {
		cursor = cursor.AddDate(0, 0, -1)
	}

	count := 0
	for {
		if _, ok := completed[cursor.Format(dateLayout)]; !ok {
			break
		}
		count++
		cursor = cursor.AddDate(0, 0, -1)
	}

	r.CurrentStreak = count
	return count
}

// LongestRun returns the length of the longest run of consecutive dates in
// the completed set, anywhere in history. Derived on demand, like the
// current streak.
func (r *Record) LongestRun() int {
	if len(r.CompletedDays) == 0 {
		return 0
	}

	longest, run := 1, 1
	prev, err := time.Parse(dateLayout, r.CompletedDays[0])
	if err != nil {
		return 0
	}
	for _, d := range r.CompletedDays[1:] {
		cur, err := time.Parse(dateLayout, d)
		if err != nil {
			continue
		}
		if cur.Sub(prev) == 24*time.Hour {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
		prev = cur
	}
	return longest
}

// Normalize restores the record invariants after loading from storage:
// entries are deduplicated, sorted and must parse as ISO dates.
func (r *Record) Normalize() {
	seen := make(map[string]struct{}, len(r.CompletedDays))
	cleaned := make([]string, 0, len(r.CompletedDays))
	for _, d := range r.CompletedDays {
		if _, err := time.Parse(dateLayout, d); err != nil {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		cleaned = append(cleaned, d)
	}
	sort.Strings(cleaned)
	r.CompletedDays = cleaned
	if r.CurrentStreak < 0 {
		r.CurrentStreak = 0
	}
}
