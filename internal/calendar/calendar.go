package calendar

import "time"

// DayStatus classifies one day of the projected month.
type DayStatus string

const (
	StatusAchieved DayStatus = "achieved"
	StatusMissed   DayStatus = "missed"
	StatusUpcoming DayStatus = "upcoming"
)

// Day is one cell of the month view.
type Day struct {
	Day     int       `json:"day"`
	Date    string    `json:"date"`
	Status  DayStatus `json:"status"`
	IsToday bool      `json:"is_today"`
}

// MonthView is the derived month projection returned to clients. It carries
// no state of its own and is recomputed on every request.
type MonthView struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Days  []Day `json:"days"`
}

// ProjectMonth maps each day of (year, month) to a status: upcoming when the
// date is after today, achieved when it is in the completed set, missed
// otherwise. Days are returned in ascending day-of-month order.
func ProjectMonth(year int, month time.Month, completedDays []string, today time.Time) MonthView {
	completed := make(map[string]struct{}, len(completedDays))
	for _, d := range completedDays {
		completed[d] = struct{}{}
	}

	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	todayISO := todayDate.Format("2006-01-02")

	first := time.Date(year, month, 1, 0, 0, 0, 0, today.Location())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	days := make([]Day, 0, daysInMonth)
	for d := 1; d <= daysInMonth; d++ {
		date := time.Date(year, month, d, 0, 0, 0, 0, today.Location())
		iso := date.Format("2006-01-02")

		status := StatusMissed
		switch {
		case date.After(todayDate):
			status = StatusUpcoming
		default:
			if _, ok := completed[iso]; ok {
				status = StatusAchieved
			}
		}

		days = append(days, Day{
			Day:     d,
			Date:    iso,
			Status:  status,
			IsToday: iso == todayISO,
		})
	}

	return MonthView{Year: year, Month: int(month), Days: days}
}
