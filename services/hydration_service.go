package services

import (
	"context"
	"time"

	"waterBuddyAPI/internal/calendar"
	"waterBuddyAPI/internal/goal"
	"waterBuddyAPI/internal/ledger"
	"waterBuddyAPI/internal/store"
	"waterBuddyAPI/internal/streak"
	"waterBuddyAPI/utils"
)

// HydrationService owns the intake/streak path: every mutation is a
// load-modify-save of the user's record through the injected repository.
// The clock is injectable so date-sensitive logic is testable.
type HydrationService struct {
	repo store.Repository
	now  func() time.Time
}

func NewHydrationService(repo store.Repository) *HydrationService {
	return &HydrationService{repo: repo, now: time.Now}
}

type IntakeResponse struct {
	AddedMl       float64 `json:"added_ml"`
	Date          string  `json:"date"`
	TodayLiters   float64 `json:"today_liters"`
	GoalLiters    float64 `json:"goal_liters"`
	PercentFill   float64 `json:"percent_fill"`
	GoalMet       bool    `json:"goal_met"`
	DayCompleted  bool    `json:"day_completed"` // true only when this intake first completed the day
	CurrentStreak int     `json:"current_streak"`
}

type TodayResponse struct {
	Date        string  `json:"date"`
	TodayLiters float64 `json:"today_liters"`
	GoalLiters  float64 `json:"goal_liters"`
	PercentFill float64 `json:"percent_fill"`
	GoalMet     bool    `json:"goal_met"`
}

type StatsResponse struct {
	TodayStatus        bool    `json:"today_status"`
	DaysThisWeek       int     `json:"days_this_week"`
	TotalDaysCompleted int     `json:"total_days_completed"`
	CurrentStreak      int     `json:"current_streak"`
	LongestStreak      int     `json:"longest_streak"`
	HydrationScore     float64 `json:"hydration_score"`
}

type ReminderResponse struct {
	Due              bool   `json:"due"`
	GoalMet          bool   `json:"goal_met"`
	FrequencyMinutes int    `json:"frequency_minutes"`
	LastIntakeAt     string `json:"last_intake_at,omitempty"`
}

// RecordIntake parses a raw amount like "700 ml", adds it to today's ledger
// entry and, when today's total reaches the goal, marks the day completed
// and fully recomputes the streak. Invalid input returns
// ledger.ErrInvalidAmount with no state change.
func (s *HydrationService) RecordIntake(ctx context.Context, username, rawAmount string) (*IntakeResponse, error) {
	ml, err := ledger.ParseAmount(rawAmount)
	if err != nil {
		return nil, err
	}

	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := ledger.DateOf(now)
	total := record.Ledger.Add(today, ledger.MlToLiters(ml))
	dailyGoal := record.WaterProfile.DailyGoalLiters

	dayCompleted := false
	if goal.IsMet(total, dailyGoal) {
		// Idempotent: re-marking an already-completed day changes nothing.
		// The streak is re-derived from the full set every time, never
		// bumped incrementally.
		if record.Streak.MarkCompleted(today) {
			record.Streak.Recompute(now)
			dayCompleted = true
		}
	}

	record.LastIntakeAt = &now
	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	return &IntakeResponse{
		AddedMl:       ml,
		Date:          today,
		TodayLiters:   total,
		GoalLiters:    dailyGoal,
		PercentFill:   goal.PercentFill(total, dailyGoal),
		GoalMet:       goal.IsMet(total, dailyGoal),
		DayCompleted:  dayCompleted,
		CurrentStreak: record.Streak.CurrentStreak,
	}, nil
}

// GetToday returns today's progress. A date with no entry yet reads as 0.0;
// the previous day's entry stays untouched.
func (s *HydrationService) GetToday(ctx context.Context, username string) (*TodayResponse, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	today := ledger.DateOf(s.now())
	total := record.Ledger.TotalFor(today)
	dailyGoal := record.WaterProfile.DailyGoalLiters

	return &TodayResponse{
		Date:        today,
		TodayLiters: total,
		GoalLiters:  dailyGoal,
		PercentFill: goal.PercentFill(total, dailyGoal),
		GoalMet:     goal.IsMet(total, dailyGoal),
	}, nil
}

// GetLedger returns the full intake history, date ascending.
func (s *HydrationService) GetLedger(ctx context.Context, username string) ([]ledger.Entry, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	return record.Ledger.History(), nil
}

// GetStreak returns the streak record with the current streak freshly
// re-derived, so a streak broken by elapsed days reads correctly even when
// nothing was written since.
func (s *HydrationService) GetStreak(ctx context.Context, username string) (*streak.Record, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	record.Streak.Recompute(s.now())
	return &record.Streak, nil
}

// GetCalendar projects one month of the completed-days set.
func (s *HydrationService) GetCalendar(ctx context.Context, username string, year int, month time.Month) (*calendar.MonthView, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	view := calendar.ProjectMonth(year, month, record.Streak.CompletedDays, s.now())
	return &view, nil
}

// GetStats aggregates today's status, the current ISO week, lifetime totals
// and the hydration score.
func (s *HydrationService) GetStats(ctx context.Context, username string) (*StatsResponse, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := ledger.DateOf(now)
	current := record.Streak.Recompute(now)

	weekStart := startOfWeek(now)
	daysThisWeek := 0
	for _, d := range record.Streak.CompletedDays {
		if d >= ledger.DateOf(weekStart) && d <= today {
			daysThisWeek++
		}
	}

	dailyGoal := record.WaterProfile.DailyGoalLiters
	todayFill := goal.PercentFill(record.Ledger.TotalFor(today), dailyGoal)

	return &StatsResponse{
		TodayStatus:        record.Streak.Contains(today),
		DaysThisWeek:       daysThisWeek,
		TotalDaysCompleted: len(record.Streak.CompletedDays),
		CurrentStreak:      current,
		LongestStreak:      record.Streak.LongestRun(),
		HydrationScore:     utils.CalculateHydrationScore(current, len(record.Streak.CompletedDays), todayFill),
	}, nil
}

// CheckReminder is the on-demand reminder check: no timers or schedulers,
// just the wall clock against the configured cadence at request time. A
// reminder is due when today's goal is not met and either nothing was logged
// today or the last intake is older than the cadence.
func (s *HydrationService) CheckReminder(ctx context.Context, username string) (*ReminderResponse, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	now := s.now()
	today := ledger.DateOf(now)
	dailyGoal := record.WaterProfile.DailyGoalLiters
	goalMet := goal.IsMet(record.Ledger.TotalFor(today), dailyGoal)
	freq := record.WaterProfile.ReminderFrequencyMinutes

	resp := &ReminderResponse{
		GoalMet:          goalMet,
		FrequencyMinutes: freq,
	}

	if goalMet {
		return resp, nil
	}

	last := record.LastIntakeAt
	if last == nil || ledger.DateOf(*last) != today {
		resp.Due = true
		return resp, nil
	}

	resp.LastIntakeAt = last.Format(time.RFC3339)
	resp.Due = now.Sub(*last) >= time.Duration(freq)*time.Minute
	return resp, nil
}

// startOfWeek returns Monday 00:00 of now's week.
func startOfWeek(now time.Time) time.Time {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
