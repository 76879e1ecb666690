package user

import (
	"time"

	"waterBuddyAPI/internal/goal"
	"waterBuddyAPI/internal/ledger"
	"waterBuddyAPI/internal/streak"
)

// RecordVersion is the current schema version of the persisted record.
const RecordVersion = 1

const DefaultReminderMinutes = 30

// Profile holds the personal-settings form fields. BMI is always computed
// server-side from the height/weight pair, never taken from the client.
type Profile struct {
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Country         string  `json:"country"`
	Language        string  `json:"language"`
	Height          float64 `json:"height"`
	HeightUnit      string  `json:"height_unit"` // "cm" or "feet"
	Weight          float64 `json:"weight"`
	WeightUnit      string  `json:"weight_unit"` // "kg" or "lbs"
	BMI             float64 `json:"bmi"`
	HealthCondition string  `json:"health_condition"`
	HealthProblems  string  `json:"health_problems"`
}

// WaterProfile is the user-editable goal configuration.
type WaterProfile struct {
	DailyGoalLiters          float64 `json:"daily_goal_liters"`
	ReminderFrequencyMinutes int     `json:"reminder_frequency_minutes"`
}

// Record is the one JSON document persisted per user. It carries the profile,
// goal configuration, intake ledger and streak record described in the data
// model. PasswordHash round-trips through storage but is never exposed in
// responses (handlers respond with DTOs, not the raw record).
type Record struct {
	Version      int           `json:"version"`
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"password_hash,omitempty"`
	Profile      Profile       `json:"profile"`
	AIWaterGoal  float64       `json:"ai_water_goal"`
	WaterProfile WaterProfile  `json:"water_profile"`
	Ledger       ledger.Ledger `json:"intake_ledger"`
	Streak       streak.Record `json:"streak"`
	LastIntakeAt *time.Time    `json:"last_intake_at,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// NewRecord builds a fresh record with the signup defaults.
func NewRecord(id, username, passwordHash string) *Record {
	now := time.Now().UTC()
	r := &Record{
		Version:      RecordVersion,
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.Normalize()
	return r
}

// Normalize applies the record invariants and defaults in one place, once,
// right after loading from storage. Partial or legacy documents come out as
// a complete record: a positive daily goal (2.5 L default), a positive
// reminder cadence, non-nil ledger and a clean streak set.
func (r *Record) Normalize() {
	if r.Version == 0 {
		r.Version = RecordVersion
	}
	if r.AIWaterGoal <= 0 {
		r.AIWaterGoal = goal.DefaultDailyLiters
	}
	if r.WaterProfile.DailyGoalLiters <= 0 {
		r.WaterProfile.DailyGoalLiters = r.AIWaterGoal
	}
	if r.WaterProfile.ReminderFrequencyMinutes <= 0 {
		r.WaterProfile.ReminderFrequencyMinutes = DefaultReminderMinutes
	}
	if r.Ledger == nil {
		r.Ledger = ledger.Ledger{}
	}
	if r.Streak.CompletedDays == nil {
		r.Streak = streak.NewRecord()
	}
	r.Streak.Normalize()
}

// HasProfile reports whether the personal-settings form was ever saved. New
// users without a profile are sent to settings first, as in the original flow.
func (r *Record) HasProfile() bool {
	return r.Profile.Name != "" || r.Profile.Height > 0 || r.Profile.Weight > 0
}
