package user

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name            string  `json:"name"`
	Age             int     `json:"age"`
	Country         string  `json:"country"`
	Language        string  `json:"language"`
	Height          float64 `json:"height"`
	HeightUnit      string  `json:"height_unit"`
	Weight          float64 `json:"weight"`
	WeightUnit      string  `json:"weight_unit"`
	HealthCondition string  `json:"health_condition"`
	HealthProblems  string  `json:"health_problems"`
}

type UpdateWaterProfileRequest struct {
	DailyGoalLiters          float64 `json:"daily_goal_liters"`
	ReminderFrequencyMinutes int     `json:"reminder_frequency_minutes"`
}

// ProfileResponse is the outward view of a record, without the password hash
// or raw ledger internals.
type ProfileResponse struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Profile      Profile      `json:"profile"`
	AIWaterGoal  float64      `json:"ai_water_goal"`
	WaterProfile WaterProfile `json:"water_profile"`
	HasProfile   bool         `json:"has_profile"`
}

// ToProfileResponse projects the record into its API shape.
func (r *Record) ToProfileResponse() *ProfileResponse {
	return &ProfileResponse{
		ID:           r.ID,
		Username:     r.Username,
		Profile:      r.Profile,
		AIWaterGoal:  r.AIWaterGoal,
		WaterProfile: r.WaterProfile,
		HasProfile:   r.HasProfile(),
	}
}
