package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"waterBuddyAPI/internal/goal"
	"waterBuddyAPI/internal/store"
	"waterBuddyAPI/internal/user"
)

var (
	ErrInvalidSignup      = errors.New("username and password are required")
	ErrInvalidGoalConfig  = errors.New("daily goal and reminder frequency must be positive")
	ErrInvalidProfileUnit = errors.New("height unit must be cm or feet, weight unit must be kg or lbs")
)

type UserService struct {
	repo        store.Repository
	suggestions *SuggestionService
}

func NewUserService(repo store.Repository, suggestions *SuggestionService) *UserService {
	return &UserService{repo: repo, suggestions: suggestions}
}

// CreateUser registers a new user with the signup defaults: 2.5 L goal,
// 30 minute reminder cadence, empty ledger and streak.
func (s *UserService) CreateUser(ctx context.Context, req *user.CreateUserRequest) (*user.ProfileResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return nil, ErrInvalidSignup
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	record := user.NewRecord(uuid.NewString(), username, string(hash))
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, err
	}

	return record.ToProfileResponse(), nil
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*user.ProfileResponse, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}
	return record.ToProfileResponse(), nil
}

// UpdateProfile saves the personal-settings form. BMI is recomputed
// server-side, and whenever the profile actually changed the AI goal
// suggestion is refreshed; an unchanged form keeps the previous goal and
// makes no external call.
func (s *UserService) UpdateProfile(ctx context.Context, username string, req *user.UpdateProfileRequest) (*user.ProfileResponse, error) {
	if err := validateUnits(req.HeightUnit, req.WeightUnit); err != nil {
		return nil, err
	}

	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	updated := user.Profile{
		Name:            strings.TrimSpace(req.Name),
		Age:             req.Age,
		Country:         strings.TrimSpace(req.Country),
		Language:        strings.TrimSpace(req.Language),
		Height:          req.Height,
		HeightUnit:      req.HeightUnit,
		Weight:          req.Weight,
		WeightUnit:      req.WeightUnit,
		HealthCondition: strings.TrimSpace(req.HealthCondition),
		HealthProblems:  strings.TrimSpace(req.HealthProblems),
	}
	updated.BMI = goal.BMI(updated.Weight, updated.Height, updated.WeightUnit, updated.HeightUnit)

	if updated != record.Profile {
		record.Profile = updated
		record.AIWaterGoal = s.suggestions.SuggestDailyGoal(ctx, updated)
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	return record.ToProfileResponse(), nil
}

// UpdateWaterProfile saves the goal configuration. Both values must be
// positive; the daily goal invariant is enforced here and again at load time.
func (s *UserService) UpdateWaterProfile(ctx context.Context, username string, req *user.UpdateWaterProfileRequest) (*user.ProfileResponse, error) {
	if req.DailyGoalLiters <= 0 || req.ReminderFrequencyMinutes <= 0 {
		return nil, ErrInvalidGoalConfig
	}

	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return nil, err
	}

	record.WaterProfile = user.WaterProfile{
		DailyGoalLiters:          req.DailyGoalLiters,
		ReminderFrequencyMinutes: req.ReminderFrequencyMinutes,
	}

	if err := s.repo.Save(ctx, record); err != nil {
		return nil, err
	}

	return record.ToProfileResponse(), nil
}

// RefreshSuggestion forces a fresh goal suggestion from the saved profile
// and stores it as the AI goal.
func (s *UserService) RefreshSuggestion(ctx context.Context, username string) (float64, error) {
	record, err := s.repo.Load(ctx, username)
	if err != nil {
		return 0, err
	}

	record.AIWaterGoal = s.suggestions.SuggestDailyGoal(ctx, record.Profile)
	if err := s.repo.Save(ctx, record); err != nil {
		return 0, err
	}

	return record.AIWaterGoal, nil
}

func validateUnits(heightUnit, weightUnit string) error {
	if heightUnit != "cm" && heightUnit != "feet" {
		return ErrInvalidProfileUnit
	}
	if weightUnit != "kg" && weightUnit != "lbs" {
		return ErrInvalidProfileUnit
	}
	return nil
}
