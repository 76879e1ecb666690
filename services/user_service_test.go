package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"waterBuddyAPI/internal/store"
	"waterBuddyAPI/internal/user"
)

func newUserService(repo store.Repository) *UserService {
	// unconfigured suggestion service: always falls back to 2.5
	return NewUserService(repo, NewSuggestionService("", "", ""))
}

func TestCreateUserDefaults(t *testing.T) {
	repo := store.NewMemory()
	svc := newUserService(repo)

	resp, err := svc.CreateUser(context.Background(), &user.CreateUserRequest{
		Username: "alice", Password: "pw",
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Username != "alice" {
		t.Errorf("username = %q", resp.Username)
	}
	if resp.WaterProfile.DailyGoalLiters != 2.5 {
		t.Errorf("default goal = %v, want 2.5", resp.WaterProfile.DailyGoalLiters)
	}
	if resp.WaterProfile.ReminderFrequencyMinutes != 30 {
		t.Errorf("default reminder = %d, want 30", resp.WaterProfile.ReminderFrequencyMinutes)
	}
	if resp.HasProfile {
		t.Error("new user should have no profile yet")
	}
}

func TestCreateUserRejectsEmptyAndDuplicate(t *testing.T) {
	repo := store.NewMemory()
	svc := newUserService(repo)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: " ", Password: "pw"}); !errors.Is(err, ErrInvalidSignup) {
		t.Errorf("blank username: got %v, want ErrInvalidSignup", err)
	}
	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: "bob", Password: ""}); !errors.Is(err, ErrInvalidSignup) {
		t.Errorf("blank password: got %v, want ErrInvalidSignup", err)
	}

	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: "bob", Password: "pw"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: "bob", Password: "pw2"}); !errors.Is(err, store.ErrAlreadyExists) {
		t.Errorf("duplicate: got %v, want ErrAlreadyExists", err)
	}
}

func TestUpdateProfileComputesBMIAndRefreshesGoal(t *testing.T) {
	repo := store.NewMemory()
	srv := suggestionServer(t, http.StatusOK, chatReply(`"3.2"`))
	defer srv.Close()
	svc := NewUserService(repo, NewSuggestionService(srv.URL, "test-model", "test-key"))
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: "carol", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	resp, err := svc.UpdateProfile(ctx, "carol", &user.UpdateProfileRequest{
		Name: "Carol", Age: 28,
		Height: 175, HeightUnit: "cm",
		Weight: 70, WeightUnit: "kg",
		HealthCondition: "Excellent",
	})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Profile.BMI < 22.8 || resp.Profile.BMI > 22.9 {
		t.Errorf("BMI = %v, want ~22.86", resp.Profile.BMI)
	}
	if resp.AIWaterGoal != 3.2 {
		t.Errorf("ai goal = %v, want suggested 3.2", resp.AIWaterGoal)
	}
	if !resp.HasProfile {
		t.Error("profile should be present after save")
	}
}

func TestUpdateProfileUnchangedSkipsSuggestion(t *testing.T) {
	repo := store.NewMemory()
	calls := 0
	srv := countingSuggestionServer(&calls)
	defer srv.Close()
	svc := NewUserService(repo, NewSuggestionService(srv.URL, "test-model", "test-key"))
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: "dora", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	req := &user.UpdateProfileRequest{
		Name: "Dora", Age: 30,
		Height: 160, HeightUnit: "cm",
		Weight: 55, WeightUnit: "kg",
		HealthCondition: "Fair",
	}
	if _, err := svc.UpdateProfile(ctx, "dora", req); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.UpdateProfile(ctx, "dora", req); err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Errorf("suggestion calls = %d, want 1 (unchanged form keeps previous goal)", calls)
	}
}

func TestUpdateProfileRejectsBadUnits(t *testing.T) {
	repo := store.NewMemory()
	svc := newUserService(repo)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: "ed", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.UpdateProfile(ctx, "ed", &user.UpdateProfileRequest{
		Height: 170, HeightUnit: "inches",
		Weight: 70, WeightUnit: "kg",
	})
	if !errors.Is(err, ErrInvalidProfileUnit) {
		t.Errorf("got %v, want ErrInvalidProfileUnit", err)
	}
}

func TestUpdateWaterProfileValidation(t *testing.T) {
	repo := store.NewMemory()
	svc := newUserService(repo)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, &user.CreateUserRequest{Username: "fay", Password: "pw"}); err != nil {
		t.Fatal(err)
	}

	for _, req := range []*user.UpdateWaterProfileRequest{
		{DailyGoalLiters: 0, ReminderFrequencyMinutes: 30},
		{DailyGoalLiters: 2.0, ReminderFrequencyMinutes: 0},
		{DailyGoalLiters: -1, ReminderFrequencyMinutes: -5},
	} {
		if _, err := svc.UpdateWaterProfile(ctx, "fay", req); !errors.Is(err, ErrInvalidGoalConfig) {
			t.Errorf("%+v: got %v, want ErrInvalidGoalConfig", req, err)
		}
	}

	resp, err := svc.UpdateWaterProfile(ctx, "fay", &user.UpdateWaterProfileRequest{
		DailyGoalLiters: 3.0, ReminderFrequencyMinutes: 45,
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.WaterProfile.DailyGoalLiters != 3.0 || resp.WaterProfile.ReminderFrequencyMinutes != 45 {
		t.Errorf("saved water profile = %+v", resp.WaterProfile)
	}
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc := newUserService(store.NewMemory())
	if _, err := svc.GetProfile(context.Background(), "ghost"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("got %v, want ErrNotFound", err)
	}
}
