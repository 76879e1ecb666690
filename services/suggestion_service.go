package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"waterBuddyAPI/internal/goal"
	"waterBuddyAPI/internal/user"
)

var numericLiteral = regexp.MustCompile(`(\d+(\.\d+)?)`)

// SuggestionService asks an external chat-completion endpoint for an ideal
// daily water goal in liters. The core only ever consumes a single numeric
// literal parsed out of the free-text reply; every failure mode (missing key,
// timeout, HTTP error, no number in the reply) degrades to the fixed
// fallback of 2.5 L and is never surfaced as a hard error.
type SuggestionService struct {
	apiURL string
	model  string
	apiKey string
	client *http.Client
}

func NewSuggestionService(apiURL, model, apiKey string) *SuggestionService {
	return &SuggestionService{
		apiURL: apiURL,
		model:  model,
		apiKey: apiKey,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// SuggestDailyGoal returns the suggested goal in liters, rounded to two
// decimals, or the fallback on any failure.
func (s *SuggestionService) SuggestDailyGoal(ctx context.Context, profile user.Profile) float64 {
	liters, err := s.suggest(ctx, profile)
	if err != nil {
		log.Printf("goal suggestion failed, using default %.1f L: %v", goal.DefaultDailyLiters, err)
		return goal.DefaultDailyLiters
	}
	return liters
}

func (s *SuggestionService) suggest(ctx context.Context, profile user.Profile) (float64, error) {
	if s.apiURL == "" || s.apiKey == "" {
		return 0, errors.New("suggestion API not configured")
	}

	prompt := buildGoalPrompt(profile)

	payload := map[string]any{
		"model": s.model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
	}
	body, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiURL, bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("suggestion API returned %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, err
	}

	var reply struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &reply); err != nil {
		return 0, fmt.Errorf("malformed suggestion response: %w", err)
	}
	if len(reply.Choices) == 0 {
		return 0, errors.New("suggestion response has no choices")
	}

	match := numericLiteral.FindString(reply.Choices[0].Message.Content)
	if match == "" {
		return 0, errors.New("no numeric value in suggestion reply")
	}

	liters, err := strconv.ParseFloat(match, 64)
	if err != nil || liters <= 0 {
		return 0, fmt.Errorf("unusable suggested value %q", match)
	}

	return math.Round(liters*100) / 100, nil
}

func buildGoalPrompt(p user.Profile) string {
	problems := p.HealthProblems
	if problems == "" {
		problems = "None"
	}
	return fmt.Sprintf(
		"You are Water Buddy, a smart hydration assistant. "+
			"Based on the following personal health information, suggest an ideal daily water intake goal in liters. "+
			"Only return a single numeric value in liters (no text, no units).\n"+
			"Age: %d\nHeight: %.1f %s\nWeight: %.1f %s\nBMI: %.2f\nHealth condition: %s\nHealth problems: %s",
		p.Age, p.Height, p.HeightUnit, p.Weight, p.WeightUnit, p.BMI, p.HealthCondition, problems)
}
