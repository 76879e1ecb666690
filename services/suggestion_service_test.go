package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"waterBuddyAPI/internal/user"
)

func chatReply(content string) string {
	return `{"choices":[{"message":{"content":` + content + `}}]}`
}

func suggestionServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			t.Error("missing Authorization header")
		}
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
}

func countingSuggestionServer(calls *int) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*calls++
		w.Write([]byte(chatReply(`"2.9"`)))
	}))
}

func TestSuggestDailyGoalParsesNumber(t *testing.T) {
	cases := []struct {
		reply string
		want  float64
	}{
		{`"3.1"`, 3.1},
		{`"I suggest 2.8 liters per day."`, 2.8},
		{`"Around 3 L"`, 3.0},
	}

	for _, c := range cases {
		srv := suggestionServer(t, http.StatusOK, chatReply(c.reply))
		svc := NewSuggestionService(srv.URL, "test-model", "test-key")

		got := svc.SuggestDailyGoal(context.Background(), user.Profile{Age: 30})
		srv.Close()

		if got != c.want {
			t.Errorf("reply %s: suggested %v, want %v", c.reply, got, c.want)
		}
	}
}

func TestSuggestDailyGoalFallsBack(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"http error", http.StatusInternalServerError, "boom"},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"no number", http.StatusOK, chatReply(`"drink plenty of water"`)},
		{"malformed json", http.StatusOK, `{{{`},
		{"zero value", http.StatusOK, chatReply(`"0"`)},
	}

	for _, c := range cases {
		srv := suggestionServer(t, c.status, c.body)
		svc := NewSuggestionService(srv.URL, "test-model", "test-key")

		got := svc.SuggestDailyGoal(context.Background(), user.Profile{})
		srv.Close()

		if got != 2.5 {
			t.Errorf("%s: suggested %v, want fallback 2.5", c.name, got)
		}
	}
}

func TestSuggestDailyGoalUnconfigured(t *testing.T) {
	svc := NewSuggestionService("", "", "")
	if got := svc.SuggestDailyGoal(context.Background(), user.Profile{}); got != 2.5 {
		t.Errorf("unconfigured service suggested %v, want fallback 2.5", got)
	}
}

func TestSuggestDailyGoalUnreachableEndpoint(t *testing.T) {
	svc := NewSuggestionService("http://127.0.0.1:1", "test-model", "test-key")
	if got := svc.SuggestDailyGoal(context.Background(), user.Profile{}); got != 2.5 {
		t.Errorf("unreachable endpoint suggested %v, want fallback 2.5", got)
	}
}
