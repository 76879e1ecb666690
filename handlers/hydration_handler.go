package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"waterBuddyAPI/internal/ledger"
	"waterBuddyAPI/internal/store"
	"waterBuddyAPI/middleware"
	"waterBuddyAPI/services"
)

type HydrationHandler struct {
	hydrationService *services.HydrationService
}

func NewHydrationHandler(hydrationService *services.HydrationService) *HydrationHandler {
	return &HydrationHandler{
		hydrationService: hydrationService,
	}
}

// AddIntake logs one water amount. The amount is free text ("700", "700ml",
// "700 ml"); anything that does not reduce to a positive number is rejected
// with 400 and no state change.
func (h *HydrationHandler) AddIntake(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username, ok := middleware.GetUsername(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	var body struct {
		Amount string `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.hydrationService.RecordIntake(ctx, username, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrInvalidAmount):
			respondWithError(w, http.StatusBadRequest, "Please enter a valid amount like 700, 700ml, or 700 ml")
		case errors.Is(err, store.ErrNotFound):
			respondWithError(w, http.StatusNotFound, "User not found")
		default:
			respondWithError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	middleware.ObserveIntakeRecorded()
	if resp.DayCompleted {
		middleware.ObserveGoalDayCompleted()
	}

	respondWithJSON(w, http.StatusCreated, resp)
}

func (h *HydrationHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username, ok := middleware.GetUsername(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	resp, err := h.hydrationService.GetToday(ctx, username)
	if err != nil {
		respondHydrationError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func (h *HydrationHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username, ok := middleware.GetUsername(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	entries, err := h.hydrationService.GetLedger(ctx, username)
	if err != nil {
		respondHydrationError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, entries)
}

func (h *HydrationHandler) GetStreak(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username, ok := middleware.GetUsername(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	record, err := h.hydrationService.GetStreak(ctx, username)
	if err != nil {
		respondHydrationError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

func (h *HydrationHandler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username, ok := middleware.GetUsername(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	year := r.URL.Query().Get("year")
	month := r.URL.Query().Get("month")
	if year == "" || month == "" {
		respondWithError(w, http.StatusBadRequest, "year and month are required")
		return
	}

	var yearInt, monthInt int
	if _, err := fmt.Sscanf(year, "%d", &yearInt); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid year format")
		return
	}
	if _, err := fmt.Sscanf(month, "%d", &monthInt); err != nil || monthInt < 1 || monthInt > 12 {
		respondWithError(w, http.StatusBadRequest, "invalid month format")
		return
	}

	view, err := h.hydrationService.GetCalendar(ctx, username, yearInt, time.Month(monthInt))
	if err != nil {
		respondHydrationError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, view)
}

func (h *HydrationHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username, ok := middleware.GetUsername(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	stats, err := h.hydrationService.GetStats(ctx, username)
	if err != nil {
		respondHydrationError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, stats)
}

func (h *HydrationHandler) CheckReminder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	username, ok := middleware.GetUsername(ctx)
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "User not identified")
		return
	}

	resp, err := h.hydrationService.CheckReminder(ctx, username)
	if err != nil {
		respondHydrationError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

func respondHydrationError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	respondWithError(w, http.StatusInternalServerError, err.Error())
}
