package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hyperengineering/between/internal/game"
	"github.com/hyperengineering/between/internal/history"
	"github.com/hyperengineering/between/internal/puzzle"
)

// PuzzleService is the orchestrator surface the handlers need.
type PuzzleService interface {
	DailyPuzzle(ctx context.Context, date string) (*puzzle.DailyPuzzle, error)
	Regenerate(ctx context.Context, date string) (*puzzle.DailyPuzzle, error)
}

// HistoryReader is the read-only store surface the handlers need.
type HistoryReader interface {
	DailyPuzzle(ctx context.Context, date string) (*puzzle.DailyPuzzle, error)
	PuzzleCount(ctx context.Context) (int64, error)
	LatestDate(ctx context.Context) (string, error)
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Model       string `json:"model"`
	PuzzleCount int64  `json:"puzzle_count"`
	LatestDate  string `json:"latest_date,omitempty"`
}

// GuessRequest is a guess against one round of a dated puzzle.
type GuessRequest struct {
	Round int    `json:"round"`
	Guess string `json:"guess"`
}

// GuessResponse reports whether a guess was correct.
type GuessResponse struct {
	Correct bool `json:"correct"`
}

// Handler implements the API handlers
type Handler struct {
	puzzles PuzzleService
	store   HistoryReader
	model   string
	apiKey  string
	version string

	// now is replaced in tests to pin the default date.
	now func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(puzzles PuzzleService, store HistoryReader, model, apiKey, version string) *Handler {
	return &Handler{
		puzzles: puzzles,
		store:   store,
		model:   model,
		apiKey:  apiKey,
		version: version,
		now:     time.Now,
	}
}

// Health returns the health status
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.store.PuzzleCount(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	latest, err := h.store.LatestDate(r.Context())
	if err != nil {
		WriteProblem(w, r, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	resp := HealthResponse{
		Status:      "healthy",
		Version:     h.version,
		Model:       h.model,
		PuzzleCount: count,
		LatestDate:  latest,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetPuzzle handles GET /api/v1/puzzle?date=YYYY-MM-DD
func (h *Handler) GetPuzzle(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		date = h.now().UTC().Format(puzzle.DateFormat)
	}
	if !validDate(date) {
		WriteProblem(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	p, err := h.puzzles.DailyPuzzle(r.Context(), date)
	if err != nil {
		slog.Error("puzzle delivery failed", "date", date, "error", err)
		MapPuzzleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

// CheckGuess handles POST /api/v1/puzzle/{date}/guess. It only checks
// against puzzles already issued; it never triggers generation.
func (h *Handler) CheckGuess(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !validDate(date) {
		WriteProblem(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	var req GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteProblem(w, r, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	p, err := h.store.DailyPuzzle(r.Context(), date)
	if err != nil {
		MapPuzzleError(w, r, err)
		return
	}

	if req.Round < 0 || req.Round >= len(p.Rounds) {
		WriteProblem(w, r, http.StatusUnprocessableEntity, "round index out of range")
		return
	}

	resp := GuessResponse{Correct: game.CheckGuess(p.Rounds[req.Round], req.Guess)}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// RegeneratePuzzle handles POST /api/v1/puzzle/{date}/regenerate.
// Auth-protected; replaces whatever is stored for the date.
func (h *Handler) RegeneratePuzzle(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if !validDate(date) {
		WriteProblem(w, r, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	p, err := h.puzzles.Regenerate(r.Context(), date)
	if err != nil {
		slog.Error("puzzle regeneration failed", "date", date, "error", err)
		MapPuzzleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(p)
}

func validDate(date string) bool {
	_, err := time.Parse(puzzle.DateFormat, date)
	return err == nil
}

var _ HistoryReader = (history.Store)(nil)
