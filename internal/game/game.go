// Package game holds the play-side domain: per-game progress, round
// outcomes, and player statistics. Everything here is pure arithmetic
// over value types; persistence goes through the StatePort.
package game

import "github.com/hyperengineering/between/internal/puzzle"

// AttemptsPerRound is how many guesses a player gets per round.
const AttemptsPerRound = 2

// State tracks a player's progress through one daily puzzle.
type State struct {
	CurrentRound int      `json:"currentRound"`
	Attempts     int      `json:"attempts"`
	Guesses      []string `json:"guesses"`
	IsComplete   bool     `json:"isComplete"`
	IsFailed     bool     `json:"isFailed"`
	StartTime    int64    `json:"startTime"`
	EndTime      int64    `json:"endTime,omitempty"`
}

// RoundResult records the outcome of a single round.
type RoundResult struct {
	RoundIndex    int    `json:"roundIndex"`
	Solved        bool   `json:"solved"`
	Attempts      int    `json:"attempts"`
	CorrectAnswer string `json:"correctAnswer,omitempty"`
}

// CheckGuess evaluates a guess against a round's answer.
func CheckGuess(r puzzle.Round, guess string) bool {
	return puzzle.CheckAnswer(guess, r.Answer)
}
