package game

import (
	"time"

	"github.com/hyperengineering/between/internal/puzzle"
)

// PlayerStats are cumulative win/streak statistics for one player.
type PlayerStats struct {
	GamesPlayed    int    `json:"gamesPlayed"`
	GamesWon       int    `json:"gamesWon"`
	CurrentStreak  int    `json:"currentStreak"`
	MaxStreak      int    `json:"maxStreak"`
	LastPlayedDate string `json:"lastPlayedDate,omitempty"`
}

// UpdateForGame returns the stats after finishing a game on the given
// date. A win on the day after the last played date extends the
// streak; a win after a gap restarts it at 1; a loss resets it.
// Playing twice on the same day counts the game but leaves the streak
// untouched.
func (s PlayerStats) UpdateForGame(won bool, today string) PlayerStats {
	lastPlayed := s.LastPlayedDate
	s.GamesPlayed++

	if won {
		s.GamesWon++

		switch {
		case lastPlayed == today:
			// Already played today; streak unchanged.
		case lastPlayed != "" && isConsecutiveDay(lastPlayed, today):
			s.CurrentStreak++
		default:
			s.CurrentStreak = 1
		}

		if s.CurrentStreak > s.MaxStreak {
			s.MaxStreak = s.CurrentStreak
		}
	} else {
		s.CurrentStreak = 0
	}

	s.LastPlayedDate = today
	return s
}

func isConsecutiveDay(prev, next string) bool {
	d1, err1 := time.Parse(puzzle.DateFormat, prev)
	d2, err2 := time.Parse(puzzle.DateFormat, next)
	if err1 != nil || err2 != nil {
		return false
	}
	diff := d2.Sub(d1)
	if diff < 0 {
		diff = -diff
	}
	return diff == 24*time.Hour
}
