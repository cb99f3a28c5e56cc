// Package streak recomputes habit streaks from completion logs.
package streak

import "github.com/ahmetcoskunkizilkaya/habit-tracker/internal/models"

// Calculate returns the current and longest streak for a habit's logs.
// Logs must be ordered by date ascending. Dates with no log are absence,
// not failure; only explicit completed=false entries break a run.
func Calculate(logs []models.HabitLog) (current, longest int) {
	// Current streak: consecutive completed entries ending at the most
	// recent log. The first completed=false seen walking backward ends it.
	for i := len(logs) - 1; i >= 0; i-- {
		if !logs[i].Completed {
			break
		}
		current++
	}

	run := 0
	for _, log := range logs {
		if log.Completed {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	return current, longest
}
