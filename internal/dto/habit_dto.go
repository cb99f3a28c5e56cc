package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/models"
)

type CreateHabitRequest struct {
	Name       string `json:"name"`
	IsGood     bool   `json:"is_good"`
	GoalStreak *int   `json:"goal_streak"`
}

// UpdateHabitRequest carries partial updates; nil fields are left unchanged.
type UpdateHabitRequest struct {
	Name       *string `json:"name"`
	IsGood     *bool   `json:"is_good"`
	GoalStreak *int    `json:"goal_streak"`
}

type HabitLogResponse struct {
	ID        uint      `json:"id"`
	HabitID   uint      `json:"habit_id"`
	Date      string    `json:"date"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewHabitLogResponse(log models.HabitLog) HabitLogResponse {
	return HabitLogResponse{
		ID:        log.ID,
		HabitID:   log.HabitID,
		Date:      time.Time(log.Date).Format("2006-01-02"),
		Completed: log.Completed,
		UserID:    log.UserID.String(),
		CreatedAt: log.CreatedAt,
		UpdatedAt: log.UpdatedAt,
	}
}

// HabitStatus pairs a habit with its completion state for one date.
// Completed is nil when no log exists for that date; absence is a normal
// state, not an error or an implicit false.
type HabitStatus struct {
	Habit     models.Habit `json:"habit"`
	Completed *bool        `json:"completed"`
}
