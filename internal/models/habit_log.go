package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// HabitLog is one day's completion record for a habit. At most one log
// exists per (habit_id, date); toggling an existing date flips Completed
// instead of inserting. Logs are only removed by cascading habit deletion.
type HabitLog struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	HabitID   uint           `gorm:"not null;uniqueIndex:idx_habit_logs_habit_date" json:"habit_id"`
	Habit     Habit          `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_habit_logs_habit_date" json:"date"`
	Completed bool           `gorm:"not null;default:false" json:"completed"`
	UserID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
