package models

import (
	"time"

	"github.com/google/uuid"
)

// Habit is a user-defined behavior tracked daily, flagged good or bad.
// Every query against this table must be scoped by UserID; habits belong
// to exactly one user and must never leak across accounts.
type Habit struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"size:255;not null;index" json:"name"`
	IsGood        bool      `gorm:"not null;default:true" json:"is_good"`
	GoalStreak    *int      `json:"goal_streak"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	CurrentStreak int       `gorm:"not null;default:0" json:"current_streak"`
	LongestStreak int       `gorm:"not null;default:0" json:"longest_streak"`
	CreatedAt     time.Time `json:"created_at"`
}
