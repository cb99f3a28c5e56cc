package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/models"
	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/streak"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrNameRequired  = errors.New("habit name is required")
)

// HabitService is the store access layer for habits and their logs. The
// store is authoritative; nothing is cached in-process. Every query and
// mutation is scoped to the owning user.
type HabitService struct {
	db *gorm.DB
}

func NewHabitService(db *gorm.DB) *HabitService {
	return &HabitService{db: db}
}

// ForUser scopes a query to one user's rows. Applied on every read and
// write, including the per-date status lookup, so habits never leak
// across accounts.
func ForUser(userID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func (s *HabitService) ListHabits(userID uuid.UUID) ([]models.Habit, error) {
	var habits []models.Habit
	if err := s.db.Scopes(ForUser(userID)).Order("created_at ASC").Find(&habits).Error; err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}
	return habits, nil
}

// ListHabitsForDate returns the user's habits with that date's completion
// state. A habit with no log for the date gets a nil status; absence of a
// record is a normal state, not an implicit false.
func (s *HabitService) ListHabitsForDate(userID uuid.UUID, date time.Time) ([]dto.HabitStatus, error) {
	habits, err := s.ListHabits(userID)
	if err != nil {
		return nil, err
	}

	var logs []models.HabitLog
	if err := s.db.Scopes(ForUser(userID)).Where("date = ?", datatypes.Date(date)).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}

	completed := make(map[uint]bool, len(logs))
	for _, log := range logs {
		completed[log.HabitID] = log.Completed
	}

	statuses := make([]dto.HabitStatus, 0, len(habits))
	for _, habit := range habits {
		status := dto.HabitStatus{Habit: habit}
		if done, ok := completed[habit.ID]; ok {
			status.Completed = &done
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (s *HabitService) CreateHabit(userID uuid.UUID, req dto.CreateHabitRequest) (*models.Habit, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	habit := models.Habit{
		Name:       name,
		IsGood:     req.IsGood,
		GoalStreak: req.GoalStreak,
		UserID:     userID,
	}

	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return &habit, nil
}

// UpdateHabit applies the non-nil fields of req. Streak columns are owned
// by the recompute path and cannot be set here.
func (s *HabitService) UpdateHabit(userID uuid.UUID, habitID uint, req dto.UpdateHabitRequest) (*models.Habit, error) {
	var habit models.Habit
	err := s.db.Scopes(ForUser(userID)).Where("id = ?", habitID).First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		habit.Name = name
	}
	if req.IsGood != nil {
		habit.IsGood = *req.IsGood
	}
	if req.GoalStreak != nil {
		habit.GoalStreak = req.GoalStreak
	}

	if err := s.db.Save(&habit).Error; err != nil {
		return nil, fmt.Errorf("failed to update habit: %w", err)
	}
	return &habit, nil
}

// DeleteHabit removes a habit and its logs in one transaction so no
// orphaned logs survive.
func (s *HabitService) DeleteHabit(userID uuid.UUID, habitID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(ForUser(userID)).Where("habit_id = ?", habitID).Delete(&models.HabitLog{}).Error; err != nil {
			return fmt.Errorf("failed to delete habit logs: %w", err)
		}

		result := tx.Scopes(ForUser(userID)).Where("id = ?", habitID).Delete(&models.Habit{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete habit: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrHabitNotFound
		}
		return nil
	})
}

// ToggleLog flips the completion log for (habit, date), creating it as
// completed when absent: the first toggle of a day always marks the habit
// done, never un-done. Streaks are recomputed and persisted afterward.
// Toggle and recompute are separate statements; two concurrent toggles on
// the same habit can interleave, which the store's last write wins on.
func (s *HabitService) ToggleLog(userID uuid.UUID, habitID uint, date time.Time) (*models.HabitLog, error) {
	var habit models.Habit
	err := s.db.Scopes(ForUser(userID)).Where("id = ?", habitID).First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrHabitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find habit: %w", err)
	}

	day := datatypes.Date(date)

	var log models.HabitLog
	err = s.db.Scopes(ForUser(userID)).Where("habit_id = ? AND date = ?", habitID, day).First(&log).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		log = models.HabitLog{
			HabitID:   habitID,
			Date:      day,
			Completed: true,
			UserID:    userID,
		}
		if err := s.db.Create(&log).Error; err != nil {
			return nil, fmt.Errorf("failed to create log: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to find log: %w", err)
	default:
		log.Completed = !log.Completed
		if err := s.db.Save(&log).Error; err != nil {
			return nil, fmt.Errorf("failed to update log: %w", err)
		}
	}

	if err := s.recomputeStreaks(userID, habitID); err != nil {
		return nil, err
	}
	return &log, nil
}

func (s *HabitService) ListLogs(userID uuid.UUID, habitID uint) ([]models.HabitLog, error) {
	var logs []models.HabitLog
	err := s.db.Scopes(ForUser(userID)).Where("habit_id = ?", habitID).Order("date ASC").Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	return logs, nil
}

func (s *HabitService) recomputeStreaks(userID uuid.UUID, habitID uint) error {
	logs, err := s.ListLogs(userID, habitID)
	if err != nil {
		return err
	}

	current, longest := streak.Calculate(logs)

	err = s.db.Model(&models.Habit{}).Scopes(ForUser(userID)).Where("id = ?", habitID).
		Updates(map[string]interface{}{
			"current_streak": current,
			"longest_streak": longest,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update streaks: %w", err)
	}
	return nil
}
