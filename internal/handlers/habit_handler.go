package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/services"
	"github.com/gofiber/fiber/v2"
)

type HabitHandler struct {
	habits *services.HabitService
}

func NewHabitHandler(habits *services.HabitService) *HabitHandler {
	return &HabitHandler{habits: habits}
}

// Index renders the habit management page with today's completion state.
func (h *HabitHandler) Index(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	statuses, err := h.habits.ListHabitsForDate(user.ID, time.Now().UTC())
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.Type("html").SendString(renderHabitsPage(user.Email, statuses))
}

func (h *HabitHandler) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.CreateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	habit, err := h.habits.CreateHabit(user.ID, req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(habit)
}

func (h *HabitHandler) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid habit ID",
		})
	}

	var req dto.UpdateHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	habit, err := h.habits.UpdateHabit(user.ID, habitID, req)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(habit)
}

func (h *HabitHandler) Delete(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid habit ID",
		})
	}

	if err := h.habits.DeleteHabit(user.ID, habitID); err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.SuccessResponse{Success: true})
}

// Toggle flips today's completion log for a habit and returns the log with
// freshly recomputed streaks persisted on the habit.
func (h *HabitHandler) Toggle(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	habitID, err := parseHabitID(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid habit ID",
		})
	}

	log, err := h.habits.ToggleLog(user.ID, habitID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(dto.NewHabitLogResponse(*log))
}

func parseHabitID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func renderHabitsPage(email string, statuses []dto.HabitStatus) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html><head><title>Manage Habits - Habit Tracker</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="/static/style.css">
</head><body>
<header><h1>Manage Habits</h1><p>` + htmlEscape(email) + ` · <a href="/">Home</a></p></header>
<ul class="habits">`)

	for _, st := range statuses {
		kind := "bad"
		if st.Habit.IsGood {
			kind = "good"
		}
		today := "not logged today"
		if st.Completed != nil {
			if *st.Completed {
				today = "done today"
			} else {
				today = "missed today"
			}
		}
		b.WriteString(fmt.Sprintf(
			`<li class="habit %s" data-id="%d"><span class="name">%s</span> <span class="streak">current %d · longest %d</span> <span class="today">%s</span></li>`,
			kind, st.Habit.ID, htmlEscape(st.Habit.Name), st.Habit.CurrentStreak, st.Habit.LongestStreak, today,
		))
	}

	b.WriteString(`</ul>
</body></html>`)
	return b.String()
}
