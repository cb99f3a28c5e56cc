package handlers

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/dto"
	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/services"
	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/supabase"
	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	session, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	setAuthCookie(c, session)
	return c.JSON(dto.SuccessResponse{Success: true})
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	session, err := h.auth.SignUp(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	setAuthCookie(c, session)
	return c.JSON(dto.SuccessResponse{Success: true})
}

// Logout is idempotent from the caller's view: the cookie is cleared and
// success returned even when the token is already dead server-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if token := c.Cookies("access_token"); token != "" {
		if err := h.auth.SignOut(c.UserContext(), token); err != nil {
			slog.Warn("sign out failed", "error", err)
		}
	}

	clearAuthCookie(c)
	return c.JSON(dto.SuccessResponse{Success: true})
}

func setAuthCookie(c *fiber.Ctx, session *supabase.Session) {
	expires := time.Now().Add(time.Duration(session.ExpiresIn) * time.Second)
	if session.ExpiresIn == 0 {
		expires = time.Now().Add(1 * time.Hour)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    session.AccessToken,
		Path:     "/",
		Expires:  expires,
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
