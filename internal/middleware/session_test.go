package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/supabase"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubResolver resolves "valid-token" to its user and nothing else.
type stubResolver struct {
	user *supabase.User
}

func (s *stubResolver) ResolveUser(_ context.Context, accessToken string) *supabase.User {
	if accessToken == "valid-token" {
		return s.user
	}
	return nil
}

func newSessionApp(resolver UserResolver) *fiber.App {
	app := fiber.New()
	app.Use(Session(resolver))
	app.Get("/", func(c *fiber.Ctx) error {
		if user := CurrentUser(c); user != nil {
			return c.SendString("hello " + user.Email)
		}
		return c.SendString("hello anonymous")
	})
	app.Get("/login", func(c *fiber.Ctx) error { return c.SendString("login") })
	app.Get("/habits", func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return fiber.ErrUnauthorized
		}
		return c.SendString("habits for " + user.Email)
	})
	return app
}

func TestProtectedPathRedirectsAnonymous(t *testing.T) {
	app := newSessionApp(&stubResolver{})

	resp, err := app.Test(httptest.NewRequest("GET", "/habits", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestProtectedPathRedirectsOnUnresolvableToken(t *testing.T) {
	app := newSessionApp(&stubResolver{})

	req := httptest.NewRequest("GET", "/habits", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "expired-token"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestHomeRendersAnonymously(t *testing.T) {
	app := newSessionApp(&stubResolver{})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestResolvedUserIsAttached(t *testing.T) {
	user := &supabase.User{ID: uuid.New(), Email: "ada@example.com"}
	app := newSessionApp(&stubResolver{user: user})

	req := httptest.NewRequest("GET", "/habits", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "valid-token"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestPublicPathStillAttachesUser(t *testing.T) {
	user := &supabase.User{ID: uuid.New(), Email: "ada@example.com"}
	app := newSessionApp(&stubResolver{user: user})

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: "valid-token"})

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestStaticPrefixIsPublic(t *testing.T) {
	assert.True(t, isPublic("/static/style.css"))
	assert.True(t, isPublic("/health"))
	assert.False(t, isPublic("/habits"))
	assert.False(t, isPublic("/habits/1/toggle"))
}
