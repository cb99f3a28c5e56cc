package middleware

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/supabase"
	"github.com/gofiber/fiber/v2"
)

// UserResolver maps an access token to its user, nil on any failure.
type UserResolver interface {
	ResolveUser(ctx context.Context, accessToken string) *supabase.User
}

const userLocalKey = "current_user"

// Paths reachable without a session. Identity is still resolved and
// attached when a cookie is present so these pages can render a
// logged-in view.
var publicPaths = map[string]struct{}{
	"/":       {},
	"/health": {},
	"/login":  {},
	"/signup": {},
}

// Session resolves the caller's identity from the access_token cookie on
// every request. Unauthenticated requests to protected paths are redirected
// to the login page; the downstream handler never runs. Resolution is one
// remote lookup per request with no cross-request caching — a known
// limitation, accepted for now.
func Session(auth UserResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var user *supabase.User
		if token := c.Cookies("access_token"); token != "" {
			user = auth.ResolveUser(c.UserContext(), token)
		}

		if user == nil && !isPublic(c.Path()) {
			return c.Redirect("/login", fiber.StatusSeeOther)
		}

		if user != nil {
			c.Locals(userLocalKey, user)
		}
		return c.Next()
	}
}

func isPublic(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	return path == "/static" || strings.HasPrefix(path, "/static/")
}

// CurrentUser returns the identity attached by Session, or nil for an
// anonymous request on a public path.
func CurrentUser(c *fiber.Ctx) *supabase.User {
	if user, ok := c.Locals(userLocalKey).(*supabase.User); ok {
		return user
	}
	return nil
}
