package handlers

import (
	"strings"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// PageHandler serves the server-rendered pages. Rendering is deliberately
// minimal; the interesting behavior lives in the JSON endpoints.
type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// Home renders for both anonymous and signed-in visitors; a failed token
// resolution degrades to the logged-out view instead of an error.
func (h *PageHandler) Home(c *fiber.Ctx) error {
	nav := `<a href="/login">Login</a> · <a href="/signup">Sign Up</a>`
	if user := middleware.CurrentUser(c); user != nil {
		nav = htmlEscape(user.Email) + ` · <a href="/habits">My Habits</a>`
	}

	return c.Type("html").SendString(`<!DOCTYPE html>
<html><head><title>Habit Tracker</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="/static/style.css">
</head><body>
<header><h1>Habit Tracker</h1><p>` + nav + `</p></header>
<main><p>A minimalist habit tracking application. Define good or bad habits, check them off daily, keep your streaks alive.</p></main>
</body></html>`)
}

func (h *PageHandler) LoginPage(c *fiber.Ctx) error {
	return c.Type("html").SendString(credentialsPage("Login", "/login"))
}

func (h *PageHandler) SignupPage(c *fiber.Ctx) error {
	return c.Type("html").SendString(credentialsPage("Sign Up", "/signup"))
}

func credentialsPage(title, action string) string {
	return `<!DOCTYPE html>
<html><head><title>` + title + ` - Habit Tracker</title>
<meta name="viewport" content="width=device-width, initial-scale=1">
<link rel="stylesheet" href="/static/style.css">
</head><body>
<header><h1>` + title + `</h1><p><a href="/">Home</a></p></header>
<form id="credentials">
<label>Email <input type="email" name="email" required></label>
<label>Password <input type="password" name="password" required></label>
<button type="submit">` + title + `</button>
<p id="message"></p>
</form>
<script>
document.getElementById("credentials").addEventListener("submit", async function (e) {
  e.preventDefault();
  const data = Object.fromEntries(new FormData(e.target));
  const resp = await fetch("` + action + `", {
    method: "POST",
    headers: {"Content-Type": "application/json"},
    body: JSON.stringify(data),
  });
  const body = await resp.json();
  if (resp.ok && body.success) {
    window.location.href = "/habits";
  } else {
    document.getElementById("message").textContent = body.message || "Request failed";
  }
});
</script>
</body></html>`
}

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

func htmlEscape(s string) string {
	return htmlEscaper.Replace(s)
}
