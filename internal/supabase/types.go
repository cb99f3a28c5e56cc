package supabase

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Session is the token pair GoTrue issues on sign-up and sign-in.
type Session struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// User is the identity record owned by GoTrue. It is never persisted locally.
type User struct {
	ID        uuid.UUID  `json:"id"`
	Aud       string     `json:"aud"`
	Role      string     `json:"role"`
	Email     string     `json:"email"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

// Error is a GoTrue error response.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("auth request failed with status %d", e.StatusCode)
}

// parseError extracts a message from the several error shapes GoTrue returns.
func parseError(body []byte, statusCode int) error {
	var payload struct {
		Msg              string `json:"msg"`
		Message          string `json:"message"`
		Err              string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	message := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Msg != "":
			message = payload.Msg
		case payload.Message != "":
			message = payload.Message
		case payload.ErrorDescription != "":
			message = payload.ErrorDescription
		case payload.Err != "":
			message = payload.Err
		}
	}
	return &Error{StatusCode: statusCode, Message: message}
}
