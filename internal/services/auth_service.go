package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/supabase"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrCredentialsRequired = errors.New("email and password are required")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSignUpFailed        = errors.New("sign up failed")
)

// AuthService is a thin gateway to the identity provider. It owns no user
// state; every operation is a single remote call.
type AuthService struct {
	gotrue *supabase.Client
	secret []byte
}

// NewAuthService wraps the GoTrue client. jwtSecret is the project JWT
// secret; when non-empty, ResolveUser pre-checks tokens locally before the
// remote lookup.
func NewAuthService(gotrue *supabase.Client, jwtSecret string) *AuthService {
	var secret []byte
	if jwtSecret != "" {
		secret = []byte(jwtSecret)
	}
	return &AuthService{gotrue: gotrue, secret: secret}
}

// SignUp registers a new user with the provider. Provider rejections
// (duplicate email, weak password) pass through with their message.
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*supabase.Session, error) {
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	session, err := s.gotrue.SignUp(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if session.AccessToken == "" || session.User == nil {
		// Happens when the project requires email confirmation; without a
		// session there is nothing to set a cookie from.
		return nil, ErrSignUpFailed
	}
	return session, nil
}

// SignIn authenticates with the provider via the password grant.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*supabase.Session, error) {
	if email == "" || password == "" {
		return nil, ErrCredentialsRequired
	}

	session, err := s.gotrue.SignInWithPassword(ctx, email, password)
	if err != nil {
		var authErr *supabase.Error
		if errors.As(err, &authErr) && authErr.StatusCode < 500 {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if session.AccessToken == "" || session.User == nil {
		return nil, ErrInvalidCredentials
	}
	return session, nil
}

// SignOut invalidates the session server-side. Callers clear the cookie
// regardless of the outcome, so an already-dead token is not fatal.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	if err := s.gotrue.SignOut(ctx, accessToken); err != nil {
		return fmt.Errorf("sign out: %w", err)
	}
	return nil
}

// ResolveUser maps an access token to its user, or nil on any failure
// (expired, invalid, network). Failing open to anonymous is deliberate:
// public pages render a logged-out view instead of erroring.
func (s *AuthService) ResolveUser(ctx context.Context, accessToken string) *supabase.User {
	if accessToken == "" {
		return nil
	}

	// Cheap local check against the project JWT secret. A token that fails
	// signature or expiry here cannot resolve remotely either, so skip the
	// round-trip. A locally valid token is still confirmed with the
	// provider so server-side revocation holds.
	if len(s.secret) > 0 {
		parsed, err := jwt.Parse(accessToken, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		})
		if err != nil || !parsed.Valid {
			return nil
		}
	}

	user, err := s.gotrue.GetUser(ctx, accessToken)
	if err != nil {
		slog.Debug("token resolution failed", "error", err)
		return nil
	}
	return user
}
