package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/habit-tracker/internal/supabase"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret-jwt-key"

type gotrueStub struct {
	userID    uuid.UUID
	userCalls atomic.Int64
}

// newGoTrue spins up a fake GoTrue that accepts password "letmein" and any
// token minted with testSecret.
func newGoTrue(t *testing.T, stub *gotrueStub) *supabase.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["password"] != "letmein" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"error_description": "Invalid login credentials"})
			return
		}
		_ = json.NewEncoder(w).Encode(supabase.Session{
			AccessToken:  mintToken(t, stub.userID, time.Hour),
			RefreshToken: "refresh",
			ExpiresIn:    3600,
			User:         &supabase.User{ID: stub.userID, Email: creds["email"]},
		})
	})
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		var creds map[string]string
		_ = json.NewDecoder(r.Body).Decode(&creds)
		if creds["email"] == "taken@example.com" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "User already registered"})
			return
		}
		if creds["email"] == "confirm@example.com" {
			// Email confirmation required: user without a session.
			_ = json.NewEncoder(w).Encode(supabase.User{ID: stub.userID, Email: creds["email"]})
			return
		}
		_ = json.NewEncoder(w).Encode(supabase.Session{
			AccessToken: mintToken(t, stub.userID, time.Hour),
			ExpiresIn:   3600,
			User:        &supabase.User{ID: stub.userID, Email: creds["email"]},
		})
	})
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		stub.userCalls.Add(1)
		token := r.Header.Get("Authorization")
		if token == "Bearer revoked-token" || len(token) < len("Bearer x") {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{"msg": "invalid JWT"})
			return
		}
		_ = json.NewEncoder(w).Encode(supabase.User{ID: stub.userID, Email: "ada@example.com"})
	})
	mux.HandleFunc("/auth/v1/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client, err := supabase.New(srv.URL, "anon-key", 5*time.Second)
	require.NoError(t, err)
	return client
}

func mintToken(t *testing.T, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"aud": "authenticated",
		"exp": time.Now().Add(ttl).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestSignInInvalidCredentials(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	_, err := svc.SignIn(context.Background(), "ada@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignInSuccess(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	session, err := svc.SignIn(context.Background(), "ada@example.com", "letmein")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, stub.userID, session.User.ID)
}

func TestSignInRequiresCredentials(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	_, err := svc.SignIn(context.Background(), "", "")
	assert.ErrorIs(t, err, ErrCredentialsRequired)
}

func TestSignUpDuplicateEmailPassesMessageThrough(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	_, err := svc.SignUp(context.Background(), "taken@example.com", "letmein")
	require.Error(t, err)
	assert.EqualError(t, err, "User already registered")
}

func TestSignUpWithoutSessionFails(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	_, err := svc.SignUp(context.Background(), "confirm@example.com", "letmein")
	assert.ErrorIs(t, err, ErrSignUpFailed)
}

func TestResolveUserEmptyToken(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	assert.Nil(t, svc.ResolveUser(context.Background(), ""))
	assert.Zero(t, stub.userCalls.Load(), "empty token must not hit the provider")
}

func TestResolveUserLocalPreCheckSkipsRemoteLookup(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	assert.Nil(t, svc.ResolveUser(context.Background(), "not-a-jwt"))
	assert.Nil(t, svc.ResolveUser(context.Background(), mintToken(t, stub.userID, -time.Hour)))
	assert.Zero(t, stub.userCalls.Load(), "locally invalid tokens must not hit the provider")
}

func TestResolveUserConfirmsRemotely(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	svc := NewAuthService(newGoTrue(t, stub), testSecret)

	user := svc.ResolveUser(context.Background(), mintToken(t, stub.userID, time.Hour))
	require.NotNil(t, user)
	assert.Equal(t, stub.userID, user.ID)
	assert.Equal(t, int64(1), stub.userCalls.Load())
}

func TestResolveUserRevokedTokenIsAnonymous(t *testing.T) {
	stub := &gotrueStub{userID: uuid.New()}
	// No secret configured: the remote lookup is the only check.
	svc := NewAuthService(newGoTrue(t, stub), "")

	assert.Nil(t, svc.ResolveUser(context.Background(), "revoked-token"))
	assert.Equal(t, int64(1), stub.userCalls.Load())
}

func TestResolveUserNetworkFailureIsAnonymous(t *testing.T) {
	client, err := supabase.New("http://127.0.0.1:1", "anon-key", 200*time.Millisecond)
	require.NoError(t, err)
	svc := NewAuthService(client, "")

	assert.Nil(t, svc.ResolveUser(context.Background(), "some-token"))
}

func TestSignOutSurfacesProviderError(t *testing.T) {
	client, err := supabase.New("http://127.0.0.1:1", "anon-key", 200*time.Millisecond)
	require.NoError(t, err)
	svc := NewAuthService(client, testSecret)

	assert.Error(t, svc.SignOut(context.Background(), "token"))
}
