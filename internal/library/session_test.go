package library

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/services"
	"github.com/desertthunder/uta/internal/shared"
)

func newTestSession(t *testing.T, handler http.HandlerFunc) *Session {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	backend := services.NewBackendClient(server.URL, server.Client())
	return NewSession(backend, nil)
}

func TestSessionRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Replaces Current User", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			json.NewEncoder(w).Encode(models.User{
				ID:          1,
				Email:       q.Get("email"),
				DisplayName: q.Get("displayName"),
			})
		})

		user, err := s.Register(ctx, "singer@example.com", "secret", "歌姫")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		if user.ID != 1 || user.DisplayName != "歌姫" {
			t.Errorf("unexpected user %+v", user)
		}
		if !s.LoggedIn() {
			t.Error("expected session to be logged in")
		}
	})

	t.Run("Missing Fields Fail Client-Side", func(t *testing.T) {
		requested := false
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			requested = true
		})

		_, err := s.Register(ctx, "", "secret", "name")
		if !errors.Is(err, shared.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
		if requested {
			t.Error("invalid input must not reach the backend")
		}
		if s.LoggedIn() {
			t.Error("session must stay logged out")
		}
	})

	t.Run("Backend Rejection Surfaces Its Message", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "email already registered"})
		})

		_, err := s.Register(ctx, "taken@example.com", "secret", "name")
		if !errors.Is(err, shared.ErrAuth) {
			t.Fatalf("expected ErrAuth, got %v", err)
		}
		if !strings.Contains(err.Error(), "email already registered") {
			t.Errorf("expected backend message preserved, got %v", err)
		}
	})
}

func TestSessionLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Successful Login", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.User{ID: 7, Email: "singer@example.com"})
		})

		user, err := s.Login(ctx, "singer@example.com", "secret")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if user.ID != 7 {
			t.Errorf("expected user id 7, got %d", user.ID)
		}
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
		})

		_, err := s.Login(ctx, "singer@example.com", "wrong")
		if !errors.Is(err, shared.ErrAuth) {
			t.Errorf("expected ErrAuth, got %v", err)
		}
		if s.LoggedIn() {
			t.Error("failed login must not set a user")
		}
	})

	t.Run("Failed Login Keeps Previous User", func(t *testing.T) {
		calls := 0
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
			if calls > 1 {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			json.NewEncoder(w).Encode(models.User{ID: 7, Email: "singer@example.com"})
		})

		if _, err := s.Login(ctx, "singer@example.com", "secret"); err != nil {
			t.Fatalf("first login failed: %v", err)
		}
		if _, err := s.Login(ctx, "other@example.com", "wrong"); err == nil {
			t.Fatal("expected error")
		}

		if user := s.CurrentUser(); user == nil || user.ID != 7 {
			t.Errorf("expected previous user preserved, got %+v", user)
		}
	})

	t.Run("Loading Flag Cleared After Call", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(models.User{ID: 1})
		})

		s.Login(ctx, "a@b.c", "pw")
		if s.IsLoading() {
			t.Error("loading flag must be cleared when the call resolves")
		}
	})
}

func TestSessionFetchUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Resynchronizes State", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			if !strings.HasSuffix(r.URL.Path, "/api/auth/me/7") {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode(models.User{ID: 7, DisplayName: "renamed"})
		})

		user, err := s.FetchUser(ctx, 7)
		if err != nil {
			t.Fatalf("FetchUser failed: %v", err)
		}
		if user.DisplayName != "renamed" {
			t.Errorf("expected refreshed record, got %+v", user)
		}
	})

	t.Run("Unknown Id", func(t *testing.T) {
		s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := s.FetchUser(ctx, 404)
		if !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestSessionLogout(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: 1})
	})

	if _, err := s.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	s.Logout()

	if s.LoggedIn() {
		t.Error("expected session logged out")
	}
	if s.CurrentUser() != nil {
		t.Error("expected nil current user")
	}
}

func TestSessionCurrentUserCopy(t *testing.T) {
	s := newTestSession(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.User{ID: 1, DisplayName: "original"})
	})

	if _, err := s.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	user := s.CurrentUser()
	user.DisplayName = "mutated"

	if s.CurrentUser().DisplayName != "original" {
		t.Error("mutating the returned user must not affect session state")
	}
}
