package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/shared"
	th "github.com/desertthunder/uta/internal/testing"
)

func TestBackendClient(t *testing.T) {
	ctx := context.Background()

	t.Run("ListSongs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/songs" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			json.NewEncoder(w).Encode([]models.Song{
				{ID: 1, Title: "Lemon", Artist: "米津玄師"},
			})
		}))
		defer server.Close()

		client := NewBackendClient(server.URL, server.Client())

		songs, err := client.ListSongs(ctx)
		if err != nil {
			t.Fatalf("ListSongs failed: %v", err)
		}
		if len(songs) != 1 || songs[0].Title != "Lemon" {
			t.Errorf("unexpected songs %+v", songs)
		}
	})

	t.Run("CreateSong Sends JSON Body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("expected POST, got %s", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("expected JSON content type, got %s", ct)
			}

			var req models.SongRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				t.Fatalf("failed to decode request: %v", err)
			}
			json.NewEncoder(w).Encode(models.Song{ID: 10, Title: *req.Title, Artist: *req.Artist})
		}))
		defer server.Close()

		client := NewBackendClient(server.URL, server.Client())

		song, err := client.CreateSong(ctx, models.RequestFromSong(models.Song{Title: "Lemon", Artist: "米津玄師"}))
		if err != nil {
			t.Fatalf("CreateSong failed: %v", err)
		}
		if song.ID != 10 {
			t.Errorf("expected id 10, got %d", song.ID)
		}
	})

	t.Run("DeleteSong Accepts 204", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/songs/3" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		client := NewBackendClient(server.URL, server.Client())

		if err := client.DeleteSong(ctx, 3); err != nil {
			t.Errorf("DeleteSong failed: %v", err)
		}
	})

	t.Run("Error Mapping", func(t *testing.T) {
		t.Run("404 Wraps ErrNotFound", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			}))
			defer server.Close()

			client := NewBackendClient(server.URL, server.Client())

			_, err := client.GetSong(ctx, 99)
			if !errors.Is(err, shared.ErrNotFound) {
				t.Errorf("expected ErrNotFound, got %v", err)
			}
		})

		t.Run("Transport Failure Wraps ErrNetwork", func(t *testing.T) {
			httpClient := &http.Client{
				Transport: th.NewMockRoundTripper(nil, errors.New("connection refused")),
			}
			client := NewBackendClient("http://localhost:1", httpClient)

			_, err := client.ListSongs(ctx)
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("expected ErrNetwork, got %v", err)
			}
		})

		t.Run("Backend Message Is Preserved", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string]string{"message": "title is required"})
			}))
			defer server.Close()

			client := NewBackendClient(server.URL, server.Client())

			_, err := client.CreateSong(ctx, models.SongRequest{})
			if err == nil || !strings.Contains(err.Error(), "title is required") {
				t.Errorf("expected backend message in error, got %v", err)
			}
		})

		t.Run("Malformed Body Falls Back To Status", func(t *testing.T) {
			resp := &http.Response{
				StatusCode: http.StatusInternalServerError,
				Body:       &th.FCloser{},
				Header:     make(http.Header),
			}
			httpClient := &http.Client{Transport: th.NewMockRoundTripper(resp, nil)}
			client := NewBackendClient("http://localhost:1", httpClient)

			_, err := client.ListSongs(ctx)
			if err == nil || !strings.Contains(err.Error(), "500") {
				t.Errorf("expected status in error, got %v", err)
			}
		})
	})

	t.Run("Auth Endpoints", func(t *testing.T) {
		t.Run("Credentials Travel As Query Parameters", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("email") != "singer@example.com" || q.Get("password") != "secret" {
					t.Errorf("missing credentials in query: %v", q)
				}
				if r.ContentLength > 0 {
					t.Error("auth request should carry no body")
				}
				json.NewEncoder(w).Encode(models.User{ID: 1, Email: q.Get("email")})
			}))
			defer server.Close()

			client := NewBackendClient(server.URL, server.Client())

			user, err := client.Login(ctx, "singer@example.com", "secret")
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if user.Email != "singer@example.com" {
				t.Errorf("unexpected user %+v", user)
			}
		})

		t.Run("Rejection Maps To ErrAuth", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
			}))
			defer server.Close()

			client := NewBackendClient(server.URL, server.Client())

			_, err := client.Login(ctx, "a@b.c", "wrong")
			if !errors.Is(err, shared.ErrAuth) {
				t.Errorf("expected ErrAuth, got %v", err)
			}
		})

		t.Run("Network Failure Passes Through", func(t *testing.T) {
			httpClient := &http.Client{
				Transport: th.NewMockRoundTripper(nil, errors.New("connection refused")),
			}
			client := NewBackendClient("http://localhost:1", httpClient)

			_, err := client.Login(ctx, "a@b.c", "pw")
			if !errors.Is(err, shared.ErrNetwork) {
				t.Errorf("auth mapping must not swallow network errors, got %v", err)
			}
		})
	})

	t.Run("Stats Endpoints", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/api/stats/categories":
				json.NewEncoder(w).Encode(map[string]int64{"J-POP": 12, "アニメ": 4})
			case "/api/stats/artists":
				json.NewEncoder(w).Encode(map[string]int64{"米津玄師": 3})
			case "/api/stats/average-score":
				json.NewEncoder(w).Encode(87.5)
			default:
				w.WriteHeader(http.StatusNotFound)
			}
		}))
		defer server.Close()

		client := NewBackendClient(server.URL, server.Client())

		categories, err := client.CategoryStats(ctx)
		if err != nil {
			t.Fatalf("CategoryStats failed: %v", err)
		}
		if categories["J-POP"] != 12 {
			t.Errorf("unexpected categories %v", categories)
		}

		artists, err := client.ArtistStats(ctx)
		if err != nil {
			t.Fatalf("ArtistStats failed: %v", err)
		}
		if artists["米津玄師"] != 3 {
			t.Errorf("unexpected artists %v", artists)
		}

		avg, err := client.AverageScore(ctx)
		if err != nil {
			t.Fatalf("AverageScore failed: %v", err)
		}
		if avg != 87.5 {
			t.Errorf("expected 87.5, got %f", avg)
		}
	})

	t.Run("Defaults", func(t *testing.T) {
		client := NewBackendClient("", nil)
		if client.baseURL != defaultBackendURL {
			t.Errorf("expected default base URL, got %s", client.baseURL)
		}
		if client.httpClient == nil {
			t.Error("expected default HTTP client")
		}
	})
}
