// REST client for the repertoire backend
//
// The backend owns persistence and auth; this client only speaks its
// request/response contract (song CRUD, credential auth, stats).
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/shared"
)

const defaultBackendURL = "http://localhost:8080"

// BackendClient provides typed methods for every backend endpoint.
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient creates a backend client for the given base URL.
func NewBackendClient(baseURL string, client *http.Client) *BackendClient {
	if baseURL == "" {
		baseURL = defaultBackendURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &BackendClient{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// statusError carries the HTTP status and the backend-provided message so
// callers can map rejections into the error taxonomy.
type statusError struct {
	status  int
	message string
}

func (e *statusError) Error() string {
	if e.message != "" {
		return fmt.Sprintf("backend error (status %d): %s", e.status, e.message)
	}
	return fmt.Sprintf("backend error: status %d", e.status)
}

// doRequest performs an HTTP request against the backend.
//
// Transport failures wrap [shared.ErrNetwork]; a 404 wraps
// [shared.ErrNotFound]; other non-2xx statuses surface as *statusError.
func (c *BackendClient) doRequest(ctx context.Context, method, endpoint string, body, result any) error {
	apiURL := c.baseURL + endpoint

	var reqBody *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s %s", shared.ErrNotFound, method, endpoint)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Message != "" {
			return &statusError{status: resp.StatusCode, message: errResp.Message}
		}
		return &statusError{status: resp.StatusCode}
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// ListSongs retrieves the full song list for the current session.
func (c *BackendClient) ListSongs(ctx context.Context) ([]models.Song, error) {
	var songs []models.Song
	if err := c.doRequest(ctx, http.MethodGet, "/api/songs", nil, &songs); err != nil {
		return nil, err
	}
	return songs, nil
}

// GetSong retrieves a single song by id.
func (c *BackendClient) GetSong(ctx context.Context, id int64) (*models.Song, error) {
	var song models.Song
	endpoint := fmt.Sprintf("/api/songs/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// CreateSong persists a new song and returns the server-assigned record.
func (c *BackendClient) CreateSong(ctx context.Context, req models.SongRequest) (*models.Song, error) {
	var song models.Song
	if err := c.doRequest(ctx, http.MethodPost, "/api/songs", req, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// UpdateSong applies a full or partial update keyed by id.
func (c *BackendClient) UpdateSong(ctx context.Context, id int64, req models.SongRequest) (*models.Song, error) {
	var song models.Song
	endpoint := fmt.Sprintf("/api/songs/%d", id)
	if err := c.doRequest(ctx, http.MethodPut, endpoint, req, &song); err != nil {
		return nil, err
	}
	return &song, nil
}

// DeleteSong removes a song by id. The backend answers 204 on success.
func (c *BackendClient) DeleteSong(ctx context.Context, id int64) error {
	endpoint := fmt.Sprintf("/api/songs/%d", id)
	return c.doRequest(ctx, http.MethodDelete, endpoint, nil, nil)
}

// authError converts backend rejections on auth endpoints into
// [shared.ErrAuth], preserving the backend message when one exists.
// Network and not-found errors pass through unchanged.
func authError(err error, fallback string) error {
	if se, ok := err.(*statusError); ok {
		msg := se.message
		if msg == "" {
			msg = fallback
		}
		return fmt.Errorf("%w: %s", shared.ErrAuth, msg)
	}
	return err
}

// Register creates an account. Credentials travel as query parameters,
// matching the backend's contract.
func (c *BackendClient) Register(ctx context.Context, email, password, displayName string) (*models.User, error) {
	params := url.Values{
		"email":       {email},
		"password":    {password},
		"displayName": {displayName},
	}

	var user models.User
	endpoint := "/api/auth/register?" + params.Encode()
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, &user); err != nil {
		return nil, authError(err, "registration rejected")
	}
	return &user, nil
}

// Login authenticates with email and password.
func (c *BackendClient) Login(ctx context.Context, email, password string) (*models.User, error) {
	params := url.Values{
		"email":    {email},
		"password": {password},
	}

	var user models.User
	endpoint := "/api/auth/login?" + params.Encode()
	if err := c.doRequest(ctx, http.MethodPost, endpoint, nil, &user); err != nil {
		return nil, authError(err, "invalid credentials")
	}
	return &user, nil
}

// FetchUser re-synchronizes the session from the backend's user record.
func (c *BackendClient) FetchUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("/api/auth/me/%d", id)
	if err := c.doRequest(ctx, http.MethodGet, endpoint, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CategoryStats retrieves per-category song counts computed server-side.
func (c *BackendClient) CategoryStats(ctx context.Context) (map[string]int64, error) {
	var stats map[string]int64
	if err := c.doRequest(ctx, http.MethodGet, "/api/stats/categories", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// ArtistStats retrieves per-artist song counts computed server-side.
func (c *BackendClient) ArtistStats(ctx context.Context) (map[string]int64, error) {
	var stats map[string]int64
	if err := c.doRequest(ctx, http.MethodGet, "/api/stats/artists", nil, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// AverageScore retrieves the server-computed score average.
func (c *BackendClient) AverageScore(ctx context.Context) (float64, error) {
	var avg float64
	if err := c.doRequest(ctx, http.MethodGet, "/api/stats/average-score", nil, &avg); err != nil {
		return 0, err
	}
	return avg, nil
}
