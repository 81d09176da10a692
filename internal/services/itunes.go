// iTunes Search API implementation of [Catalog]
//
// Response types based on https://performance-partners.apple.com/search-api
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/uta/internal/models"
	"github.com/desertthunder/uta/internal/shared"
	"golang.org/x/time/rate"
)

const defaultITunesURL = "https://itunes.apple.com"

// The search API allows roughly 20 calls per minute per IP.
var itunesLimit = rate.Limit(20.0 / 60.0)

// ITunesCatalog implements [Catalog] against the iTunes Search API.
type ITunesCatalog struct {
	baseURL    string
	country    string
	limit      int
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewITunesCatalog creates a catalog client with the given search settings.
func NewITunesCatalog(cfg shared.CatalogConfig, client *http.Client) *ITunesCatalog {
	if client == nil {
		client = http.DefaultClient
	}

	limit := cfg.Limit
	if limit <= 0 || limit > 50 {
		limit = 10
	}

	return &ITunesCatalog{
		baseURL:    defaultITunesURL,
		country:    cfg.Country,
		limit:      limit,
		httpClient: client,
		limiter:    rate.NewLimiter(itunesLimit, 1),
	}
}

func (c *ITunesCatalog) Name() string {
	return "iTunes"
}

type itunesTrack struct {
	TrackName      string `json:"trackName"`
	ArtistName     string `json:"artistName"`
	CollectionName string `json:"collectionName"`
	ReleaseDate    string `json:"releaseDate"`
	ArtworkURL100  string `json:"artworkUrl100"`
}

type itunesResponse struct {
	ResultCount int           `json:"resultCount"`
	Results     []itunesTrack `json:"results"`
}

// Search looks up songs by free-text term.
//
// Release dates are reduced to a year; the 100x100 artwork URL is upgraded
// to the 600x600 variant by string substitution.
func (c *ITunesCatalog) Search(ctx context.Context, term string) ([]models.SearchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{
		"term":   {term},
		"media":  {"music"},
		"entity": {"song"},
		"limit":  {strconv.Itoa(c.limit)},
	}
	if c.country != "" {
		params.Set("country", c.country)
	}

	apiURL := c.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("itunes API error: status %d", resp.StatusCode)
	}

	var body itunesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]models.SearchResult, len(body.Results))
	for i, track := range body.Results {
		results[i] = models.SearchResult{
			Title:       track.TrackName,
			Artist:      track.ArtistName,
			Album:       track.CollectionName,
			ReleaseYear: releaseYear(track.ReleaseDate),
			Artwork:     upgradeArtwork(track.ArtworkURL100),
		}
	}

	return results, nil
}

// releaseYear reduces an ISO release date ("1988-01-26T08:00:00Z") to its year.
// Unparseable dates yield 0.
func releaseYear(date string) int {
	if len(date) < 4 {
		return 0
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return year
}

// upgradeArtwork swaps the 100x100 artwork variant for the 600x600 one.
// Returns nil when the track has no artwork.
func upgradeArtwork(artworkURL string) *string {
	if artworkURL == "" {
		return nil
	}
	upgraded := strings.Replace(artworkURL, "100x100", "600x600", 1)
	return &upgraded
}
