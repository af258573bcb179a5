package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"sentimizer/internal/apperr"
	"sentimizer/internal/models"
)

const (
	// DefaultAthletesURL is the ESPN partner endpoint listing NFL athletes.
	DefaultAthletesURL = "https://partners.api.espn.com/v2/sports/football/nfl/athletes?limit=20000"

	// photoURLFormat serves player headshots by ESPN player id.
	photoURLFormat = "https://a.espncdn.com/combiner/i?img=/i/headshots/nfl/players/full/%s.png"
)

// Fetcher retrieves the athlete roster from the third-party sports-data
// provider. Refreshing the roster happens out-of-band of analysis runs;
// a running process keeps using the roster it loaded at startup.
type Fetcher struct {
	client *http.Client
	url    string
}

// NewFetcher creates a Fetcher against the default ESPN endpoint.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    DefaultAthletesURL,
	}
}

// NewFetcherWithURL creates a Fetcher against a custom endpoint (tests).
func NewFetcherWithURL(url string) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: 30 * time.Second},
		url:    url,
	}
}

// athletesResponse mirrors the provider's payload shape.
type athletesResponse struct {
	Athletes []struct {
		ID          json.Number `json:"id"`
		DisplayName string      `json:"displayName"`
		Team        struct {
			DisplayName string `json:"displayName"`
		} `json:"team"`
	} `json:"athletes"`
}

// Fetch downloads the athlete list, retrying transient failures with
// fibonacci backoff, and returns canonical-name-keyed entries.
func (f *Fetcher) Fetch(ctx context.Context) (map[string]models.RosterEntry, error) {
	var parsed athletesResponse

	backoff := retry.WithMaxRetries(3, retry.NewFibonacci(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
		if err != nil {
			return err
		}

		resp, err := f.client.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			err := fmt.Errorf("status %d: %s", resp.StatusCode, body)
			if resp.StatusCode >= 500 {
				return retry.RetryableError(err)
			}
			return err
		}

		return json.NewDecoder(resp.Body).Decode(&parsed)
	})
	if err != nil {
		return nil, apperr.Upstream(err, "fetch athletes")
	}

	entries := make(map[string]models.RosterEntry, len(parsed.Athletes))
	for _, athlete := range parsed.Athletes {
		if athlete.DisplayName == "" {
			continue
		}
		entries[athlete.DisplayName] = models.RosterEntry{
			Name: athlete.DisplayName,
			ID:   athlete.ID.String(),
			Team: athlete.Team.DisplayName,
		}
	}

	return entries, nil
}

// PhotoURL returns the headshot URL for a player id.
func PhotoURL(playerID string) string {
	return fmt.Sprintf(photoURLFormat, playerID)
}
