// Package google fetches reviews for one place from the Places API and
// normalizes them into the canonical review shape.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

// idBase offsets synthetic ids so they never collide with native Hostaway
// ids. Position-based: not stable if the upstream reorders its list.
const idBase = 9000

type Client struct {
	base    string
	key     string
	placeID string // default place for Fetch
	listing string // fixed listing name for this adapter
	hc      *http.Client
	rl      *rate.Limiter
}

func New(base, key, placeID, listing string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		base:    strings.TrimRight(base, "/"),
		key:     key,
		placeID: placeID,
		listing: listing,
		hc:      &http.Client{Timeout: 20 * time.Second},
		rl:      rate.NewLimiter(rate.Limit(rps), rps),
	}
}

func (c *Client) Label() string { return domain.SourceGoogle }

// Fetch resolves the configured place.
func (c *Client) Fetch(ctx context.Context) ([]domain.Review, error) {
	return c.FetchPlace(ctx, c.placeID)
}

// FetchPlace returns normalized reviews for one place. A missing place id
// short-circuits before any network call; any transport or decode failure
// yields no reviews at all rather than a partially-parsed batch.
func (c *Client) FetchPlace(ctx context.Context, placeID string) ([]domain.Review, error) {
	if placeID == "" {
		return nil, fmt.Errorf("%w: placeId is required", domain.ErrInvalidRequest)
	}
	if err := c.rl.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/places/%s", c.base, placeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.key != "" {
		req.Header.Set("X-Goog-Api-Key", c.key)
	}
	req.Header.Set("X-Goog-FieldMask", "reviews")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		observability.ObserveExternal("google", "places.get", 0, time.Since(start))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()
	observability.ObserveExternal("google", "places.get", resp.StatusCode, time.Since(start))

	if resp.StatusCode != http.StatusOK {
		// An absent API key lands here too: upstream rejects the call.
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamUnavailable, resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var p placePayload
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrUpstreamUnavailable, err)
	}

	observability.ObserveSourceFetch(domain.SourceGoogle, "ok")
	return c.normalize(p.Reviews), nil
}

type placePayload struct {
	Reviews []placeReview `json:"reviews"`
}

type placeReview struct {
	Rating            float64        `json:"rating"` // 0–5 scale
	PublishTime       string         `json:"publishTime"`
	AuthorAttribution *attribution   `json:"authorAttribution"`
	Text              *localizedText `json:"text"`
	OriginalText      *localizedText `json:"originalText"`
}

type attribution struct {
	DisplayName string `json:"displayName"`
}

type localizedText struct {
	Text string `json:"text"`
}

func (c *Client) normalize(in []placeReview) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for i, r := range in {
		guest := "Anonymous"
		if r.AuthorAttribution != nil && r.AuthorAttribution.DisplayName != "" {
			guest = r.AuthorAttribution.DisplayName
		}

		date := r.PublishTime
		if date == "" {
			date = time.Now().UTC().Format(time.RFC3339)
		}

		// 0–5 upstream scale doubled onto 0–10, clamped.
		rating := r.Rating * 2
		if rating < 0 {
			rating = 0
		}
		if rating > 10 {
			rating = 10
		}

		comment := ""
		if r.Text != nil && r.Text.Text != "" {
			comment = r.Text.Text
		} else if r.OriginalText != nil {
			comment = r.OriginalText.Text
		}

		out = append(out, domain.Review{
			ID:          idBase + int64(i),
			ListingName: c.listing,
			GuestName:   guest,
			Date:        date,
			Rating:      rating,
			Comment:     comment,
			Source:      domain.SourceGoogle,
			Type:        "guest-review",
			Categories:  map[string]float64{},
		})
	}
	return out
}
