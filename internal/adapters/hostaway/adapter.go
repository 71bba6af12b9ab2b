// Package hostaway normalizes the stored Hostaway review export into the
// canonical review shape.
package hostaway

import (
	"context"
	"math"

	"flex_reviews/internal/adapters/observability"
	"flex_reviews/internal/domain"
)

type Adapter struct {
	store domain.RawReviewStore
}

func New(store domain.RawReviewStore) *Adapter { return &Adapter{store: store} }

func (a *Adapter) Label() string { return domain.SourceHostaway }

// Fetch reads the raw export and normalizes every record. All-or-nothing:
// a store failure yields no partial results.
func (a *Adapter) Fetch(ctx context.Context) ([]domain.Review, error) {
	raw, err := a.store.ListRaw(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Review, 0, len(raw))
	for _, r := range raw {
		out = append(out, normalize(r))
	}
	observability.ObserveSourceFetch(domain.SourceHostaway, "ok")
	return out, nil
}

func normalize(r domain.HostawayReview) domain.Review {
	rating := 0.0
	switch {
	case r.Rating != nil:
		rating = *r.Rating
	case len(r.ReviewCategory) > 0:
		// No overall rating: fall back to the category mean, one decimal.
		sum := 0.0
		for _, c := range r.ReviewCategory {
			sum += c.Rating
		}
		rating = math.Round(sum/float64(len(r.ReviewCategory))*10) / 10
	}

	cats := make(map[string]float64, len(r.ReviewCategory))
	for _, c := range r.ReviewCategory {
		cats[c.Category] = c.Rating // last write wins on duplicates
	}

	guest := r.GuestName
	if guest == "" {
		guest = "Anonymous"
	}

	return domain.Review{
		ID:          r.ID,
		ListingName: r.ListingName,
		GuestName:   guest,
		Date:        r.SubmittedAt, // verbatim, no reformatting
		Rating:      rating,
		Comment:     r.PublicReview,
		Source:      domain.SourceHostaway,
		Type:        r.Type,
		Categories:  cats,
	}
}
