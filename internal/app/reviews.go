package app

import (
	"context"

	"flex_reviews/internal/domain"
)

// ReviewService wires the two source adapters and the visibility store into
// the dashboard and public-page use cases.
type ReviewService struct {
	internal domain.Source
	external domain.ThirdPartySource
	vis      domain.VisibilityStore
}

func NewReviewService(internal domain.Source, external domain.ThirdPartySource, vis domain.VisibilityStore) *ReviewService {
	return &ReviewService{internal: internal, external: external, vis: vis}
}

// Internal exposes the internal-dataset adapter on its own.
func (s *ReviewService) Internal(ctx context.Context) ([]domain.Review, error) {
	return s.internal.Fetch(ctx)
}

// ThirdParty exposes the third-party adapter for an arbitrary place id.
func (s *ReviewService) ThirdParty(ctx context.Context, placeID string) ([]domain.Review, error) {
	return s.external.FetchPlace(ctx, placeID)
}

// Aggregated joins both sources, internal first. Source failures degrade to
// empty contributions.
func (s *ReviewService) Aggregated(ctx context.Context) []domain.Review {
	return Aggregate(ctx, s.internal, s.external)
}

// Dashboard returns the manager view: the aggregated sequence run through
// the filter/sort engine, each review annotated with its hidden flag, plus
// stats computed from that same filtered sequence.
func (s *ReviewService) Dashboard(ctx context.Context, cfg domain.FilterConfig) (domain.DashboardView, error) {
	filtered := Apply(s.Aggregated(ctx), cfg)

	hidden, err := s.vis.HiddenIDs(ctx)
	if err != nil {
		return domain.DashboardView{}, err
	}
	hiddenSet := make(map[int64]struct{}, len(hidden))
	for _, id := range hidden {
		hiddenSet[id] = struct{}{}
	}

	view := domain.DashboardView{
		Reviews: make([]domain.DashboardReview, 0, len(filtered)),
		Stats:   ComputeStats(filtered),
	}
	for _, r := range filtered {
		_, h := hiddenSet[r.ID]
		view.Reviews = append(view.Reviews, domain.DashboardReview{Review: r, Hidden: h})
	}
	return view, nil
}

// PropertyReviews is the public page feed: aggregated reviews whose listing
// slug matches, minus anything the manager has hidden. An unknown slug
// yields an empty sequence, not an error.
func (s *ReviewService) PropertyReviews(ctx context.Context, slug string) ([]domain.Review, error) {
	hidden, err := s.vis.HiddenIDs(ctx)
	if err != nil {
		return nil, err
	}
	hiddenSet := make(map[int64]struct{}, len(hidden))
	for _, id := range hidden {
		hiddenSet[id] = struct{}{}
	}

	out := make([]domain.Review, 0, 16)
	for _, r := range s.Aggregated(ctx) {
		if domain.Slugify(r.ListingName) != slug {
			continue
		}
		if _, h := hiddenSet[r.ID]; h {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// ToggleVisibility flips one review's hidden flag and reports the new state.
func (s *ReviewService) ToggleVisibility(ctx context.Context, id int64) (bool, error) {
	return s.vis.Toggle(ctx, id)
}
