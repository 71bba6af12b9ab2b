package domain

import "context"

// Source produces one adapter's normalized reviews.
type Source interface {
	Label() string
	Fetch(ctx context.Context) ([]Review, error)
}

// ThirdPartySource additionally resolves reviews for an arbitrary place id
// (the configured Fetch uses a fixed one).
type ThirdPartySource interface {
	Source
	FetchPlace(ctx context.Context, placeID string) ([]Review, error)
}

// RawReviewStore hands out the stored Hostaway export. Implementations: the
// on-disk JSON file and the MySQL table.
type RawReviewStore interface {
	ListRaw(ctx context.Context) ([]HostawayReview, error)
}

// VisibilityStore is the durable set of manager-hidden review ids. Single
// logical writer, so implementations need no cross-writer coordination.
type VisibilityStore interface {
	IsHidden(ctx context.Context, id int64) (bool, error)
	Toggle(ctx context.Context, id int64) (hidden bool, err error)
	HiddenIDs(ctx context.Context) ([]int64, error)
}

// Read models & queries

type SortOption string

const (
	SortNewest  SortOption = "newest"
	SortOldest  SortOption = "oldest"
	SortHighest SortOption = "highest"
	SortLowest  SortOption = "lowest"
)

// FilterConfig is the manager's mutable dashboard view. Nil/empty fields
// mean "all".
type FilterConfig struct {
	MinRating *float64
	Property  string
	Channel   string
	Category  string
	Sort      SortOption
}

type SentimentBuckets struct {
	Positive int `json:"positive"` // rating >= 8
	Neutral  int `json:"neutral"`  // 5 <= rating < 8
	Negative int `json:"negative"` // rating < 5
}

type SourceMix struct {
	Google int `json:"google"`
	Other  int `json:"other"`
}

type ListingStats struct {
	ListingName   string           `json:"listingName"`
	Count         int              `json:"count"`
	AverageRating float64          `json:"averageRating"`
	Sentiment     SentimentBuckets `json:"sentiment"`
	Sources       SourceMix        `json:"sources"`
}

// DashboardReview annotates a review with its manager-hidden flag.
type DashboardReview struct {
	Review
	Hidden bool `json:"hidden"`
}

// DashboardView is the filtered sequence plus stats computed from that same
// sequence, so totals reflect the active filter rather than the full set.
type DashboardView struct {
	Reviews []DashboardReview `json:"reviews"`
	Stats   []ListingStats    `json:"stats"`
}
