package domain

import (
	"regexp"
	"strings"
)

// Source labels as they appear on the wire. Fixed set.
const (
	SourceHostaway = "Hostaway"
	SourceGoogle   = "Google Reviews"
)

// Review is the canonical, source-independent review record every adapter
// produces. Instances are built fresh on each fetch and never persisted.
type Review struct {
	// ID is unique within one source's namespace: Hostaway records carry
	// their native id, Google reviews get 9000+position. The synthetic
	// range keeps the two apart but is not stable across calls if the
	// upstream reorders its list.
	ID          int64              `json:"id"`
	ListingName string             `json:"listingName"`
	GuestName   string             `json:"guestName"`
	Date        string             `json:"date"`
	Rating      float64            `json:"rating"` // 0–10 regardless of source scale
	Comment     string             `json:"comment"`
	Source      string             `json:"source"`
	Type        string             `json:"type"`
	Categories  map[string]float64 `json:"categories"`
}

// HostawayReview is the raw internal-dataset record before normalization.
type HostawayReview struct {
	ID             int64            `json:"id"`
	Type           string           `json:"type"`
	Status         string           `json:"status"`
	Rating         *float64         `json:"rating"`
	PublicReview   string           `json:"publicReview"`
	ReviewCategory []CategoryRating `json:"reviewCategory"`
	SubmittedAt    string           `json:"submittedAt"`
	GuestName      string           `json:"guestName"`
	ListingName    string           `json:"listingName"`
}

type CategoryRating struct {
	Category string  `json:"category"`
	Rating   float64 `json:"rating"`
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives the URL-safe slug used by the public property page from a
// listing name: lowercase, runs of non-alphanumerics collapsed to a dash.
func Slugify(name string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
