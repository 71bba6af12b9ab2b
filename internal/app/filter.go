package app

import (
	"sort"
	"strings"
	"time"

	"flex_reviews/internal/domain"
)

// Reviews scoring under this in a named category count as having an issue
// there. Deliberately not unified with the sentiment cut-offs.
const categoryIssueThreshold = 7

// Apply runs the filter configuration over the aggregated sequence and
// returns a new, sorted slice. Pure: the input is never mutated, and the
// same (input, config) pair always yields the same output.
func Apply(in []domain.Review, cfg domain.FilterConfig) []domain.Review {
	out := make([]domain.Review, 0, len(in))
	for _, r := range in {
		if cfg.MinRating != nil && r.Rating < *cfg.MinRating {
			continue
		}
		if !matchesAll(cfg.Property) && r.ListingName != cfg.Property {
			continue
		}
		if !matchesAll(cfg.Channel) && r.Source != cfg.Channel {
			continue
		}
		if !matchesAll(cfg.Category) {
			// Category-issue filter: keep only reviews that score below the
			// threshold in the named category. No entry means no pass.
			v, ok := r.Categories[strings.ToLower(cfg.Category)]
			if !ok || v >= categoryIssueThreshold {
				continue
			}
		}
		out = append(out, r)
	}
	sortReviews(out, cfg.Sort)
	return out
}

func matchesAll(v string) bool { return v == "" || v == "all" }

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseDate(s string) (time.Time, bool) {
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortReviews orders in place. Date sorts push unparseable dates to the end
// in both directions; rating sorts keep ties in original order.
func sortReviews(rs []domain.Review, opt domain.SortOption) {
	switch opt {
	case domain.SortHighest:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Rating > rs[j].Rating })
	case domain.SortLowest:
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Rating < rs[j].Rating })
	case domain.SortOldest:
		sortByDate(rs, false)
	case domain.SortNewest, "":
		sortByDate(rs, true)
	}
}

func sortByDate(rs []domain.Review, newestFirst bool) {
	type keyed struct {
		rev domain.Review
		t   time.Time
		ok  bool
	}
	ks := make([]keyed, len(rs))
	for i, r := range rs {
		t, ok := parseDate(r.Date)
		ks[i] = keyed{rev: r, t: t, ok: ok}
	}
	sort.SliceStable(ks, func(i, j int) bool {
		if ks[i].ok != ks[j].ok {
			return ks[i].ok // invalid dates last
		}
		if !ks[i].ok {
			return false
		}
		if newestFirst {
			return ks[i].t.After(ks[j].t)
		}
		return ks[i].t.Before(ks[j].t)
	})
	for i := range ks {
		rs[i] = ks[i].rev
	}
}
