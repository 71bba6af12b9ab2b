package app

import "flex_reviews/internal/domain"

// ComputeStats aggregates the filtered sequence per listing, in first-seen
// order. Stats mirror the active filter view: a listing with no matching
// reviews does not appear at all, so the per-listing count is never zero
// and the average never divides by zero.
func ComputeStats(in []domain.Review) []domain.ListingStats {
	var out []domain.ListingStats
	idx := make(map[string]int, 8)
	totals := make(map[string]float64, 8)

	for _, r := range in {
		i, ok := idx[r.ListingName]
		if !ok {
			i = len(out)
			idx[r.ListingName] = i
			out = append(out, domain.ListingStats{ListingName: r.ListingName})
		}
		s := &out[i]
		s.Count++
		totals[r.ListingName] += r.Rating

		switch {
		case r.Rating >= 8:
			s.Sentiment.Positive++
		case r.Rating >= 5:
			s.Sentiment.Neutral++
		default:
			s.Sentiment.Negative++
		}

		if r.Source == domain.SourceGoogle {
			s.Sources.Google++
		} else {
			s.Sources.Other++
		}
	}

	for i := range out {
		out[i].AverageRating = totals[out[i].ListingName] / float64(out[i].Count)
	}
	return out
}
