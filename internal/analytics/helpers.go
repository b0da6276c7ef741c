package analytics

import (
	"math"
	"sort"

	"site-analytics-service/internal/model"
)

// round2 rounds to two decimal places at the payload boundary.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// topPages ranks a path→count map descending, ties broken by path so
// repeated aggregation stays byte-identical.
func topPages(counts map[string]int, limit int) []model.PageCount {
	out := make([]model.PageCount, 0, len(counts))
	for path, views := range counts {
		out = append(out, model.PageCount{Path: path, Views: views})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Views != out[j].Views {
			return out[i].Views > out[j].Views
		}
		return out[i].Path < out[j].Path
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
