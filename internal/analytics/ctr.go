package analytics

import (
	"sort"
	"strings"

	"site-analytics-service/internal/model"
)

// Click element categories the CTR view reports on.
var ctrCategories = []string{"article_link", "event_link", "nav_link", "social_share"}

// targetIdent derives the identifier a click is grouped under. Link
// clicks use the last path segment of the target URL; social-share
// clicks use the platform tag.
func targetIdent(c model.Click) string {
	if c.ElementType == "social_share" {
		if c.SharedTo != "" {
			return c.SharedTo
		}
		return c.ElementText
	}

	target := c.TargetURL
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}
	target = strings.TrimSuffix(target, "/")
	if target == "" {
		return "/"
	}
	if i := strings.LastIndex(target, "/"); i >= 0 {
		return target[i+1:]
	}
	return target
}

// viewsForTarget estimates the view denominator for a click target by
// substring match against page-view paths. The heuristic can
// overcount targets whose identifier appears inside unrelated paths;
// that behavior is intentional and kept as-is.
func viewsForTarget(s Snapshot, ident string) int {
	count := 0
	for _, pv := range s.PageViews {
		if ident == "/" {
			if pv.Path == "/" {
				count++
			}
			continue
		}
		if strings.Contains(pv.Path, ident) {
			count++
		}
	}
	return count
}

// ClickThroughRates computes clicks/views percentages per click
// target across the four tracked element categories. A zero view
// count yields a rate of exactly 0.
func ClickThroughRates(s Snapshot) model.CTRReport {
	type key struct{ category, target string }
	clicks := map[key]int{}
	for _, c := range s.Clicks {
		tracked := false
		for _, cat := range ctrCategories {
			if c.ElementType == cat {
				tracked = true
				break
			}
		}
		if !tracked {
			continue
		}
		clicks[key{c.ElementType, targetIdent(c)}]++
	}

	out := model.CTRReport{Entries: []model.CTREntry{}}
	for k, n := range clicks {
		views := viewsForTarget(s, k.target)
		rate := 0.0
		if views > 0 {
			rate = round2(float64(n) / float64(views) * 100)
		}
		out.Entries = append(out.Entries, model.CTREntry{
			Category: k.category,
			Target:   k.target,
			Clicks:   n,
			Views:    views,
			Rate:     rate,
		})
	}

	sort.Slice(out.Entries, func(i, j int) bool {
		if out.Entries[i].Category != out.Entries[j].Category {
			return out.Entries[i].Category < out.Entries[j].Category
		}
		if out.Entries[i].Clicks != out.Entries[j].Clicks {
			return out.Entries[i].Clicks > out.Entries[j].Clicks
		}
		return out.Entries[i].Target < out.Entries[j].Target
	})
	return out
}
