package analytics

import (
	"site-analytics-service/internal/model"
)

const socialTopPages = 5

// SocialSummary merges share clicks and social_share named events
// into per-platform counts with the most-shared pages.
func SocialSummary(s Snapshot) model.SocialReport {
	out := model.SocialReport{Platforms: map[string]int{}}
	pages := map[string]int{}

	record := func(platform, path string) {
		if platform == "" {
			platform = "unknown"
		}
		out.Platforms[platform]++
		out.TotalShares++
		if path != "" {
			pages[path]++
		}
	}

	for _, c := range s.Clicks {
		if c.ElementType != "social_share" {
			continue
		}
		platform := c.SharedTo
		if platform == "" {
			platform = c.ElementText
		}
		record(platform, c.Path)
	}
	for _, ev := range s.Events {
		if ev.Kind == model.KindSocialShare {
			record(ev.Payload.Platform, ev.Path)
		}
	}

	out.TopPages = topPages(pages, socialTopPages)
	return out
}
