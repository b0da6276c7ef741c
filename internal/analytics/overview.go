package analytics

import (
	"site-analytics-service/internal/model"
)

// OverviewStats computes the dashboard header totals for a window.
// Sessions are counted from the tokens actually seen in the window's
// page views, not from the lifetime session table.
func OverviewStats(s Snapshot) model.Overview {
	out := model.Overview{
		PageViews: len(s.PageViews),
		Clicks:    len(s.Clicks),
		Events:    len(s.Events),
	}

	tokens := map[string]struct{}{}
	pages := map[string]int{}
	for _, pv := range s.PageViews {
		if pv.SessionID != "" {
			tokens[pv.SessionID] = struct{}{}
		}
		pages[pv.Path]++
	}
	out.Sessions = len(tokens)
	if out.Sessions > 0 {
		out.PagesPerSession = round2(float64(out.PageViews) / float64(out.Sessions))
	}

	if top := topPages(pages, 1); len(top) > 0 {
		out.TopPage = top[0].Path
	}

	sources := Sources(s)
	best := 0
	for name, count := range sources.Sources {
		if count > best || (count == best && name < out.TopSource) {
			best = count
			out.TopSource = name
		}
	}
	return out
}
