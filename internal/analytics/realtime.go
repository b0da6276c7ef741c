package analytics

import (
	"time"

	"site-analytics-service/internal/model"
)

const realtimeTopPages = 5

// Realtime reports two fixed micro-windows from now (last hour, last
// 24 hours) over the full log, regardless of any requested period.
func Realtime(log model.Log, now time.Time) model.RealtimeSnapshot {
	return model.RealtimeSnapshot{
		LastHour:    realtimeWindow(log, now.Add(-time.Hour).UnixMilli()),
		Last24Hours: realtimeWindow(log, now.Add(-24*time.Hour).UnixMilli()),
	}
}

func realtimeWindow(log model.Log, cutoff int64) model.RealtimeWindow {
	pages := map[string]int{}
	out := model.RealtimeWindow{}

	for _, pv := range log.PageViews {
		if pv.Timestamp > cutoff {
			out.PageViews++
			pages[pv.Path]++
		}
	}
	for _, ev := range log.Events {
		if ev.Kind == model.KindSocialShare && ev.Timestamp > cutoff {
			out.SocialShares++
		}
	}

	out.DistinctPages = len(pages)
	out.TopPages = topPages(pages, realtimeTopPages)
	return out
}
