package analytics

import (
	"sort"
	"time"

	"site-analytics-service/internal/model"
)

func dayOf(ts int64) string {
	return time.UnixMilli(ts).UTC().Format("2006-01-02")
}

// DailyBreakdown groups page views by calendar day with distinct
// session and click counts, ascending by date.
func DailyBreakdown(s Snapshot) model.DailyStats {
	type dayAcc struct {
		views    int
		clicks   int
		sessions map[string]struct{}
	}
	days := map[string]*dayAcc{}
	acc := func(date string) *dayAcc {
		d, ok := days[date]
		if !ok {
			d = &dayAcc{sessions: map[string]struct{}{}}
			days[date] = d
		}
		return d
	}

	for _, pv := range s.PageViews {
		d := acc(dayOf(pv.Timestamp))
		d.views++
		if pv.SessionID != "" {
			d.sessions[pv.SessionID] = struct{}{}
		}
	}
	for _, c := range s.Clicks {
		acc(dayOf(c.Timestamp)).clicks++
	}

	out := model.DailyStats{Days: make([]model.DayStat, 0, len(days))}
	for date, d := range days {
		out.Days = append(out.Days, model.DayStat{
			Date:      date,
			PageViews: d.views,
			Sessions:  len(d.sessions),
			Clicks:    d.clicks,
		})
	}
	sort.Slice(out.Days, func(i, j int) bool {
		return out.Days[i].Date < out.Days[j].Date
	})
	return out
}
