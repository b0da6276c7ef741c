package analytics

import (
	"fmt"
	"sort"
	"time"

	"site-analytics-service/internal/model"
)

// hourOf buckets an epoch-millis timestamp into an hour of day, UTC
// so the ranking does not depend on server locale.
func hourOf(ts int64) int {
	return time.UnixMilli(ts).UTC().Hour()
}

// HourlyActivity buckets page views and social shares by hour of day
// and names the three busiest hours.
func HourlyActivity(s Snapshot) model.HourlyReport {
	hours := make([]model.HourActivity, 24)
	for h := range hours {
		hours[h] = model.HourActivity{Hour: h, Label: fmt.Sprintf("%02d:00", h)}
	}

	for _, pv := range s.PageViews {
		hours[hourOf(pv.Timestamp)].PageViews++
	}
	for _, ev := range s.Events {
		if ev.Kind == model.KindSocialShare {
			hours[hourOf(ev.Timestamp)].SocialShares++
		}
	}
	for h := range hours {
		hours[h].Total = hours[h].PageViews + hours[h].SocialShares
	}

	peaks := make([]model.HourActivity, len(hours))
	copy(peaks, hours)
	sort.Slice(peaks, func(i, j int) bool {
		if peaks[i].Total != peaks[j].Total {
			return peaks[i].Total > peaks[j].Total
		}
		return peaks[i].Hour < peaks[j].Hour
	})

	return model.HourlyReport{Hours: hours, PeakHours: peaks[:3]}
}
