// Package analytics turns a filtered snapshot of the event log into
// dashboard payloads. Every view is a pure function: same snapshot,
// same output.
package analytics

import (
	"time"

	"site-analytics-service/internal/model"
)

// Period is a relative time window used to filter records before
// aggregation.
type Period string

const (
	PeriodDay     Period = "day"
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodAll     Period = "all"
)

// ParsePeriod maps the aliases the dashboard sends onto a Period.
// Unknown values fall back to a month, matching the tolerant posture
// of the ingestion side.
func ParsePeriod(raw string) Period {
	switch raw {
	case "day", "1d", "24h":
		return PeriodDay
	case "week", "7d":
		return PeriodWeek
	case "month", "30d", "":
		return PeriodMonth
	case "quarter", "90d":
		return PeriodQuarter
	case "all", "all_time", "alltime":
		return PeriodAll
	default:
		return PeriodMonth
	}
}

// Duration returns the window length, or ok=false for all-time.
func (p Period) Duration() (time.Duration, bool) {
	switch p {
	case PeriodDay:
		return 24 * time.Hour, true
	case PeriodWeek:
		return 7 * 24 * time.Hour, true
	case PeriodMonth:
		return 30 * 24 * time.Hour, true
	case PeriodQuarter:
		return 90 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Snapshot is the immutable filtered view of the log handed to the
// aggregation functions. Sessions are copied by value so no view can
// reach back into the live document.
type Snapshot struct {
	PageViews []model.PageView
	Clicks    []model.Click
	Events    []model.TrackedEvent
	Sessions  map[string]model.Session
	Period    Period
}

// Filter selects the records whose timestamp falls inside the
// requested period. All-time reaches back past the first recorded
// page view and so keeps every record; an empty log yields an empty
// snapshot, never an error.
func Filter(log model.Log, period Period, now time.Time) Snapshot {
	cutoff := int64(-1) << 62
	if d, bounded := period.Duration(); bounded {
		cutoff = now.Add(-d).UnixMilli()
	}

	snap := Snapshot{
		PageViews: []model.PageView{},
		Clicks:    []model.Click{},
		Events:    []model.TrackedEvent{},
		Sessions:  make(map[string]model.Session, len(log.Sessions)),
		Period:    period,
	}
	for _, pv := range log.PageViews {
		if pv.Timestamp > cutoff {
			snap.PageViews = append(snap.PageViews, pv)
		}
	}
	for _, c := range log.Clicks {
		if c.Timestamp > cutoff {
			snap.Clicks = append(snap.Clicks, c)
		}
	}
	for _, ev := range log.Events {
		if ev.Timestamp > cutoff {
			snap.Events = append(snap.Events, ev)
		}
	}
	for token, s := range log.Sessions {
		snap.Sessions[token] = *s
	}
	return snap
}
