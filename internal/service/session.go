package service

import (
	"site-analytics-service/internal/model"
)

// applySession folds a page view into the document's session table.
// A new token creates the session with one view; a known token bumps
// the counter and pushes LastSeen forward, never backward. Replaying
// the same page view double-counts; delivery is assumed at-most-once
// per client action.
func applySession(doc *model.Log, pv model.PageView) {
	s, ok := doc.Sessions[pv.SessionID]
	if !ok {
		doc.Sessions[pv.SessionID] = &model.Session{
			FirstSeen: pv.Timestamp,
			LastSeen:  pv.Timestamp,
			PageViews: 1,
		}
		doc.TotalSessions++
		return
	}
	if pv.Timestamp > s.LastSeen {
		s.LastSeen = pv.Timestamp
	}
	s.PageViews++
}
