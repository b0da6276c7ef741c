package model

// Session is the derived per-visitor aggregate keyed by the
// client-generated session token. FirstSeen and LastSeen are epoch
// millis; PageViews is at least 1 once the session exists.
type Session struct {
	FirstSeen int64 `json:"firstSeen"`
	LastSeen  int64 `json:"lastSeen"`
	PageViews int   `json:"pageViews"`
}

// Log is the whole persisted analytics document: three append-only
// record sequences, the derived session mapping, and process
// metadata. Records are never mutated or removed outside an explicit
// administrative purge.
type Log struct {
	PageViews     []PageView          `json:"pageViews"`
	Clicks        []Click             `json:"clicks"`
	Events        []TrackedEvent      `json:"events"`
	Sessions      map[string]*Session `json:"sessions"`
	TotalSessions int                 `json:"totalSessions"`

	// FirstDay is the minimum page-view timestamp ever recorded,
	// zero until the first page view lands.
	FirstDay    int64 `json:"firstDay,omitempty"`
	LastUpdated int64 `json:"lastUpdated"`
}

// NewLog returns an empty document ready to receive appends.
func NewLog() *Log {
	return &Log{
		PageViews: []PageView{},
		Clicks:    []Click{},
		Events:    []TrackedEvent{},
		Sessions:  map[string]*Session{},
	}
}

// Clone returns a deep copy of the document so readers can aggregate
// over a stable snapshot while the owner keeps appending.
func (l *Log) Clone() Log {
	out := Log{
		PageViews:     make([]PageView, len(l.PageViews)),
		Clicks:        make([]Click, len(l.Clicks)),
		Events:        make([]TrackedEvent, len(l.Events)),
		Sessions:      make(map[string]*Session, len(l.Sessions)),
		TotalSessions: l.TotalSessions,
		FirstDay:      l.FirstDay,
		LastUpdated:   l.LastUpdated,
	}
	copy(out.PageViews, l.PageViews)
	copy(out.Clicks, l.Clicks)
	copy(out.Events, l.Events)
	for token, s := range l.Sessions {
		copied := *s
		out.Sessions[token] = &copied
	}
	return out
}
