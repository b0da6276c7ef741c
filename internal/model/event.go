package model

// TrackRequest represents an incoming analytics beacon. The Type
// discriminator selects which of the remaining fields are meaningful;
// clients send only the subset for their event type.
type TrackRequest struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"`

	// Page view fields.
	Path           string  `json:"path"`
	Title          string  `json:"title"`
	Referrer       string  `json:"referrer"`
	UserAgent      string  `json:"userAgent"`
	Language       string  `json:"language"`
	Platform       string  `json:"platform"`
	ScreenWidth    int     `json:"screenWidth"`
	ScreenHeight   int     `json:"screenHeight"`
	ViewportWidth  int     `json:"viewportWidth"`
	ViewportHeight int     `json:"viewportHeight"`
	PixelRatio     float64 `json:"pixelRatio"`

	// Click fields.
	X           int    `json:"x"`
	Y           int    `json:"y"`
	ElementType string `json:"elementType"`
	ElementText string `json:"elementText"`
	TargetURL   string `json:"targetUrl"`
	SharedTo    string `json:"platformTag"`

	// Named event fields.
	EventType string         `json:"eventType"`
	Data      map[string]any `json:"data"`
}

// ClientInfo captures the browser metadata sent with a page view.
type ClientInfo struct {
	UserAgent      string  `json:"userAgent"`
	Language       string  `json:"language"`
	Platform       string  `json:"platform"`
	ScreenWidth    int     `json:"screenWidth"`
	ScreenHeight   int     `json:"screenHeight"`
	ViewportWidth  int     `json:"viewportWidth"`
	ViewportHeight int     `json:"viewportHeight"`
	PixelRatio     float64 `json:"pixelRatio"`
}

// PageView is one recorded visit to a page. Timestamp is epoch millis.
type PageView struct {
	SessionID string     `json:"sessionId"`
	Path      string     `json:"path"`
	Title     string     `json:"title"`
	Referrer  string     `json:"referrer,omitempty"`
	Timestamp int64      `json:"timestamp"`
	Client    ClientInfo `json:"client"`
}

// Click is one recorded interaction with a page element.
type Click struct {
	SessionID   string `json:"sessionId"`
	Path        string `json:"path"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	ElementType string `json:"elementType"`
	ElementText string `json:"elementText,omitempty"`
	TargetURL   string `json:"targetUrl,omitempty"`
	SharedTo    string `json:"platformTag,omitempty"`
	Timestamp   int64  `json:"timestamp"`
}

// EventKind is the closed set of named event types the aggregations
// understand. Tags outside the set are kept under KindOther with the
// raw tag preserved.
type EventKind string

const (
	KindTimeSpent     EventKind = "time_spent"
	KindScrollDepth   EventKind = "scroll_depth"
	KindSocialShare   EventKind = "social_share"
	KindNewsletter    EventKind = "newsletter_subscription"
	KindContactForm   EventKind = "contact_form_submission"
	KindEventInterest EventKind = "event_interest"
	KindBounceCheck   EventKind = "bounce_rate"
	KindOther         EventKind = "other"
)

// ClassifyEventKind maps a raw client tag onto the closed kind set.
func ClassifyEventKind(raw string) EventKind {
	switch EventKind(raw) {
	case KindTimeSpent, KindScrollDepth, KindSocialShare, KindNewsletter,
		KindContactForm, KindEventInterest, KindBounceCheck:
		return EventKind(raw)
	default:
		return KindOther
	}
}

// EventPayload holds the kind-specific fields of a named event. Only
// the fields matching the event's kind are populated; anything the
// client sent beyond the known fields lands in Extra.
type EventPayload struct {
	Seconds        float64        `json:"seconds,omitempty"`
	Depth          float64        `json:"depth,omitempty"`
	Platform       string         `json:"platform,omitempty"`
	HasScrolled    bool           `json:"hasScrolled,omitempty"`
	HasClicked     bool           `json:"hasClicked,omitempty"`
	PagesInSession int            `json:"pagesInSession,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}

// TrackedEvent is one recorded named event.
type TrackedEvent struct {
	SessionID string       `json:"sessionId"`
	Kind      EventKind    `json:"kind"`
	RawKind   string       `json:"rawKind,omitempty"`
	Path      string       `json:"path"`
	Timestamp int64        `json:"timestamp"`
	Payload   EventPayload `json:"payload"`
}

// Submission is the normalized result of a TrackRequest. Exactly one
// of the three pointers is set.
type Submission struct {
	PageView *PageView
	Click    *Click
	Event    *TrackedEvent
}
