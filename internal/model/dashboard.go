package model

// TrafficSources counts page views per referrer bucket.
type TrafficSources struct {
	Total   int            `json:"total"`
	Sources map[string]int `json:"sources"`
}

// ArticleStat is one entry of the popular-content ranking.
type ArticleStat struct {
	Slug  string `json:"slug"`
	Views int    `json:"views"`
}

// PopularContent ranks article page views by slug.
type PopularContent struct {
	TotalArticleViews int           `json:"totalArticleViews"`
	Articles          []ArticleStat `json:"articles"`
}

// CTREntry is the click-through rate for one click target.
type CTREntry struct {
	Category string  `json:"category"`
	Target   string  `json:"target"`
	Clicks   int     `json:"clicks"`
	Views    int     `json:"views"`
	Rate     float64 `json:"rate"`
}

// CTRReport groups click-through rates by element category.
type CTRReport struct {
	Entries []CTREntry `json:"entries"`
}

// Engagement summarizes behavioral named events.
type Engagement struct {
	AvgTimeOnPage      float64        `json:"avgTimeOnPage"`
	BounceRate         float64        `json:"bounceRate"`
	AvgPagesPerSession float64        `json:"avgPagesPerSession"`
	NewsletterSignups  int            `json:"newsletterSignups"`
	ContactSubmissions int            `json:"contactSubmissions"`
	EventInterest      int            `json:"eventInterest"`
	SocialShares       map[string]int `json:"socialShares"`
}

// HourActivity is the activity total for one hour of the day.
type HourActivity struct {
	Hour         int    `json:"hour"`
	Label        string `json:"label"`
	PageViews    int    `json:"pageViews"`
	SocialShares int    `json:"socialShares"`
	Total        int    `json:"total"`
}

// HourlyReport buckets activity by hour of day and names the peaks.
type HourlyReport struct {
	Hours     []HourActivity `json:"hours"`
	PeakHours []HourActivity `json:"peakHours"`
}

// PageCount is a path with its view count.
type PageCount struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// RealtimeWindow is one fixed micro-window of the realtime snapshot.
type RealtimeWindow struct {
	PageViews     int         `json:"pageViews"`
	SocialShares  int         `json:"socialShares"`
	DistinctPages int         `json:"distinctPages"`
	TopPages      []PageCount `json:"topPages"`
}

// RealtimeSnapshot reports the last hour and last 24 hours from now,
// independent of the requested period.
type RealtimeSnapshot struct {
	LastHour    RealtimeWindow `json:"lastHour"`
	Last24Hours RealtimeWindow `json:"last24Hours"`
}

// DayStat is the per-calendar-day rollup.
type DayStat struct {
	Date      string `json:"date"`
	PageViews int    `json:"pageViews"`
	Sessions  int    `json:"sessions"`
	Clicks    int    `json:"clicks"`
}

// DailyStats lists day rollups in ascending date order.
type DailyStats struct {
	Days []DayStat `json:"days"`
}

// LanguageCount is a browser language with its page-view count.
type LanguageCount struct {
	Language string `json:"language"`
	Views    int    `json:"views"`
}

// DeviceReport classifies page views by device class and language.
type DeviceReport struct {
	Devices      map[string]int  `json:"devices"`
	TopLanguages []LanguageCount `json:"topLanguages"`
}

// SocialReport merges share clicks and share events per platform.
type SocialReport struct {
	TotalShares int            `json:"totalShares"`
	Platforms   map[string]int `json:"platforms"`
	TopPages    []PageCount    `json:"topPages"`
}

// Overview carries the dashboard header totals.
type Overview struct {
	PageViews       int     `json:"pageViews"`
	Sessions        int     `json:"sessions"`
	Clicks          int     `json:"clicks"`
	Events          int     `json:"events"`
	PagesPerSession float64 `json:"pagesPerSession"`
	TopSource       string  `json:"topSource"`
	TopPage         string  `json:"topPage"`
}
