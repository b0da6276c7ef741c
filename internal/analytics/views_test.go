package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"site-analytics-service/internal/model"
)

func pv(session, path string, ts int64) model.PageView {
	return model.PageView{SessionID: session, Path: path, Timestamp: ts}
}

func snapOf(doc *model.Log) Snapshot {
	return Filter(*doc, PeriodAll, time.Now())
}

func TestPopularArticles(t *testing.T) {
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		pv("a", "/articles/go-generics", 1),
		pv("a", "/articles/go-generics", 2),
		pv("b", "/articles/release-notes", 3),
		pv("b", "/about", 4),
		pv("b", "/", 5),
	}

	out := PopularArticles(snapOf(doc), 10)

	require.Equal(t, 3, out.TotalArticleViews)
	require.Equal(t, []model.ArticleStat{
		{Slug: "go-generics", Views: 2},
		{Slug: "release-notes", Views: 1},
	}, out.Articles)
}

func TestPopularArticlesLimit(t *testing.T) {
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		pv("a", "/articles/one", 1),
		pv("a", "/articles/two", 2),
		pv("a", "/articles/three", 3),
	}

	out := PopularArticles(snapOf(doc), 2)
	require.Len(t, out.Articles, 2)
}

func TestEngagementMetrics(t *testing.T) {
	doc := model.NewLog()
	doc.Events = []model.TrackedEvent{
		{Kind: model.KindTimeSpent, Timestamp: 1, Payload: model.EventPayload{Seconds: 30}},
		{Kind: model.KindTimeSpent, Timestamp: 2, Payload: model.EventPayload{Seconds: 60}},
		{Kind: model.KindBounceCheck, Timestamp: 3, Payload: model.EventPayload{HasScrolled: false, HasClicked: false, PagesInSession: 1}},
		{Kind: model.KindBounceCheck, Timestamp: 4, Payload: model.EventPayload{HasScrolled: true, HasClicked: false, PagesInSession: 3}},
		{Kind: model.KindNewsletter, Timestamp: 5},
		{Kind: model.KindContactForm, Timestamp: 6},
		{Kind: model.KindEventInterest, Timestamp: 7},
		{Kind: model.KindSocialShare, Timestamp: 8, Payload: model.EventPayload{Platform: "twitter"}},
		{Kind: model.KindSocialShare, Timestamp: 9, Payload: model.EventPayload{Platform: "twitter"}},
	}

	out := EngagementMetrics(snapOf(doc))

	require.Equal(t, 45.0, out.AvgTimeOnPage)
	require.Equal(t, 50.0, out.BounceRate)
	require.Equal(t, 2.0, out.AvgPagesPerSession)
	require.Equal(t, 1, out.NewsletterSignups)
	require.Equal(t, 1, out.ContactSubmissions)
	require.Equal(t, 1, out.EventInterest)
	require.Equal(t, map[string]int{"twitter": 2}, out.SocialShares)
}

func TestEngagementMetricsEmpty(t *testing.T) {
	out := EngagementMetrics(snapOf(model.NewLog()))
	require.Zero(t, out.AvgTimeOnPage)
	require.Zero(t, out.BounceRate)
	require.Zero(t, out.AvgPagesPerSession)
	require.Empty(t, out.SocialShares)
}

// Two views at hour 14 and one at hour 9: hour 14 must rank first.
func TestHourlyActivityRanking(t *testing.T) {
	at := func(hour int) int64 {
		return time.Date(2026, 3, 10, hour, 30, 0, 0, time.UTC).UnixMilli()
	}
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		pv("a", "/", at(14)),
		pv("b", "/", at(14)),
		pv("c", "/", at(9)),
	}

	out := HourlyActivity(snapOf(doc))

	require.Len(t, out.Hours, 24)
	require.Len(t, out.PeakHours, 3)
	require.Equal(t, 14, out.PeakHours[0].Hour)
	require.Equal(t, "14:00", out.PeakHours[0].Label)
	require.Equal(t, 2, out.PeakHours[0].Total)
	require.Equal(t, 9, out.PeakHours[1].Hour)
}

func TestHourlyActivityCountsShares(t *testing.T) {
	ts := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC).UnixMilli()
	doc := model.NewLog()
	doc.PageViews = []model.PageView{pv("a", "/", ts)}
	doc.Events = []model.TrackedEvent{
		{Kind: model.KindSocialShare, Timestamp: ts, Payload: model.EventPayload{Platform: "twitter"}},
	}

	out := HourlyActivity(snapOf(doc))
	require.Equal(t, 1, out.Hours[14].PageViews)
	require.Equal(t, 1, out.Hours[14].SocialShares)
	require.Equal(t, 2, out.Hours[14].Total)
}

func TestRealtimeWindows(t *testing.T) {
	now := time.Unix(1_700_000_000, 0).UTC()
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		pv("a", "/articles/x", now.Add(-30*time.Minute).UnixMilli()),
		pv("b", "/articles/x", now.Add(-5*time.Hour).UnixMilli()),
		pv("c", "/", now.Add(-48*time.Hour).UnixMilli()),
	}
	doc.Events = []model.TrackedEvent{
		{Kind: model.KindSocialShare, Timestamp: now.Add(-10 * time.Minute).UnixMilli()},
	}

	out := Realtime(*doc, now)

	require.Equal(t, 1, out.LastHour.PageViews)
	require.Equal(t, 1, out.LastHour.SocialShares)
	require.Equal(t, 1, out.LastHour.DistinctPages)

	require.Equal(t, 2, out.Last24Hours.PageViews)
	require.Equal(t, 1, out.Last24Hours.DistinctPages)
	require.Equal(t, []model.PageCount{{Path: "/articles/x", Views: 2}}, out.Last24Hours.TopPages)
}

func TestDailyBreakdown(t *testing.T) {
	day1 := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	day2 := time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		pv("a", "/", day1.UnixMilli()),
		pv("b", "/", day1.Add(time.Hour).UnixMilli()),
		pv("a", "/", day2.UnixMilli()),
	}
	doc.Clicks = []model.Click{
		{SessionID: "a", Path: "/", Timestamp: day2.UnixMilli()},
	}

	out := DailyBreakdown(snapOf(doc))

	require.Equal(t, []model.DayStat{
		{Date: "2026-03-10", PageViews: 2, Sessions: 2, Clicks: 0},
		{Date: "2026-03-11", PageViews: 1, Sessions: 1, Clicks: 1},
	}, out.Days)
}

func TestDeviceBreakdown(t *testing.T) {
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		{SessionID: "a", Path: "/", Timestamp: 1, Client: model.ClientInfo{ViewportWidth: 390, Language: "en-US"}},
		{SessionID: "b", Path: "/", Timestamp: 2, Client: model.ClientInfo{ViewportWidth: 800, Language: "en-US"}},
		{SessionID: "c", Path: "/", Timestamp: 3, Client: model.ClientInfo{ViewportWidth: 1920, Language: "de-DE"}},
		{SessionID: "d", Path: "/", Timestamp: 4, Client: model.ClientInfo{UserAgent: "Mozilla/5.0 (iPhone) Mobile Safari"}},
	}

	out := DeviceBreakdown(snapOf(doc))

	require.Equal(t, map[string]int{DeviceMobile: 2, DeviceTablet: 1, DeviceDesktop: 1}, out.Devices)
	require.Equal(t, []model.LanguageCount{
		{Language: "en-US", Views: 2},
		{Language: "de-DE", Views: 1},
	}, out.TopLanguages)
}

func TestSocialSummary(t *testing.T) {
	doc := model.NewLog()
	doc.Clicks = []model.Click{
		{SessionID: "a", Path: "/articles/x", ElementType: "social_share", SharedTo: "twitter", Timestamp: 1},
		{SessionID: "a", Path: "/articles/x", ElementType: "article_link", TargetURL: "/articles/y", Timestamp: 2},
	}
	doc.Events = []model.TrackedEvent{
		{Kind: model.KindSocialShare, Path: "/articles/x", Timestamp: 3, Payload: model.EventPayload{Platform: "facebook"}},
	}

	out := SocialSummary(snapOf(doc))

	require.Equal(t, 2, out.TotalShares)
	require.Equal(t, map[string]int{"twitter": 1, "facebook": 1}, out.Platforms)
	require.Equal(t, []model.PageCount{{Path: "/articles/x", Views: 2}}, out.TopPages)
}

func TestOverviewStats(t *testing.T) {
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		pv("a", "/articles/x", 1),
		pv("a", "/", 2),
		pv("b", "/articles/x", 3),
	}
	doc.PageViews[0].Referrer = "https://google.com"
	doc.Clicks = []model.Click{{SessionID: "a", Path: "/", Timestamp: 4}}

	out := OverviewStats(snapOf(doc))

	require.Equal(t, 3, out.PageViews)
	require.Equal(t, 2, out.Sessions)
	require.Equal(t, 1, out.Clicks)
	require.Equal(t, 1.5, out.PagesPerSession)
	require.Equal(t, "/articles/x", out.TopPage)
	require.Equal(t, SourceDirect, out.TopSource)
}

// Every view must tolerate an empty snapshot without errors or nils.
func TestViewsEmptySnapshot(t *testing.T) {
	snap := snapOf(model.NewLog())

	require.Empty(t, PopularArticles(snap, 0).Articles)
	require.Empty(t, ClickThroughRates(snap).Entries)
	require.Len(t, HourlyActivity(snap).Hours, 24)
	require.Empty(t, DailyBreakdown(snap).Days)
	require.NotNil(t, DeviceBreakdown(snap).Devices)
	require.Zero(t, SocialSummary(snap).TotalShares)
	require.Zero(t, OverviewStats(snap).PageViews)
	require.Zero(t, Realtime(*model.NewLog(), time.Now()).LastHour.PageViews)
}
