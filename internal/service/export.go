package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"

	"site-analytics-service/internal/analytics"
	"site-analytics-service/internal/model"
)

// ExportResult is a rendered download produced by the export boundary.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// exportSummary is the aggregate document shared by the JSON export
// and the text report.
type exportSummary struct {
	Period     string               `json:"period"`
	Generated  string               `json:"generated"`
	Overview   model.Overview       `json:"overview"`
	Sources    model.TrafficSources `json:"sources"`
	Popular    model.PopularContent `json:"popularArticles"`
	Engagement model.Engagement     `json:"engagement"`
	Daily      model.DailyStats     `json:"dailyStats"`
}

func (s *analyticsService) Export(ctx context.Context, format, period string, detailed bool) (ExportResult, error) {
	doc, err := s.writer.Snapshot(ctx)
	if err != nil {
		return ExportResult{}, err
	}

	now := s.now()
	p := analytics.ParsePeriod(period)
	snap := analytics.Filter(doc, p, now)
	stem := fmt.Sprintf("analytics-%s-%s", p, now.UTC().Format("20060102"))

	switch format {
	case "json", "":
		return exportJSON(snap, p, now, detailed, stem, s.topContentLimit)
	case "csv":
		return exportCSV(snap, detailed, stem)
	case "report":
		return exportReport(snap, p, now, stem, s.topContentLimit), nil
	default:
		return ExportResult{}, &ValidationError{Message: "Invalid export format"}
	}
}

func buildSummary(snap analytics.Snapshot, p analytics.Period, now time.Time, topLimit int) exportSummary {
	return exportSummary{
		Period:     string(p),
		Generated:  now.UTC().Format(time.RFC3339),
		Overview:   analytics.OverviewStats(snap),
		Sources:    analytics.Sources(snap),
		Popular:    analytics.PopularArticles(snap, topLimit),
		Engagement: analytics.EngagementMetrics(snap),
		Daily:      analytics.DailyBreakdown(snap),
	}
}

func exportJSON(snap analytics.Snapshot, p analytics.Period, now time.Time, detailed bool, stem string, topLimit int) (ExportResult, error) {
	var payload any = buildSummary(snap, p, now, topLimit)
	if detailed {
		payload = struct {
			exportSummary
			PageViews []model.PageView     `json:"pageViews"`
			Clicks    []model.Click        `json:"clicks"`
			Events    []model.TrackedEvent `json:"events"`
		}{buildSummary(snap, p, now, topLimit), snap.PageViews, snap.Clicks, snap.Events}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return ExportResult{}, fmt.Errorf("encode export: %w", err)
	}
	return ExportResult{
		FileName:    stem + ".json",
		ContentType: "application/json",
		Data:        data,
	}, nil
}

func exportCSV(snap analytics.Snapshot, detailed bool, stem string) (ExportResult, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if detailed {
		_ = w.Write([]string{"type", "timestamp", "sessionId", "path", "detail"})
		for _, pv := range snap.PageViews {
			_ = w.Write([]string{"pageview", millis(pv.Timestamp), pv.SessionID, pv.Path, pv.Referrer})
		}
		for _, c := range snap.Clicks {
			_ = w.Write([]string{"click", millis(c.Timestamp), c.SessionID, c.Path, c.ElementType})
		}
		for _, ev := range snap.Events {
			_ = w.Write([]string{"event", millis(ev.Timestamp), ev.SessionID, ev.Path, string(ev.Kind)})
		}
	} else {
		_ = w.Write([]string{"date", "pageViews", "sessions", "clicks"})
		for _, day := range analytics.DailyBreakdown(snap).Days {
			_ = w.Write([]string{day.Date, strconv.Itoa(day.PageViews), strconv.Itoa(day.Sessions), strconv.Itoa(day.Clicks)})
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return ExportResult{}, fmt.Errorf("write csv export: %w", err)
	}
	return ExportResult{
		FileName:    stem + ".csv",
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

func exportReport(snap analytics.Snapshot, p analytics.Period, now time.Time, stem string, topLimit int) ExportResult {
	sum := buildSummary(snap, p, now, topLimit)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Site Analytics Report\n")
	fmt.Fprintf(&buf, "Period: %s\nGenerated: %s\n\n", sum.Period, sum.Generated)
	fmt.Fprintf(&buf, "Page views: %d\nSessions: %d\nClicks: %d\nEvents: %d\n",
		sum.Overview.PageViews, sum.Overview.Sessions, sum.Overview.Clicks, sum.Overview.Events)
	fmt.Fprintf(&buf, "Pages per session: %.2f\n\n", sum.Overview.PagesPerSession)

	fmt.Fprintf(&buf, "Traffic sources:\n")
	for _, name := range []string{
		analytics.SourceGoogle, analytics.SourceFacebook, analytics.SourceTwitter,
		analytics.SourceLinkedIn, analytics.SourceInstagram, analytics.SourceDirect,
		analytics.SourceOther,
	} {
		if count := sum.Sources.Sources[name]; count > 0 {
			fmt.Fprintf(&buf, "  %-10s %d\n", name, count)
		}
	}

	fmt.Fprintf(&buf, "\nTop articles:\n")
	for _, a := range sum.Popular.Articles {
		fmt.Fprintf(&buf, "  %-30s %d\n", a.Slug, a.Views)
	}

	fmt.Fprintf(&buf, "\nEngagement:\n")
	fmt.Fprintf(&buf, "  Avg time on page: %.2fs\n", sum.Engagement.AvgTimeOnPage)
	fmt.Fprintf(&buf, "  Bounce rate: %.2f%%\n", sum.Engagement.BounceRate)
	fmt.Fprintf(&buf, "  Newsletter signups: %d\n", sum.Engagement.NewsletterSignups)
	fmt.Fprintf(&buf, "  Contact submissions: %d\n", sum.Engagement.ContactSubmissions)

	return ExportResult{
		FileName:    stem + ".txt",
		ContentType: "text/plain; charset=utf-8",
		Data:        buf.Bytes(),
	}
}

func millis(ts int64) string {
	return strconv.FormatInt(ts, 10)
}
