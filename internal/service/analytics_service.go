package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"site-analytics-service/internal/analytics"
	"site-analytics-service/internal/model"
)

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// AnalyticsService wires ingestion normalization and dashboard reads.
type AnalyticsService interface {
	// BuildSubmission normalizes a beacon. ok=false means the payload
	// was empty, untyped, or of an unknown type and is treated as a
	// successful no-op; client beacons are frequently truncated and
	// must not produce errors.
	BuildSubmission(req model.TrackRequest) (model.Submission, bool)

	// Track appends an accepted submission to the log.
	Track(ctx context.Context, sub model.Submission) error

	// Dashboard computes one aggregation view over the requested
	// period.
	Dashboard(ctx context.Context, viewType, period string) (any, error)

	// Export renders a filtered log as a downloadable file.
	Export(ctx context.Context, format, period string, detailed bool) (ExportResult, error)

	// Purge drops all recorded data.
	Purge(ctx context.Context) error
}

type analyticsService struct {
	writer          LogWriter
	now             func() time.Time
	topContentLimit int
}

// NewAnalyticsService constructs an AnalyticsService on top of the
// log writer.
func NewAnalyticsService(writer LogWriter, topContentLimit int) AnalyticsService {
	return &analyticsService{
		writer:          writer,
		now:             time.Now,
		topContentLimit: topContentLimit,
	}
}

func (s *analyticsService) BuildSubmission(req model.TrackRequest) (model.Submission, bool) {
	if req.Type == "" {
		return model.Submission{}, false
	}

	ts := req.Timestamp
	if ts == 0 {
		ts = s.now().UnixMilli()
	}
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	switch req.Type {
	case "pageview":
		return model.Submission{PageView: &model.PageView{
			SessionID: sessionID,
			Path:      req.Path,
			Title:     req.Title,
			Referrer:  req.Referrer,
			Timestamp: ts,
			Client: model.ClientInfo{
				UserAgent:      req.UserAgent,
				Language:       req.Language,
				Platform:       req.Platform,
				ScreenWidth:    req.ScreenWidth,
				ScreenHeight:   req.ScreenHeight,
				ViewportWidth:  req.ViewportWidth,
				ViewportHeight: req.ViewportHeight,
				PixelRatio:     req.PixelRatio,
			},
		}}, true

	case "click":
		return model.Submission{Click: &model.Click{
			SessionID:   sessionID,
			Path:        req.Path,
			X:           req.X,
			Y:           req.Y,
			ElementType: req.ElementType,
			ElementText: req.ElementText,
			TargetURL:   req.TargetURL,
			SharedTo:    req.SharedTo,
			Timestamp:   ts,
		}}, true

	case "event":
		return model.Submission{Event: &model.TrackedEvent{
			SessionID: sessionID,
			Kind:      model.ClassifyEventKind(req.EventType),
			RawKind:   req.EventType,
			Path:      req.Path,
			Timestamp: ts,
			Payload:   buildPayload(req.Data),
		}}, true

	default:
		return model.Submission{}, false
	}
}

// buildPayload lifts the known fields out of the loose event data map
// and keeps the rest under Extra.
func buildPayload(data map[string]any) model.EventPayload {
	p := model.EventPayload{}
	for key, val := range data {
		switch key {
		case "seconds", "timeSpent":
			p.Seconds = toFloat(val)
		case "depth", "scrollDepth":
			p.Depth = toFloat(val)
		case "platform":
			p.Platform, _ = val.(string)
		case "hasScrolled":
			p.HasScrolled, _ = val.(bool)
		case "hasClicked":
			p.HasClicked, _ = val.(bool)
		case "pagesInSession":
			p.PagesInSession = int(toFloat(val))
		default:
			if p.Extra == nil {
				p.Extra = map[string]any{}
			}
			p.Extra[key] = val
		}
	}
	return p
}

func toFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func (s *analyticsService) Track(ctx context.Context, sub model.Submission) error {
	return s.writer.Append(ctx, sub)
}

func (s *analyticsService) Dashboard(ctx context.Context, viewType, period string) (any, error) {
	doc, err := s.writer.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	snap := analytics.Filter(doc, analytics.ParsePeriod(period), now)

	switch viewType {
	case "overview":
		return analytics.OverviewStats(snap), nil
	case "sources":
		return analytics.Sources(snap), nil
	case "popular_articles":
		return analytics.PopularArticles(snap, s.topContentLimit), nil
	case "click_through_rates":
		return analytics.ClickThroughRates(snap), nil
	case "engagement":
		return analytics.EngagementMetrics(snap), nil
	case "daily_stats":
		return analytics.DailyBreakdown(snap), nil
	case "hourly":
		return analytics.HourlyActivity(snap), nil
	case "realtime":
		return analytics.Realtime(doc, now), nil
	case "devices":
		return analytics.DeviceBreakdown(snap), nil
	case "social":
		return analytics.SocialSummary(snap), nil
	default:
		return nil, &ValidationError{Message: "Invalid analytics type"}
	}
}

func (s *analyticsService) Purge(ctx context.Context) error {
	return s.writer.Purge(ctx)
}
