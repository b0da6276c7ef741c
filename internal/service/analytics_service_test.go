package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"site-analytics-service/internal/model"
	"site-analytics-service/internal/testdata/mockwriter"
)

type AnalyticsServiceTestSuite struct {
	suite.Suite

	writer *mockwriter.Writer

	// Concrete struct so tests can freeze the clock.
	service *analyticsService
}

func TestAnalyticsServiceSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsServiceTestSuite))
}

func (s *AnalyticsServiceTestSuite) SetupTest() {
	s.writer = &mockwriter.Writer{}

	svc := NewAnalyticsService(s.writer, 10)
	s.service = svc.(*analyticsService)
	s.service.now = func() time.Time { return time.UnixMilli(1_000_000).UTC() }
}

func (s *AnalyticsServiceTestSuite) TestBuildSubmission_NoOps() {
	tests := []struct {
		name string
		req  model.TrackRequest
	}{
		{name: "Empty request", req: model.TrackRequest{}},
		{name: "Missing type", req: model.TrackRequest{Path: "/articles/x", SessionID: "abc"}},
		{name: "Unknown type", req: model.TrackRequest{Type: "heartbeat", SessionID: "abc"}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, ok := s.service.BuildSubmission(tt.req)
			s.False(ok)
		})
	}
}

func (s *AnalyticsServiceTestSuite) TestBuildSubmission_PageView() {
	sub, ok := s.service.BuildSubmission(model.TrackRequest{
		Type:          "pageview",
		SessionID:     "abc",
		Path:          "/articles/x",
		Title:         "X",
		Referrer:      "https://google.com",
		UserAgent:     "UA",
		Language:      "en-US",
		ViewportWidth: 390,
		Timestamp:     500,
	})

	s.True(ok)
	s.Require().NotNil(sub.PageView)
	s.Nil(sub.Click)
	s.Nil(sub.Event)
	s.Equal("abc", sub.PageView.SessionID)
	s.Equal("/articles/x", sub.PageView.Path)
	s.Equal(int64(500), sub.PageView.Timestamp, "client timestamp kept when present")
	s.Equal(390, sub.PageView.Client.ViewportWidth)
}

func (s *AnalyticsServiceTestSuite) TestBuildSubmission_StampsServerTime() {
	sub, ok := s.service.BuildSubmission(model.TrackRequest{Type: "pageview", SessionID: "abc", Path: "/"})

	s.True(ok)
	s.Equal(int64(1_000_000), sub.PageView.Timestamp)
}

func (s *AnalyticsServiceTestSuite) TestBuildSubmission_AssignsSessionToken() {
	sub, ok := s.service.BuildSubmission(model.TrackRequest{Type: "pageview", Path: "/"})

	s.True(ok)
	s.NotEmpty(sub.PageView.SessionID)
}

func (s *AnalyticsServiceTestSuite) TestBuildSubmission_Click() {
	sub, ok := s.service.BuildSubmission(model.TrackRequest{
		Type:        "click",
		SessionID:   "abc",
		Path:        "/",
		X:           10,
		Y:           20,
		ElementType: "article_link",
		TargetURL:   "/articles/x",
		Timestamp:   42,
	})

	s.True(ok)
	s.Require().NotNil(sub.Click)
	s.Equal(10, sub.Click.X)
	s.Equal("article_link", sub.Click.ElementType)
	s.Equal("/articles/x", sub.Click.TargetURL)
}

func (s *AnalyticsServiceTestSuite) TestBuildSubmission_EventPayload() {
	sub, ok := s.service.BuildSubmission(model.TrackRequest{
		Type:      "event",
		SessionID: "abc",
		Path:      "/articles/x",
		EventType: "bounce_rate",
		Timestamp: 42,
		Data: map[string]any{
			// JSON numbers decode as float64.
			"pagesInSession": float64(3),
			"hasScrolled":    true,
			"hasClicked":     false,
			"campaign":       "spring",
		},
	})

	s.True(ok)
	s.Require().NotNil(sub.Event)
	s.Equal(model.KindBounceCheck, sub.Event.Kind)
	s.Equal("bounce_rate", sub.Event.RawKind)
	s.Equal(3, sub.Event.Payload.PagesInSession)
	s.True(sub.Event.Payload.HasScrolled)
	s.False(sub.Event.Payload.HasClicked)
	s.Equal(map[string]any{"campaign": "spring"}, sub.Event.Payload.Extra)
}

func (s *AnalyticsServiceTestSuite) TestBuildSubmission_UnknownEventKind() {
	sub, ok := s.service.BuildSubmission(model.TrackRequest{
		Type:      "event",
		SessionID: "abc",
		EventType: "ab_test_variant",
	})

	s.True(ok)
	s.Equal(model.KindOther, sub.Event.Kind)
	s.Equal("ab_test_variant", sub.Event.RawKind)
}

func (s *AnalyticsServiceTestSuite) TestTrackDelegatesToWriter() {
	sub := model.Submission{Click: &model.Click{SessionID: "abc", Timestamp: 1}}
	s.writer.On("Append", mock.Anything, sub).Return(nil)

	s.NoError(s.service.Track(context.Background(), sub))
	s.writer.AssertExpectations(s.T())
}

func (s *AnalyticsServiceTestSuite) dashboardDoc() model.Log {
	doc := model.NewLog()
	doc.PageViews = []model.PageView{
		{SessionID: "abc", Path: "/articles/x", Referrer: "https://google.com", Timestamp: 999_999},
	}
	doc.FirstDay = 999_999
	return *doc
}

func (s *AnalyticsServiceTestSuite) TestDashboardSources() {
	s.writer.On("Snapshot", mock.Anything).Return(s.dashboardDoc(), nil)

	payload, err := s.service.Dashboard(context.Background(), "sources", "all")

	s.Require().NoError(err)
	sources, ok := payload.(model.TrafficSources)
	s.Require().True(ok)
	s.Equal(1, sources.Sources["Google"])
}

func (s *AnalyticsServiceTestSuite) TestDashboardKnownViews() {
	s.writer.On("Snapshot", mock.Anything).Return(s.dashboardDoc(), nil)

	for _, view := range []string{
		"overview", "sources", "popular_articles", "click_through_rates",
		"engagement", "daily_stats", "hourly", "realtime", "devices", "social",
	} {
		payload, err := s.service.Dashboard(context.Background(), view, "month")
		s.NoError(err, "view=%s", view)
		s.NotNil(payload, "view=%s", view)
	}
}

func (s *AnalyticsServiceTestSuite) TestDashboardUnknownView() {
	s.writer.On("Snapshot", mock.Anything).Return(s.dashboardDoc(), nil)

	_, err := s.service.Dashboard(context.Background(), "conversion_funnel", "all")

	s.Error(err)
	s.IsType(&ValidationError{}, err)
	s.EqualError(err, "Invalid analytics type")
}

func (s *AnalyticsServiceTestSuite) TestDashboardSnapshotError() {
	s.writer.On("Snapshot", mock.Anything).Return(model.Log{}, context.DeadlineExceeded)

	_, err := s.service.Dashboard(context.Background(), "sources", "all")
	s.ErrorIs(err, context.DeadlineExceeded)
}
