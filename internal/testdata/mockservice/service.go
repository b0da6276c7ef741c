package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"site-analytics-service/internal/model"
	"site-analytics-service/internal/service"
)

type Service struct {
	mock.Mock
}

// Interface compliance check
var _ service.AnalyticsService = &Service{}

func (m *Service) BuildSubmission(req model.TrackRequest) (model.Submission, bool) {
	args := m.Called(req)
	return args.Get(0).(model.Submission), args.Bool(1)
}

func (m *Service) Track(ctx context.Context, sub model.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *Service) Dashboard(ctx context.Context, viewType, period string) (any, error) {
	args := m.Called(ctx, viewType, period)
	return args.Get(0), args.Error(1)
}

func (m *Service) Export(ctx context.Context, format, period string, detailed bool) (service.ExportResult, error) {
	args := m.Called(ctx, format, period, detailed)
	return args.Get(0).(service.ExportResult), args.Error(1)
}

func (m *Service) Purge(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
