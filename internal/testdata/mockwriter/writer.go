package mockwriter

import (
	"context"

	"github.com/stretchr/testify/mock"

	"site-analytics-service/internal/model"
)

type Writer struct {
	mock.Mock
}

func (m *Writer) Append(ctx context.Context, sub model.Submission) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

func (m *Writer) Snapshot(ctx context.Context) (model.Log, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.Log), args.Error(1)
}

func (m *Writer) Purge(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *Writer) Shutdown() {
	m.Called()
}
