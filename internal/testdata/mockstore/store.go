package mockstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"site-analytics-service/internal/model"
	"site-analytics-service/internal/store"
)

type Store struct {
	mock.Mock
}

// Interface compliance check
var _ store.Store = &Store{}

func (m *Store) Load(ctx context.Context) (*model.Log, error) {
	args := m.Called(ctx)
	return args.Get(0).(*model.Log), args.Error(1)
}

func (m *Store) Save(ctx context.Context, log *model.Log) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}
