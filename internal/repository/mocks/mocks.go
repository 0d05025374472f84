package mocks

import (
	"context"

	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/stretchr/testify/mock"
)

// LayoutRepository is a mock for layout.Repository.
type LayoutRepository struct {
	mock.Mock
}

func (m *LayoutRepository) Save(ctx context.Context, l *layout.Layout) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *LayoutRepository) Get(ctx context.Context, id string) (*layout.Layout, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*layout.Layout); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LayoutRepository) GetByName(ctx context.Context, name string) (*layout.Layout, error) {
	args := m.Called(ctx, name)
	if l, ok := args.Get(0).(*layout.Layout); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LayoutRepository) List(ctx context.Context) ([]layout.Summary, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]layout.Summary); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LayoutRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
