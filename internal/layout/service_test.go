package layout_test

import (
	"context"
	"testing"

	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/driftlab/pulseboard/internal/module"
	"github.com/driftlab/pulseboard/internal/repository"
	"github.com/driftlab/pulseboard/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLayoutService_SaveAssignsIDAndTimestamp(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.LayoutRepository{}
	repo.On("Save", ctx, mock.Anything).Return(nil)

	svc := layout.NewService(repo, nil)
	l, err := svc.Save(ctx, layout.SaveRequest{
		Name: "evening",
		Modules: []layout.ModuleSnapshot{
			{Type: "scup-gauge", Position: module.Position{X: 20, Y: 20}, Size: module.Size{Width: 220, Height: 220}},
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, l.ID)
	require.False(t, l.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestLayoutService_SaveValidation(t *testing.T) {
	repo := &mocks.LayoutRepository{}
	svc := layout.NewService(repo, nil)

	_, err := svc.Save(context.Background(), layout.SaveRequest{Name: "   "})
	require.ErrorIs(t, err, layout.ErrInvalidInput)
}

func TestLayoutService_GetMapsNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.LayoutRepository{}
	repo.On("Get", ctx, "missing").Return((*layout.Layout)(nil), repository.ErrNotFound)

	svc := layout.NewService(repo, nil)
	_, err := svc.Get(ctx, "missing")
	require.ErrorIs(t, err, layout.ErrLayoutNotFound)
}

func TestLayoutService_DeleteMapsNotFound(t *testing.T) {
	ctx := context.Background()

	repo := &mocks.LayoutRepository{}
	repo.On("Delete", ctx, "missing").Return(repository.ErrNotFound)

	svc := layout.NewService(repo, nil)
	require.ErrorIs(t, svc.Delete(ctx, "missing"), layout.ErrLayoutNotFound)
}
