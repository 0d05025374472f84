package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/driftlab/pulseboard/internal/layout"
	"github.com/driftlab/pulseboard/internal/module"
	"github.com/driftlab/pulseboard/internal/repository"
	"github.com/stretchr/testify/require"
)

func testLayout(id, name string) *layout.Layout {
	return &layout.Layout{
		ID:          id,
		Name:        name,
		Description: "test arrangement",
		Modules: []layout.ModuleSnapshot{
			{
				Type:     "scup-gauge",
				Position: module.Position{X: 20, Y: 20},
				Size:     module.Size{Width: 220, Height: 220, MinWidth: 140, MinHeight: 140},
				Config:   map[string]any{"smoothing": 0.5},
			},
			{
				Type:     "neural-monitor",
				Position: module.Position{X: 260, Y: 20},
				Size:     module.Size{Width: 420, Height: 240},
			},
		},
		Connections: []layout.ConnectionSnapshot{
			{SourceModule: 0, SourcePort: 0, TargetModule: 1, TargetPort: 0},
		},
		CreatedAt: time.Now(),
	}
}

func TestLayoutRepository_SaveAndGet(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testLayout("l1", "morning")))

	got, err := repo.Get(ctx, "l1")
	require.NoError(t, err)
	require.Equal(t, "morning", got.Name)
	require.Len(t, got.Modules, 2)
	require.Len(t, got.Connections, 1)
	require.Equal(t, "scup-gauge", got.Modules[0].Type)
	require.Equal(t, 20.0, got.Modules[0].Position.X)

	_, err = repo.Get(ctx, "nonexistent")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLayoutRepository_GetByNameReturnsNewest(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()

	older := testLayout("l1", "default")
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Save(ctx, older))

	newer := testLayout("l2", "default")
	require.NoError(t, repo.Save(ctx, newer))

	got, err := repo.GetByName(ctx, "default")
	require.NoError(t, err)
	require.Equal(t, "l2", got.ID)

	_, err = repo.GetByName(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLayoutRepository_List(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testLayout("l1", "a")))
	require.NoError(t, repo.Save(ctx, testLayout("l2", "b")))

	summaries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	require.Equal(t, 2, summaries[0].ModuleCount)
}

func TestLayoutRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	repo := NewLayoutRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, testLayout("l1", "a")))
	require.NoError(t, repo.Delete(ctx, "l1"))

	_, err := repo.Get(ctx, "l1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	require.ErrorIs(t, repo.Delete(ctx, "l1"), repository.ErrNotFound)
}
