package layout

import "context"

// Repository provides persistence for layouts.
type Repository interface {
	Save(ctx context.Context, l *Layout) error
	Get(ctx context.Context, id string) (*Layout, error)
	GetByName(ctx context.Context, name string) (*Layout, error)
	List(ctx context.Context) ([]Summary, error)
	Delete(ctx context.Context, id string) error
}
