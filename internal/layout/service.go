// Package layout persists named arrangements of modules and connections.
package layout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/driftlab/pulseboard/internal/repository"
	"github.com/google/uuid"
)

// Service handles layout operations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService creates a new layout service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// SaveRequest defines layout creation inputs.
type SaveRequest struct {
	Name        string
	Description string
	Modules     []ModuleSnapshot
	Connections []ConnectionSnapshot
}

// Save persists a new layout snapshot.
func (s *Service) Save(ctx context.Context, req SaveRequest) (*Layout, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrInvalidInput
	}

	l := &Layout{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Modules:     req.Modules,
		Connections: req.Connections,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Save(ctx, l); err != nil {
		return nil, fmt.Errorf("saving layout: %w", err)
	}

	s.logger.Info("layout saved", "layout", l.ID, "name", l.Name, "modules", len(l.Modules))
	return l, nil
}

// Get fetches a layout by ID.
func (s *Service) Get(ctx context.Context, id string) (*Layout, error) {
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("getting layout: %w", err)
	}
	return l, nil
}

// GetByName fetches the most recent layout with the given name.
func (s *Service) GetByName(ctx context.Context, name string) (*Layout, error) {
	l, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrLayoutNotFound
		}
		return nil, fmt.Errorf("getting layout by name: %w", err)
	}
	return l, nil
}

// List returns layout summaries.
func (s *Service) List(ctx context.Context) ([]Summary, error) {
	return s.repo.List(ctx)
}

// Delete removes a layout.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrLayoutNotFound
		}
		return fmt.Errorf("deleting layout: %w", err)
	}
	return nil
}
