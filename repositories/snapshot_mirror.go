package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Dosada05/beach-tournament/models"
	"golang.org/x/sync/errgroup"
)

type mirrorSnapshotRepository struct {
	primary SnapshotRepository
	mirrors []SnapshotRepository
	logger  *slog.Logger
}

// NewMirrorSnapshotRepository loads from primary only. Save succeeds or fails with
// the primary; mirrors are then written concurrently and their failures are logged.
func NewMirrorSnapshotRepository(primary SnapshotRepository, logger *slog.Logger, mirrors ...SnapshotRepository) SnapshotRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &mirrorSnapshotRepository{primary: primary, mirrors: mirrors, logger: logger}
}

func (r *mirrorSnapshotRepository) Name() string {
	name := "mirror(" + r.primary.Name()
	for _, m := range r.mirrors {
		name += "," + m.Name()
	}
	return name + ")"
}

func (r *mirrorSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	return r.primary.Load(ctx)
}

func (r *mirrorSnapshotRepository) Save(ctx context.Context, s *models.Snapshot) error {
	if err := r.primary.Save(ctx, s); err != nil {
		return fmt.Errorf("%s: %w", r.primary.Name(), err)
	}
	if err := r.saveMirrors(ctx, s); err != nil {
		r.logger.Warn("snapshot mirror out of date", "error", err)
	}
	return nil
}

// saveMirrors writes every mirror even when one of them fails.
func (r *mirrorSnapshotRepository) saveMirrors(ctx context.Context, s *models.Snapshot) error {
	var g errgroup.Group
	for _, target := range r.mirrors {
		target := target
		g.Go(func() error {
			if err := target.Save(ctx, s); err != nil {
				return fmt.Errorf("%s: %w", target.Name(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
