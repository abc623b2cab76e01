package repositories

import (
	"context"
	"errors"

	"github.com/Dosada05/beach-tournament/models"
)

var ErrSnapshotCorrupt = errors.New("stored snapshot cannot be decoded")

// SnapshotRepository persists the whole engine state as one unit.
// Load returns a fresh snapshot when nothing has been stored yet.
// Neither method retries.
type SnapshotRepository interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, s *models.Snapshot) error
	Name() string
}
