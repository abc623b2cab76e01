package repositories

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/Dosada05/beach-tournament/storage"
)

type objectSnapshotRepository struct {
	store storage.ObjectStore
	key   string
}

// NewObjectSnapshotRepository keeps the snapshot as a single JSON object in a bucket.
func NewObjectSnapshotRepository(store storage.ObjectStore, key string) SnapshotRepository {
	return &objectSnapshotRepository{store: store, key: key}
}

func (r *objectSnapshotRepository) Name() string {
	return "object:" + r.key
}

func (r *objectSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	body, err := r.store.Download(ctx, r.key)
	if errors.Is(err, storage.ErrObjectNotFound) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot object %s: %w", r.key, err)
	}
	return decodeSnapshot(data)
}

func (r *objectSnapshotRepository) Save(ctx context.Context, s *models.Snapshot) error {
	data, err := encodeSnapshot(s)
	if err != nil {
		return err
	}
	if _, err := r.store.Upload(ctx, r.key, "application/json", bytes.NewReader(data)); err != nil {
		return err
	}
	return nil
}
