package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/beach-tournament/models"
	"github.com/lib/pq"
)

var ErrSnapshotSchemaMissing = errors.New("tournament_snapshots table does not exist")

// snapshotRowID is the only row of tournament_snapshots.
const snapshotRowID = 1

type postgresSnapshotRepository struct {
	db SQLExecutor
}

func NewPostgresSnapshotRepository(db SQLExecutor) SnapshotRepository {
	return &postgresSnapshotRepository{db: db}
}

func (r *postgresSnapshotRepository) Name() string {
	return "postgres"
}

func (r *postgresSnapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM tournament_snapshots WHERE id = $1`, snapshotRowID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return models.NewSnapshot(), nil
	}
	if err != nil {
		return nil, r.handleError("load", err)
	}
	return decodeSnapshot(data)
}

func (r *postgresSnapshotRepository) Save(ctx context.Context, s *models.Snapshot) error {
	data, err := encodeSnapshot(s)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO tournament_snapshots (id, version, phase, data, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id) DO UPDATE
		SET version = EXCLUDED.version, phase = EXCLUDED.phase, data = EXCLUDED.data, updated_at = NOW()`
	if _, err := r.db.ExecContext(ctx, query, snapshotRowID, s.Version, string(s.Phase), data); err != nil {
		return r.handleError("save", err)
	}
	return nil
}

func (r *postgresSnapshotRepository) handleError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42P01" {
		return fmt.Errorf("%s snapshot: %w", op, ErrSnapshotSchemaMissing)
	}
	return fmt.Errorf("failed to %s snapshot: %w", op, err)
}
