package repository

import (
	"context"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/infra"
	"garden-stock-api/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	postgresSchema = `
CREATE TABLE IF NOT EXISTS stock_snapshots (
	category     TEXT PRIMARY KEY,
	items        JSONB NOT NULL,
	refresh_in   INTEGER,
	last_updated TIMESTAMPTZ NOT NULL
)`

	postgresUpsertSnapshot = `
INSERT INTO stock_snapshots (category, items, refresh_in, last_updated)
VALUES ($1, $2, $3, $4)
ON CONFLICT (category) DO UPDATE SET
	items = EXCLUDED.items,
	refresh_in = EXCLUDED.refresh_in,
	last_updated = EXCLUDED.last_updated`

	postgresSelectSnapshot = `
SELECT category, items, refresh_in, last_updated FROM stock_snapshots WHERE category = $1`

	postgresSelectSnapshots = `
SELECT category, items, refresh_in, last_updated FROM stock_snapshots`
)

// DBTX is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PostgresSnapshotStore struct {
	db DBTX
}

func NewPostgresSnapshotStore(db DBTX) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{db: db}
}

func (s *PostgresSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, postgresSchema); err != nil {
		return infra.WrapRepoErr("failed to create stock_snapshots table", err)
	}
	return nil
}

func (s *PostgresSnapshotStore) Get(ctx context.Context, category stock.Category) (*stock.CategorySnapshot, error) {
	row := s.db.QueryRow(ctx, postgresSelectSnapshot, string(category))
	snap, err := scanPostgresSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("snapshot not found for "+string(category), err, infra.KindNotFound)
		}
		return nil, err
	}
	return snap, nil
}

func (s *PostgresSnapshotStore) GetAll(ctx context.Context) (stock.StockSnapshot, error) {
	rows, err := s.db.Query(ctx, postgresSelectSnapshots)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list snapshots", err)
	}
	defer rows.Close()

	all := stock.NewStockSnapshot()
	for rows.Next() {
		snap, err := scanPostgresSnapshot(rows)
		if err != nil {
			return nil, err
		}
		if _, known := all[snap.Category]; known {
			all[snap.Category] = snap
		}
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate snapshots", err)
	}
	return all, nil
}

func (s *PostgresSnapshotStore) Put(ctx context.Context, snap stock.CategorySnapshot) error {
	raw, err := encodeItems(snap.Items)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, postgresUpsertSnapshot,
		string(snap.Category),
		raw,
		pgconv.IntPtrToPgtype(snap.RefreshIn),
		pgconv.TimeToPgtype(snap.LastUpdated),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert snapshot for "+string(snap.Category), err)
	}
	return nil
}

func (s *PostgresSnapshotStore) PutMany(ctx context.Context, snaps []stock.CategorySnapshot) error {
	return putEach(ctx, snaps, s.Put)
}

func scanPostgresSnapshot(row pgx.Row) (*stock.CategorySnapshot, error) {
	var (
		category    string
		items       []byte
		refreshIn   pgtype.Int4
		lastUpdated pgtype.Timestamptz
	)
	if err := row.Scan(&category, &items, &refreshIn, &lastUpdated); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan snapshot", err)
	}

	decoded, err := decodeItems(category, items)
	if err != nil {
		return nil, err
	}

	return &stock.CategorySnapshot{
		Category:    stock.Category(category),
		Items:       decoded,
		RefreshIn:   pgconv.IntPtrFromPgtype(refreshIn),
		LastUpdated: pgconv.TimeFromPgtype(lastUpdated),
	}, nil
}
