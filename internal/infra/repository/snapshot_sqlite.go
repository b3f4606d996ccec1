package repository

import (
	"context"
	"database/sql"
	"time"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/infra"
	"garden-stock-api/internal/pkg/pgconv"
	"garden-stock-api/internal/pkg/ptr"
)

const (
	sqliteSchema = `
CREATE TABLE IF NOT EXISTS stock_snapshots (
	category     TEXT PRIMARY KEY,
	items        TEXT NOT NULL,
	refresh_in   INTEGER,
	last_updated TEXT NOT NULL
)`

	sqliteUpsertSnapshot = `
INSERT INTO stock_snapshots (category, items, refresh_in, last_updated)
VALUES (?, ?, ?, ?)
ON CONFLICT (category) DO UPDATE SET
	items = excluded.items,
	refresh_in = excluded.refresh_in,
	last_updated = excluded.last_updated`

	sqliteSelectSnapshot = `
SELECT category, items, refresh_in, last_updated FROM stock_snapshots WHERE category = ?`

	sqliteSelectSnapshots = `
SELECT category, items, refresh_in, last_updated FROM stock_snapshots`
)

type SQLiteSnapshotStore struct {
	db *sql.DB
}

func NewSQLiteSnapshotStore(db *sql.DB) *SQLiteSnapshotStore {
	return &SQLiteSnapshotStore{db: db}
}

func (s *SQLiteSnapshotStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteSchema); err != nil {
		return infra.WrapRepoErr("failed to create stock_snapshots table", err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) Get(ctx context.Context, category stock.Category) (*stock.CategorySnapshot, error) {
	row := s.db.QueryRowContext(ctx, sqliteSelectSnapshot, string(category))
	snap, err := scanSQLiteSnapshot(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("snapshot not found for "+string(category), err, infra.KindNotFound)
		}
		return nil, err
	}
	return snap, nil
}

func (s *SQLiteSnapshotStore) GetAll(ctx context.Context) (stock.StockSnapshot, error) {
	rows, err := s.db.QueryContext(ctx, sqliteSelectSnapshots)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list snapshots", err)
	}
	defer rows.Close()

	all := stock.NewStockSnapshot()
	for rows.Next() {
		snap, err := scanSQLiteSnapshot(rows)
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

func (s *SQLiteSnapshotStore) Put(ctx context.Context, snap stock.CategorySnapshot) error {
	raw, err := encodeItems(snap.Items)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, sqliteUpsertSnapshot,
		string(snap.Category),
		string(raw),
		ptr.IntToNull(snap.RefreshIn),
		snap.LastUpdated.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to upsert snapshot for "+string(snap.Category), err)
	}
	return nil
}

func (s *SQLiteSnapshotStore) PutMany(ctx context.Context, snaps []stock.CategorySnapshot) error {
	return putEach(ctx, snaps, s.Put)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLiteSnapshot(row rowScanner) (*stock.CategorySnapshot, error) {
	var (
		category    string
		items       string
		refreshIn   sql.NullInt64
		lastUpdated string
	)
	if err := row.Scan(&category, &items, &refreshIn, &lastUpdated); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, err
		}
		return nil, infra.WrapRepoErr("failed to scan snapshot", err)
	}

	decoded, err := decodeItems(category, []byte(items))
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, lastUpdated)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid last_updated for "+category, err, infra.KindCorruptRecord)
	}

	return &stock.CategorySnapshot{
		Category:    stock.Category(category),
		Items:       decoded,
		RefreshIn:   ptr.IntFromNull(refreshIn),
		LastUpdated: ts,
	}, nil
}
