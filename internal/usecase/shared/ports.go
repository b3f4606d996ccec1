package shared

import (
	"context"

	"garden-stock-api/internal/domain/stock"
)

type SnapshotReader interface {
	// Get fails with errs.ErrSnapshotNotFound when the category was never scraped.
	Get(ctx context.Context, category stock.Category) (*stock.CategorySnapshot, error)
	GetAll(ctx context.Context) (stock.StockSnapshot, error)
}

type SnapshotWriter interface {
	Put(ctx context.Context, snap stock.CategorySnapshot) error
	// PutMany writes each snapshot independently and joins the failures.
	PutMany(ctx context.Context, snaps []stock.CategorySnapshot) error
}

type SnapshotStore interface {
	SnapshotReader
	SnapshotWriter
}

type PageFetcher interface {
	Fetch(ctx context.Context) ([]byte, error)
}

type PageExtractor interface {
	Extract(ctx context.Context, html []byte) (stock.Extraction, error)
}
