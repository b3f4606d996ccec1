package queries

import (
	"context"
	"time"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/pkg/errs"
	"garden-stock-api/internal/usecase/shared"
)

type CategoryView struct {
	Category    stock.Category
	Items       []stock.Item
	RefreshIn   *int
	LastUpdated time.Time
}

type StockView struct {
	// Categories has an entry for every known category; never-scraped ones
	// carry an empty item list.
	Categories  map[stock.Category][]stock.Item
	RefreshIn   map[stock.Category]int
	LastUpdated *time.Time
}

type StockQueries interface {
	GetAll(ctx context.Context) (*StockView, error)
	GetCategory(ctx context.Context, name string) (*CategoryView, error)
}

type stockQueriesImpl struct {
	store shared.SnapshotReader
}

func NewStockQueries(store shared.SnapshotReader) StockQueries {
	return &stockQueriesImpl{store: store}
}

func (q *stockQueriesImpl) GetAll(ctx context.Context) (*StockView, error) {
	snapshot, err := q.store.GetAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "load stock snapshot")
	}

	view := &StockView{
		Categories:  make(map[stock.Category][]stock.Item, len(snapshot)),
		RefreshIn:   make(map[stock.Category]int),
		LastUpdated: snapshot.LastUpdated(),
	}
	for _, c := range stock.Categories() {
		snap := snapshot[c]
		if snap == nil {
			view.Categories[c] = []stock.Item{}
			continue
		}
		view.Categories[c] = snap.Items
		if snap.RefreshIn != nil {
			view.RefreshIn[c] = *snap.RefreshIn
		}
	}
	return view, nil
}

func (q *stockQueriesImpl) GetCategory(ctx context.Context, name string) (*CategoryView, error) {
	category, err := stock.ParseCategory(name)
	if err != nil {
		return nil, err
	}

	snap, err := q.store.Get(ctx, category)
	if err != nil {
		return nil, err
	}

	items := snap.Items
	if items == nil {
		items = []stock.Item{}
	}
	return &CategoryView{
		Category:    category,
		Items:       items,
		RefreshIn:   snap.RefreshIn,
		LastUpdated: snap.LastUpdated,
	}, nil
}
