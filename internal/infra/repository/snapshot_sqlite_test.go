//go:build unit

package repository_test

import (
	"context"
	"testing"
	"time"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/infra"
	"garden-stock-api/internal/infra/db"
	"garden-stock-api/internal/infra/repository"
	"garden-stock-api/internal/pkg/errs"
	"garden-stock-api/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteStore(t *testing.T) *repository.SQLiteSnapshotStore {
	t.Helper()

	database, cleanup, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(cleanup)

	store := repository.NewSQLiteSnapshotStore(database)
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestSQLiteSnapshotStore_PutGet(t *testing.T) {
	ctx := context.Background()
	at := time.Date(2025, 6, 1, 12, 30, 0, 123_000_000, time.UTC)

	testCases := []struct {
		name string
		snap stock.CategorySnapshot
	}{
		{
			name: "success: items with countdown",
			snap: stock.CategorySnapshot{
				Category: stock.CategorySeeds,
				Items: []stock.Item{
					{Name: "Carrot", Stock: 12},
					{Name: "Strawberry", Stock: 1},
				},
				RefreshIn:   ptr.Of(236),
				LastUpdated: at,
			},
		},
		{
			name: "success: empty list without countdown",
			snap: stock.CategorySnapshot{
				Category:    stock.CategoryHoney,
				Items:       []stock.Item{},
				LastUpdated: at,
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			store := newSQLiteStore(t)

			require.NoError(t, store.Put(ctx, tc.snap))

			got, err := store.Get(ctx, tc.snap.Category)
			require.NoError(t, err)
			if diff := cmp.Diff(tc.snap, *got); diff != "" {
				t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSQLiteSnapshotStore_PutReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	second := first.Add(5 * time.Minute)

	require.NoError(t, store.Put(ctx, stock.CategorySnapshot{
		Category:    stock.CategoryGear,
		Items:       []stock.Item{{Name: "Watering Can", Stock: 3}, {Name: "Trowel", Stock: 2}},
		RefreshIn:   ptr.Of(120),
		LastUpdated: first,
	}))
	require.NoError(t, store.Put(ctx, stock.CategorySnapshot{
		Category:    stock.CategoryGear,
		Items:       []stock.Item{{Name: "Sprinkler", Stock: 1}},
		LastUpdated: second,
	}))

	got, err := store.Get(ctx, stock.CategoryGear)
	require.NoError(t, err)
	assert.Equal(t, []stock.Item{{Name: "Sprinkler", Stock: 1}}, got.Items)
	assert.Nil(t, got.RefreshIn)
	assert.True(t, second.Equal(got.LastUpdated))
}

func TestSQLiteSnapshotStore_GetNotFound(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.Get(context.Background(), stock.CategoryCosmetics)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrSnapshotNotFound))
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}

func TestSQLiteSnapshotStore_GetAll(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteStore(t)

	t.Run("empty store reports every category as missing", func(t *testing.T) {
		all, err := store.GetAll(ctx)
		require.NoError(t, err)

		assert.Len(t, all, len(stock.Categories()))
		for _, c := range stock.Categories() {
			assert.Nil(t, all[c], "category %s", c)
		}
		assert.Nil(t, all.LastUpdated())
	})

	t.Run("PutMany writes each category", func(t *testing.T) {
		at := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		ext := stock.Extraction{
			stock.CategorySeeds: {Items: []stock.Item{{Name: "Carrot", Stock: 12}}},
			stock.CategoryEggShop: {Items: []stock.Item{{Name: "Common Egg", Stock: 2}}},
		}
		require.NoError(t, store.PutMany(ctx, ext.Snapshots(at)))

		all, err := store.GetAll(ctx)
		require.NoError(t, err)

		require.NotNil(t, all[stock.CategorySeeds])
		require.NotNil(t, all[stock.CategoryEggShop])
		assert.Nil(t, all[stock.CategoryGear])
		assert.Equal(t, "Common Egg", all[stock.CategoryEggShop].Items[0].Name)
		require.NotNil(t, all.LastUpdated())
		assert.True(t, at.Equal(*all.LastUpdated()))
	})
}

func TestSQLiteSnapshotStore_PutManyCancelled(t *testing.T) {
	store := newSQLiteStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.PutMany(ctx, []stock.CategorySnapshot{
		{Category: stock.CategorySeeds, Items: []stock.Item{}, LastUpdated: time.Now()},
	})

	assert.ErrorIs(t, err, context.Canceled)
}
