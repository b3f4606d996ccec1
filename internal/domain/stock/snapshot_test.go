//go:build unit

package stock_test

import (
	"testing"
	"time"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/pkg/ptr"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockSnapshot_LastUpdated(t *testing.T) {
	t.Run("未取得ならnil", func(t *testing.T) {
		s := stock.NewStockSnapshot()
		assert.Len(t, s, len(stock.Categories()))
		assert.Nil(t, s.LastUpdated())
	})

	t.Run("最新の時刻を返す", func(t *testing.T) {
		older := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
		newer := older.Add(5 * time.Minute)

		s := stock.NewStockSnapshot()
		s[stock.CategorySeeds] = &stock.CategorySnapshot{Category: stock.CategorySeeds, LastUpdated: older}
		s[stock.CategoryHoney] = &stock.CategorySnapshot{Category: stock.CategoryHoney, LastUpdated: newer}

		got := s.LastUpdated()
		require.NotNil(t, got)
		assert.True(t, got.Equal(newer))
	})
}

func TestExtraction_Snapshots(t *testing.T) {
	at := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	ext := stock.Extraction{
		stock.CategoryHoney: {Items: nil},
		stock.CategorySeeds: {
			Items:     []stock.Item{{Name: "Carrot", Stock: 12}},
			RefreshIn: ptr.Of(236),
		},
	}

	want := []stock.CategorySnapshot{
		{
			Category:    stock.CategorySeeds,
			Items:       []stock.Item{{Name: "Carrot", Stock: 12}},
			RefreshIn:   ptr.Of(236),
			LastUpdated: at,
		},
		{
			Category:    stock.CategoryHoney,
			Items:       []stock.Item{},
			LastUpdated: at,
		},
	}

	got := ext.Snapshots(at)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshots mismatch (-want +got):\n%s", diff)
	}
	assert.NotNil(t, got[1].Items)
}
