//go:build unit

package stock_test

import (
	"testing"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories(t *testing.T) {
	t.Run("登録順で返す", func(t *testing.T) {
		assert.Equal(t, []stock.Category{
			stock.CategorySeeds,
			stock.CategoryGear,
			stock.CategoryEggShop,
			stock.CategoryHoney,
			stock.CategoryCosmetics,
		}, stock.Categories())
	})

	t.Run("戻り値の変更はレジストリに影響しない", func(t *testing.T) {
		got := stock.Categories()
		got[0] = "broken"
		assert.Equal(t, stock.CategorySeeds, stock.Categories()[0])
	})
}

func TestParseCategory(t *testing.T) {
	for _, name := range []string{"seeds", "gear", "egg_shop", "honey", "cosmetics"} {
		t.Run(name+" OK", func(t *testing.T) {
			c, err := stock.ParseCategory(name)
			require.NoError(t, err)
			assert.Equal(t, name, c.String())
		})
	}

	for _, name := range []string{"", "pets", "Seeds", "egg shop"} {
		t.Run("不正なカテゴリNG: "+name, func(t *testing.T) {
			_, err := stock.ParseCategory(name)
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrInvalidCategory))
		})
	}
}

func TestMatchHeading(t *testing.T) {
	tests := []struct {
		heading string
		want    stock.Category
		ok      bool
	}{
		{"Gear Stock", stock.CategoryGear, true},
		{"  EGG STOCK ", stock.CategoryEggShop, true},
		{"Seeds Stock", stock.CategorySeeds, true},
		{"Honey Event Stock", stock.CategoryHoney, true},
		{"Cosmetics", stock.CategoryCosmetics, true},
		{"Egg Seeds Bundle", stock.CategoryEggShop, true},
		{"Weather", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			got, ok := stock.MatchHeading(tt.heading)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
