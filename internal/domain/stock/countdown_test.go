//go:build unit

package stock_test

import (
	"testing"

	"garden-stock-api/internal/domain/stock"

	"github.com/stretchr/testify/assert"
)

func TestParseUpdateSeconds(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"分と秒", "03m 56s", 236},
		{"秒のみ", "45s", 45},
		{"時分秒", "1h 02m 03s", 3723},
		{"スペースなし", "2m30s", 150},
		{"大文字", "04M 10S", 250},
		{"前後に文字列", "restock in about 10m!", 600},
		{"下限未満は30秒", "5s", stock.MinRefreshSeconds},
		{"ゼロも30秒", "0s", stock.MinRefreshSeconds},
		{"空文字はデフォルト", "", stock.DefaultRefreshSeconds},
		{"単位なしはデフォルト", "soon", stock.DefaultRefreshSeconds},
		{"数字のみもデフォルト", "42", stock.DefaultRefreshSeconds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stock.ParseUpdateSeconds(tt.text))
		})
	}
}
