//go:build unit

package scraper_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"garden-stock-api/internal/infra/scraper"
	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/pkg/errs"
	"garden-stock-api/tests/common/fixture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFetcher(url string) *scraper.Fetcher {
	cfg := config.NewTestConfig().Scraper
	cfg.SourceURL = url
	return scraper.NewFetcher(cfg)
}

func TestFetcher_Fetch(t *testing.T) {
	ctx := context.Background()

	t.Run("success: returns body and sends browser user agent", func(t *testing.T) {
		src := fixture.NewSourceServer(t, fixture.StockPageHTML)

		body, err := newFetcher(src.URL).Fetch(ctx)
		require.NoError(t, err)

		assert.Equal(t, fixture.StockPageHTML, string(body))
		assert.Equal(t, "Mozilla/5.0 (test)", src.LastUserAgent())
	})

	t.Run("error: non-2xx status", func(t *testing.T) {
		src := fixture.NewSourceServer(t, "maintenance")
		src.Respond(http.StatusServiceUnavailable, "maintenance")

		_, err := newFetcher(src.URL).Fetch(ctx)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrFetchFailed))
		assert.Contains(t, err.Error(), "503")
	})

	t.Run("error: unreachable host", func(t *testing.T) {
		src := fixture.NewSourceServer(t, "")
		url := src.URL
		src.Close()

		_, err := newFetcher(url).Fetch(ctx)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrFetchFailed))
	})

	t.Run("error: timeout", func(t *testing.T) {
		src := fixture.NewSourceServer(t, fixture.StockPageHTML)
		cfg := config.NewTestConfig().Scraper
		cfg.SourceURL = src.URL
		cfg.Timeout = time.Nanosecond

		_, err := scraper.NewFetcher(cfg).Fetch(ctx)

		require.Error(t, err)
		assert.True(t, errs.Is(err, errs.ErrFetchFailed))
	})
}
