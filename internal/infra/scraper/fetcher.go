package scraper

import (
	"context"
	"log/slog"

	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/pkg/errs"

	"github.com/go-resty/resty/v2"
)

type Fetcher struct {
	http *resty.Client
	url  string
}

func NewFetcher(cfg config.ScraperConfig) *Fetcher {
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetHeader("User-Agent", cfg.UserAgent).
		SetHeader("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8").
		SetHeader("Accept-Language", "en-US,en;q=0.9")

	client.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		slog.Debug("stock page fetched",
			"url", res.Request.URL,
			"status", res.StatusCode(),
			"duration", res.Time(),
			"bytes", len(res.Body()),
		)
		return nil
	})

	return &Fetcher{http: client, url: cfg.SourceURL}
}

// Fetch downloads the stock page. Transport failures and non-2xx responses
// are marked errs.ErrFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	res, err := f.http.R().
		SetContext(ctx).
		Get(f.url)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "fetch stock page"), errs.ErrFetchFailed)
	}
	if !res.IsSuccess() {
		return nil, errs.Mark(
			errs.Newf("fetch stock page: unexpected status %d", res.StatusCode()),
			errs.ErrFetchFailed,
		)
	}
	return res.Body(), nil
}
