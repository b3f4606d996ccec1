package scraper

import (
	"bytes"
	"context"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/pkg/errs"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("garden-stock-api/internal/infra/scraper")

type Extractor struct {
	layout Layout
}

// NewExtractor uses GridLayout when layout is nil.
func NewExtractor(layout Layout) *Extractor {
	if layout == nil {
		layout = GridLayout{}
	}
	return &Extractor{layout: layout}
}

func NewGridExtractor() *Extractor {
	return NewExtractor(GridLayout{})
}

func (e *Extractor) Extract(ctx context.Context, html []byte) (stock.Extraction, error) {
	_, span := tracer.Start(ctx, "Extract")
	defer span.End()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to parse html")
		return nil, errs.Mark(errs.Wrap(err, "parse html"), errs.ErrExtractionFailed)
	}

	sections, err := e.layout.Sections(doc)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to locate sections")
		if !errs.Is(err, errs.ErrExtractionFailed) {
			err = errs.Mark(err, errs.ErrExtractionFailed)
		}
		return nil, err
	}

	out := stock.Extraction{}
	for _, sec := range sections {
		category, ok := stock.MatchHeading(sec.Heading)
		if !ok {
			continue
		}

		entry, seen := out[category]
		if sec.HasUpdate {
			seconds := stock.ParseUpdateSeconds(sec.UpdateText)
			entry.RefreshIn = &seconds
		}
		switch {
		case sec.HasList:
			items := make([]stock.Item, 0, len(sec.Items))
			for _, text := range sec.Items {
				items = append(items, stock.ParseItem(text))
			}
			entry.Items = items
		case !seen:
			// recognized, but no list on this pass
			entry.Items = []stock.Item{}
		}
		out[category] = entry
	}

	span.SetAttributes(
		attribute.Int("scraper.sections", len(sections)),
		attribute.Int("scraper.categories", len(out)),
	)
	return out, nil
}
