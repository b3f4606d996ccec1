package commands

import (
	"context"
	"log/slog"
	"time"

	"garden-stock-api/internal/pkg/clock"
	"garden-stock-api/internal/pkg/errs"
	"garden-stock-api/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/singleflight"
)

var tracer = otel.Tracer("garden-stock-api/internal/usecase/commands")

const refreshKey = "refresh"

type RefreshCommands interface {
	// Refresh runs one fetch-extract-store pass and returns the timestamp
	// written to every category it saw. Overlapping calls share one pass.
	Refresh(ctx context.Context) (time.Time, error)
}

type refreshUseCaseImpl struct {
	fetcher   shared.PageFetcher
	extractor shared.PageExtractor
	store     shared.SnapshotWriter
	clock     clock.Clock
	group     singleflight.Group
}

func NewRefreshUseCase(
	fetcher shared.PageFetcher,
	extractor shared.PageExtractor,
	store shared.SnapshotWriter,
	clock clock.Clock,
) RefreshCommands {
	return &refreshUseCaseImpl{
		fetcher:   fetcher,
		extractor: extractor,
		store:     store,
		clock:     clock,
	}
}

func (r *refreshUseCaseImpl) Refresh(ctx context.Context) (time.Time, error) {
	ch := r.group.DoChan(refreshKey, func() (any, error) {
		// detached so one caller giving up does not fail the others
		return r.run(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return time.Time{}, res.Err
		}
		return res.Val.(time.Time), nil
	case <-ctx.Done():
		return time.Time{}, ctx.Err()
	}
}

func (r *refreshUseCaseImpl) run(ctx context.Context) (time.Time, error) {
	runID := uuid.New()

	ctx, span := tracer.Start(ctx, "Refresh", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	span.SetAttributes(attribute.String("refresh.id", runID.String()))

	log := slog.With("refresh_id", runID.String())
	if sc := span.SpanContext(); sc.IsValid() {
		log = log.With("trace_id", sc.TraceID().String())
	}

	started := r.clock.Now()
	log.Info("Refresh started")

	html, err := r.fetcher.Fetch(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "fetch failed")
		log.Error("Refresh aborted: fetch failed", "error", err)
		return time.Time{}, err
	}

	extraction, err := r.extractor.Extract(ctx, html)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "extraction failed")
		log.Error("Refresh aborted: extraction failed", "error", err)
		return time.Time{}, err
	}

	at := r.clock.Now().UTC().Truncate(time.Millisecond)
	snaps := extraction.Snapshots(at)
	if err := r.store.PutMany(ctx, snaps); err != nil {
		// categories that were written stay written
		span.RecordError(err)
		span.SetStatus(codes.Error, "store failed")
		log.Error("Refresh stored partially", "error", err)
		return time.Time{}, errs.Wrap(err, "store snapshots")
	}

	span.SetAttributes(attribute.Int("refresh.categories", len(snaps)))
	log.Info("Refresh completed",
		"categories", len(snaps),
		"last_updated", at,
		"duration", r.clock.Now().Sub(started),
	)
	return at, nil
}
