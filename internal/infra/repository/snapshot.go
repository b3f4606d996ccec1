package repository

import (
	"context"
	"encoding/json"

	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/infra"
	"garden-stock-api/internal/pkg/errs"
)

func encodeItems(items []stock.Item) ([]byte, error) {
	if items == nil {
		items = []stock.Item{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to encode items", err, infra.KindCorruptRecord)
	}
	return raw, nil
}

func decodeItems(category string, raw []byte) ([]stock.Item, error) {
	items := []stock.Item{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, infra.WrapRepoErr("failed to decode items for "+category, err, infra.KindCorruptRecord)
	}
	return items, nil
}

// putEach writes every snapshot independently; one failing category does not
// stop the others.
func putEach(ctx context.Context, snaps []stock.CategorySnapshot, put func(context.Context, stock.CategorySnapshot) error) error {
	var failures []error
	for _, snap := range snaps {
		if err := ctx.Err(); err != nil {
			failures = append(failures, err)
			break
		}
		if err := put(ctx, snap); err != nil {
			failures = append(failures, errs.Wrapf(err, "put %s", snap.Category))
		}
	}
	return errs.Join(failures...)
}
