package stock

import "time"

// CategorySnapshot is the result of one successful extraction pass for a
// category. Items and LastUpdated are always written together.
type CategorySnapshot struct {
	Category    Category
	Items       []Item
	RefreshIn   *int // seconds until the source page restocks, if it said so
	LastUpdated time.Time
}

// StockSnapshot holds the current snapshot of every known category.
// A nil entry means the category has never been scraped.
type StockSnapshot map[Category]*CategorySnapshot

func NewStockSnapshot() StockSnapshot {
	s := make(StockSnapshot, len(registry))
	for _, c := range registry {
		s[c] = nil
	}
	return s
}

// LastUpdated returns the most recent timestamp among categories, or nil when
// nothing has been scraped yet.
func (s StockSnapshot) LastUpdated() *time.Time {
	var latest *time.Time
	for _, c := range registry {
		snap := s[c]
		if snap == nil {
			continue
		}
		if latest == nil || snap.LastUpdated.After(*latest) {
			t := snap.LastUpdated
			latest = &t
		}
	}
	return latest
}

// CategoryExtraction is what one scrape pass found for a category.
type CategoryExtraction struct {
	Items     []Item
	RefreshIn *int
}

// Extraction maps each category seen on the page to its items. Categories the
// page did not mention are absent.
type Extraction map[Category]CategoryExtraction

// Snapshots stamps every extracted category with the same timestamp, in
// registry order.
func (e Extraction) Snapshots(at time.Time) []CategorySnapshot {
	out := make([]CategorySnapshot, 0, len(e))
	for _, c := range registry {
		ext, ok := e[c]
		if !ok {
			continue
		}
		items := ext.Items
		if items == nil {
			items = []Item{}
		}
		out = append(out, CategorySnapshot{
			Category:    c,
			Items:       items,
			RefreshIn:   ext.RefreshIn,
			LastUpdated: at,
		})
	}
	return out
}
