package response

import (
	"garden-stock-api/internal/domain/stock"
	"garden-stock-api/internal/pkg/ptr"
	"garden-stock-api/internal/usecase/queries"
)

type ItemResponse struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Price int    `json:"price"`
}

type StockResponse struct {
	Seeds        []ItemResponse `json:"seeds"`
	Gear         []ItemResponse `json:"gear"`
	EggShop      []ItemResponse `json:"egg_shop"`
	Honey        []ItemResponse `json:"honey"`
	Cosmetics    []ItemResponse `json:"cosmetics"`
	LastUpdated  *string        `json:"last_updated"`
	NextUpdateIn map[string]int `json:"next_update_in"`
}

// CategoryStockResponse is keyed by the category name, e.g.
// {"gear": [...], "last_updated": "..."}.
type CategoryStockResponse map[string]any

type RefreshResponse struct {
	Message     string `json:"message"`
	LastUpdated string `json:"last_updated"`
}

type IndexResponse struct {
	Message    string            `json:"message"`
	Endpoints  map[string]string `json:"endpoints"`
	Categories []string          `json:"categories"`
}

func FromStockView(v *queries.StockView) StockResponse {
	next := make(map[string]int, len(v.RefreshIn))
	for c, seconds := range v.RefreshIn {
		next[c.String()] = seconds
	}
	return StockResponse{
		Seeds:        fromItems(v.Categories[stock.CategorySeeds]),
		Gear:         fromItems(v.Categories[stock.CategoryGear]),
		EggShop:      fromItems(v.Categories[stock.CategoryEggShop]),
		Honey:        fromItems(v.Categories[stock.CategoryHoney]),
		Cosmetics:    fromItems(v.Categories[stock.CategoryCosmetics]),
		LastUpdated:  ptr.FormatTime(v.LastUpdated),
		NextUpdateIn: next,
	}
}

func FromCategoryView(v *queries.CategoryView) CategoryStockResponse {
	resp := CategoryStockResponse{
		v.Category.String(): fromItems(v.Items),
		"last_updated":      ptr.FormatTime(&v.LastUpdated),
	}
	if v.RefreshIn != nil {
		resp["next_update_in"] = *v.RefreshIn
	}
	return resp
}

func fromItems(items []stock.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ItemResponse{Name: it.Name, Stock: it.Stock, Price: it.Price})
	}
	return out
}
