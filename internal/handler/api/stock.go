package api

import (
	"net/http"

	"garden-stock-api/internal/domain/stock"
	resdto "garden-stock-api/internal/handler/dto/response"
	"garden-stock-api/internal/handler/httperr"
	"garden-stock-api/internal/pkg/errs"
	"garden-stock-api/internal/pkg/ptr"
	"garden-stock-api/internal/usecase/commands"
	"garden-stock-api/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const (
	StockPath   = "/api/grow-a-garden/stock"
	RefreshPath = "/api/grow-a-garden/stock/refresh"
)

type StockHandler struct {
	cmds commands.RefreshCommands
	q    queries.StockQueries
}

func NewStockHandler(cmds commands.RefreshCommands, q queries.StockQueries) *StockHandler {
	return &StockHandler{cmds: cmds, q: q}
}

// @Summary API index
// @Description List endpoints and available categories
// @Tags stock
// @Produce json
// @Success 200 {object} resdto.IndexResponse
// @Router / [get]
func (h *StockHandler) Index(c *gin.Context) {
	categories := make([]string, 0, len(stock.Categories()))
	for _, cat := range stock.Categories() {
		categories = append(categories, cat.String())
	}
	c.JSON(http.StatusOK, resdto.IndexResponse{
		Message: "Grow a Garden Stock API",
		Endpoints: map[string]string{
			StockPath:   "GET - full stock, or one category with ?category=<name>",
			RefreshPath: "GET - force a refresh from the source page",
		},
		Categories: categories,
	})
}

// @Summary Get stock
// @Description Latest stock for every category, or for one category when ?category is set
// @Tags stock
// @Produce json
// @Param category query string false "Category name (seeds, gear, egg_shop, honey, cosmetics)"
// @Success 200 {object} resdto.StockResponse
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/grow-a-garden/stock [get]
func (h *StockHandler) GetStock(c *gin.Context) {
	if name := c.Query("category"); name != "" {
		h.getCategory(c, name)
		return
	}

	view, err := h.q.GetAll(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load stock", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromStockView(view))
}

func (h *StockHandler) getCategory(c *gin.Context, name string) {
	view, err := h.q.GetCategory(c.Request.Context(), name)
	if err != nil {
		switch {
		case errs.Is(err, errs.ErrInvalidCategory), errs.Is(err, errs.ErrSnapshotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Category not found or has no data yet", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load stock", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromCategoryView(view))
}

// @Summary Refresh stock
// @Description Scrape the source page now and store the result
// @Tags stock
// @Produce json
// @Success 200 {object} resdto.RefreshResponse
// @Failure 500 {object} map[string]string
// @Router /api/grow-a-garden/stock/refresh [get]
func (h *StockHandler) Refresh(c *gin.Context) {
	at, err := h.cmds.Refresh(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, err.Error(), nil)
		return
	}
	c.JSON(http.StatusOK, resdto.RefreshResponse{
		Message:     "Stock refreshed",
		LastUpdated: *ptr.FormatTime(&at),
	})
}
