//go:build unit

package handler_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"garden-stock-api/internal/handler"
	"garden-stock-api/internal/handler/api"
	resdto "garden-stock-api/internal/handler/dto/response"
	"garden-stock-api/internal/infra/db"
	"garden-stock-api/internal/infra/repository"
	"garden-stock-api/internal/infra/scraper"
	"garden-stock-api/internal/pkg/clock"
	"garden-stock-api/internal/pkg/config"
	"garden-stock-api/internal/usecase/commands"
	"garden-stock-api/internal/usecase/queries"
	"garden-stock-api/tests/common/fixture"
	"garden-stock-api/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

// RouterTestSuite drives the real pipeline: fake source page -> scraper ->
// sqlite -> gin.
type RouterTestSuite struct {
	suite.Suite
	router *gin.Engine
	source *fixture.SourceServer
	clock  *clock.MockClock
}

var firstPass = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func (s *RouterTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := config.NewTestConfig()
	s.source = fixture.NewSourceServer(s.T(), fixture.StockPageHTML)
	cfg.Scraper.SourceURL = s.source.URL

	database, cleanup, err := db.OpenSQLite(cfg.Store.SQLitePath)
	s.Require().NoError(err)
	s.T().Cleanup(cleanup)

	store := repository.NewSQLiteSnapshotStore(database)
	s.Require().NoError(store.EnsureSchema(context.Background()))

	s.clock = clock.NewMockClock(firstPass)
	refresh := commands.NewRefreshUseCase(scraper.NewFetcher(cfg.Scraper), scraper.NewGridExtractor(), store, s.clock)
	stockHandler := api.NewStockHandler(refresh, queries.NewStockQueries(store))

	s.router = gin.New()
	handler.NewRouter(s.router, cfg, stockHandler)
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}

func (s *RouterTestSuite) refresh() resdto.RefreshResponse {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.RefreshPath, nil)
	var resp resdto.RefreshResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	return resp
}

func (s *RouterTestSuite) TestHealth() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/health", nil)

	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{"status":"ok","message":"Service is healthy"}`, w.Body.String())
	httptest.AssertHeaderPresent(s.T(), w, "X-Request-ID")
}

func (s *RouterTestSuite) TestUnknownRoute() {
	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/grow-a-garden/prices", nil)

	httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Not found")
	httptest.AssertHeaderPresent(s.T(), w, "X-Request-ID")
}

func (s *RouterTestSuite) TestCORS() {
	// httptest requests are addressed to example.com, so the origin must differ
	s.Run("cross-origin read gets wildcard origin", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodGet, api.StockPath, nil,
			map[string]string{"Origin": "https://client.test"})

		s.Equal(http.StatusOK, w.Code)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Access-Control-Allow-Origin": "*"})
	})

	s.Run("preflight is answered without reaching the handler", func() {
		w := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodOptions, api.StockPath, nil,
			map[string]string{
				"Origin":                        "https://client.test",
				"Access-Control-Request-Method": http.MethodGet,
			})

		s.Equal(http.StatusNoContent, w.Code)
		httptest.AssertHeaders(s.T(), w, map[string]string{"Access-Control-Allow-Origin": "*"})
		s.Contains(w.Header().Get("Access-Control-Allow-Methods"), http.MethodGet)
	})
}

func (s *RouterTestSuite) TestBeforeFirstRefresh() {
	s.Run("full stock is empty with null timestamp", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath, nil)

		var resp resdto.StockResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
		s.Empty(resp.Seeds)
		s.Nil(resp.LastUpdated)
	})

	s.Run("category has no data yet", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath+"?category=gear", nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "no data yet")
	})

	s.Run("unknown category", func() {
		w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath+"?category=nonexistent", nil)
		httptest.AssertErrorResponse(s.T(), w, http.StatusNotFound, "Category not found")
	})
}

func (s *RouterTestSuite) TestRefreshThenRead() {
	resp := s.refresh()
	s.Equal("2025-06-01T12:00:00.000Z", resp.LastUpdated)
	s.EqualValues(1, s.source.Requests())

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath, nil)
	var stockResp resdto.StockResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &stockResp)

	s.Len(stockResp.Seeds, 3)
	s.Len(stockResp.Gear, 2)
	s.Len(stockResp.EggShop, 2)
	s.Len(stockResp.Honey, 1)
	s.Len(stockResp.Cosmetics, 2)
	s.Equal(resdto.ItemResponse{Name: "Carrot", Stock: 12}, stockResp.Seeds[0])
	s.Equal("2025-06-01T12:00:00.000Z", *stockResp.LastUpdated)
	s.Equal(map[string]int{"seeds": 236, "gear": 236, "egg_shop": 721, "honey": 30, "cosmetics": 3723}, stockResp.NextUpdateIn)

	w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath+"?category=egg_shop", nil)
	s.Equal(http.StatusOK, w.Code)
	s.JSONEq(`{
		"egg_shop": [{"name":"Common Egg","stock":2,"price":0},{"name":"Mythical Egg","stock":1,"price":0}],
		"last_updated": "2025-06-01T12:00:00.000Z",
		"next_update_in": 721
	}`, w.Body.String())
}

func (s *RouterTestSuite) TestRefreshIsIdempotentForUnchangedPage() {
	s.refresh()
	first := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath, nil)
	var before resdto.StockResponse
	httptest.AssertSuccessResponse(s.T(), first, http.StatusOK, &before)

	s.clock.Add(5 * time.Minute)
	resp := s.refresh()
	s.Equal("2025-06-01T12:05:00.000Z", resp.LastUpdated)

	second := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath, nil)
	var after resdto.StockResponse
	httptest.AssertSuccessResponse(s.T(), second, http.StatusOK, &after)

	s.Equal(before.Seeds, after.Seeds)
	s.Equal(before.Cosmetics, after.Cosmetics)
	s.NotEqual(*before.LastUpdated, *after.LastUpdated)
}

func (s *RouterTestSuite) TestFailedRefreshKeepsPreviousSnapshot() {
	s.refresh()

	s.source.Respond(http.StatusServiceUnavailable, "maintenance")
	s.clock.Add(5 * time.Minute)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.RefreshPath, nil)
	httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "503")
	httptest.AssertNotCached(s.T(), w)

	w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath, nil)
	var resp resdto.StockResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)
	s.Len(resp.Seeds, 3)
	s.Equal("2025-06-01T12:00:00.000Z", *resp.LastUpdated)
}

func (s *RouterTestSuite) TestPartialPageLeavesOtherCategories() {
	s.refresh()

	s.source.Respond(http.StatusOK, fixture.PartialPageHTML)
	s.clock.Add(5 * time.Minute)
	s.refresh()

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath, nil)
	var resp resdto.StockResponse
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &resp)

	s.Equal([]resdto.ItemResponse{{Name: "Sprinkler", Stock: 7}}, resp.Gear)
	s.Len(resp.Seeds, 3)
	s.Equal("2025-06-01T12:05:00.000Z", *resp.LastUpdated)

	w = httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.StockPath+"?category=seeds", nil)
	seeds := httptest.AssertCategoryResponse(s.T(), w, "seeds")
	s.Len(seeds.Items, 3)
	s.Equal("2025-06-01T12:00:00.000Z", seeds.LastUpdated)
}

func (s *RouterTestSuite) TestLayoutChangeIsReported() {
	s.source.Respond(http.StatusOK, fixture.NoContainerHTML)

	w := httptest.PerformRequest(s.T(), s.router, http.MethodGet, api.RefreshPath, nil)

	httptest.AssertErrorResponse(s.T(), w, http.StatusInternalServerError, "container not found")
}
