//go:build e2e

package stock_test

import (
	"net/http"
	"sync"
	"testing"
	"time"

	"garden-stock-api/internal/handler/api"
	"garden-stock-api/internal/handler/dto/response"
	"garden-stock-api/tests/common/fixture"
	"garden-stock-api/tests/common/httptest"
	"garden-stock-api/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StockSuite struct {
	e2e.SharedSuite
}

func TestStockSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(StockSuite))
}

// =============================================================================
// TestGetStock - 取得APIのテスト
// =============================================================================

func (s *StockSuite) TestGetStock() {
	s.Run("Normal case: empty store returns empty lists", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, api.StockPath, nil)

		var resp response.StockResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)
		require.Empty(t, resp.Seeds)
		require.Nil(t, resp.LastUpdated)
	})

	s.Run("Error case: category before first refresh is 404", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, api.StockPath+"?category=gear", nil)

		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "no data yet")
	})
}

// =============================================================================
// TestRefresh - 更新APIのテスト
// =============================================================================

func (s *StockSuite) TestRefresh() {
	s.Run("Normal case: refresh stores all categories in postgres", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, api.RefreshPath, nil)
		var refreshed response.RefreshResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &refreshed)
		require.NotEmpty(t, refreshed.LastUpdated)

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, api.StockPath, nil)
		var resp response.StockResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &resp)

		want := []response.ItemResponse{
			{Name: "Carrot", Stock: 12},
			{Name: "Strawberry", Stock: 4},
			{Name: "Blueberry", Stock: 1},
		}
		if diff := cmp.Diff(want, resp.Seeds); diff != "" {
			t.Errorf("seeds mismatch (-want +got):\n%s", diff)
		}
		require.Len(t, resp.Cosmetics, 2)
		require.Equal(t, refreshed.LastUpdated, *resp.LastUpdated)
		require.Equal(t, 3723, resp.NextUpdateIn["cosmetics"])
	})

	s.Run("Error case: source outage keeps the previous snapshot", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, api.RefreshPath, nil)
		var first response.RefreshResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &first)

		s.Source.Respond(http.StatusServiceUnavailable, "maintenance")
		w = httptest.PerformRequest(t, s.Router, http.MethodGet, api.RefreshPath, nil)
		httptest.AssertErrorResponse(t, w, http.StatusInternalServerError, "503")

		w = httptest.PerformRequest(t, s.Router, http.MethodGet, api.StockPath+"?category=seeds", nil)
		seeds := httptest.AssertCategoryResponse(t, w, "seeds")
		require.Equal(t, first.LastUpdated, seeds.LastUpdated)
		s.Source.Respond(http.StatusOK, fixture.StockPageHTML)
	})

	s.Run("Normal case: concurrent refreshes share one fetch", func() {
		t := s.T()
		s.Source.SetDelay(300 * time.Millisecond)
		defer s.Source.SetDelay(0)
		before := s.Source.Requests()

		const callers = 8
		var wg sync.WaitGroup
		codes := make([]int, callers)
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				codes[i] = httptest.PerformRequest(t, s.Router, http.MethodGet, api.RefreshPath, nil).Code
			}()
		}
		wg.Wait()

		for _, code := range codes {
			require.Equal(t, http.StatusOK, code)
		}
		require.Less(t, s.Source.Requests()-before, int64(callers))
	})
}
