//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var errorResponse struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &errorResponse)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))

	if expectedErrorMsg != "" {
		assert.Contains(t, errorResponse.Error.Message, expectedErrorMsg,
			"Response error message doesn't contain expected text")
	}
}

type Item struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
	Price int    `json:"price"`
}

// CategoryBody is a decoded ?category=<name> response.
type CategoryBody struct {
	Items        []Item
	LastUpdated  string
	NextUpdateIn *int
}

// AssertCategoryResponse requires a 200 whose items live under the category
// name and returns the decoded body.
func AssertCategoryResponse(t *testing.T, w *httptest.ResponseRecorder, category string) CategoryBody {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, "Response: %s", w.Body.String())

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))

	var body CategoryBody
	itemsJSON, ok := raw[category]
	require.True(t, ok, "response has no %q key: %s", category, w.Body.String())
	require.NoError(t, json.Unmarshal(itemsJSON, &body.Items))
	require.NoError(t, json.Unmarshal(raw["last_updated"], &body.LastUpdated))
	if next, ok := raw["next_update_in"]; ok {
		require.NoError(t, json.Unmarshal(next, &body.NextUpdateIn))
	}
	return body
}
