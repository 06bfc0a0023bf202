package insight_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/salesboard/backend-insight/internal/insight"
	"github.com/salesboard/backend-insight/internal/report"
)

type sellersResponse struct {
	Data []report.SellerReport `json:"data"`
	Meta struct {
		RunID string `json:"run_id"`
		Count int    `json:"count"`
	} `json:"meta"`
}

type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

const requestBody = `{
	"dataset": {
		"sellers": [
			{"id": "s1", "first_name": "Ana", "last_name": "Costa"},
			{"id": "s2", "first_name": "Bo", "last_name": "Lima"}
		],
		"products": [{"sku": "p1", "purchase_price": 40, "sale_price": 100}],
		"purchase_records": [
			{"seller_id": "s1", "items": [{"sku": "p1", "discount": 10, "quantity": 2, "sale_price": 100}]}
		]
	},
	"options": {"revenue": "discounted", "bonus": "tiered"}
}`

func newHandler() *insight.Handler {
	return &insight.Handler{Svc: &insight.Service{}, Validate: validator.New()}
}

func TestSellersEndpoint(t *testing.T) {
	handler := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers", strings.NewReader(requestBody))
	rr := httptest.NewRecorder()
	handler.Sellers(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp sellersResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Meta.Count)
	require.NotEmpty(t, resp.Meta.RunID)

	require.Equal(t, "s1", resp.Data[0].SellerID)
	require.Equal(t, "Ana Costa", resp.Data[0].Name)
	require.Equal(t, 180.00, resp.Data[0].Revenue)
	require.Equal(t, 100.00, resp.Data[0].Profit)
	require.Equal(t, 15.00, resp.Data[0].Bonus)
	require.Equal(t, "s2", resp.Data[1].SellerID)
	require.Equal(t, 0.00, resp.Data[1].Revenue)
}

func TestSellersEndpointEmptyCollection(t *testing.T) {
	body := `{"dataset": {"sellers": [{"id": "s"}], "products": [{"sku": "p"}], "purchase_records": []}}`
	handler := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Sellers(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "EMPTY_COLLECTION", resp.Error.Code)
}

func TestSellersEndpointInvalidType(t *testing.T) {
	body := `{"dataset": {"sellers": "oops", "products": [], "purchase_records": []}}`
	handler := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Sellers(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "INVALID_TYPE", resp.Error.Code)
}

func TestSellersEndpointUnknownStrategyName(t *testing.T) {
	body := strings.Replace(requestBody, `"tiered"`, `"jackpot"`, 1)
	handler := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Sellers(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

func TestSellersEndpointMissingDataset(t *testing.T) {
	handler := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers", strings.NewReader(`{}`))
	rr := httptest.NewRecorder()
	handler.Sellers(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Equal(t, "VALIDATION_ERROR", resp.Error.Code)
}

type stubEnqueuer struct {
	id  string
	err error
}

func (s stubEnqueuer) Enqueue(_ context.Context) (string, error) { return s.id, s.err }

func TestRefreshSellers(t *testing.T) {
	handler := &insight.Handler{Svc: &insight.Service{}, Refresh: stubEnqueuer{id: "task-1"}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers/refresh", nil)
	rr := httptest.NewRecorder()
	handler.RefreshSellers(rr, req)
	require.Equal(t, http.StatusAccepted, rr.Code)
	require.Contains(t, rr.Body.String(), "task-1")
}

func TestRefreshSellersDisabled(t *testing.T) {
	handler := &insight.Handler{Svc: &insight.Service{}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers/refresh", nil)
	rr := httptest.NewRecorder()
	handler.RefreshSellers(rr, req)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestRefreshSellersError(t *testing.T) {
	handler := &insight.Handler{Svc: &insight.Service{}, Refresh: stubEnqueuer{err: errors.New("queue down")}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports/sellers/refresh", nil)
	rr := httptest.NewRecorder()
	handler.RefreshSellers(rr, req)
	require.Equal(t, http.StatusInternalServerError, rr.Code)
}
