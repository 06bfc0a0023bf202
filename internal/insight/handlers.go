package insight

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	validator "github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/salesboard/backend-insight/internal/common"
	"github.com/salesboard/backend-insight/internal/report"
	"github.com/salesboard/backend-insight/internal/store"
)

// RefreshEnqueuer schedules an asynchronous report recomputation.
type RefreshEnqueuer interface {
	Enqueue(ctx context.Context) (string, error)
}

// Handler exposes the seller performance endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
	Refresh  RefreshEnqueuer
}

type reportRequest struct {
	Dataset json.RawMessage `json:"dataset" validate:"required"`
	Options StrategyNames   `json:"options"`
}

type reportMeta struct {
	RunID    string        `json:"run_id"`
	Count    int           `json:"count"`
	Strategy StrategyNames `json:"strategy"`
}

// Sellers computes a seller performance report from the dataset in the
// request body.
func (h *Handler) Sellers(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INSIGHT_NOT_CONFIGURED", "insight service not configured", nil)
		return
	}
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "malformed request body", nil)
		return
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(req); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", validationDetails(err))
			return
		}
	}
	dataset, err := store.DecodeDataset(bytes.NewReader(req.Dataset))
	if err != nil {
		status, code := mapReportError(err)
		common.JSONError(w, status, code, err.Error(), nil)
		return
	}
	rows, err := h.Svc.SellerPerformance(r.Context(), dataset, req.Options)
	if err != nil {
		status, code := mapReportError(err)
		common.JSONError(w, status, code, err.Error(), nil)
		return
	}
	h.writeReport(w, rows, req.Options)
}

// StoredSellers computes the report from the persistent dataset source.
func (h *Handler) StoredSellers(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INSIGHT_NOT_CONFIGURED", "insight service not configured", nil)
		return
	}
	query := r.URL.Query()
	names := StrategyNames{Revenue: query.Get("revenue"), Bonus: query.Get("bonus")}
	rows, err := h.Svc.StoredSellerPerformance(r.Context(), names)
	if err != nil {
		status, code := mapReportError(err)
		common.JSONError(w, status, code, err.Error(), nil)
		return
	}
	h.writeReport(w, rows, names)
}

// RefreshSellers enqueues an asynchronous recomputation of the stored report.
func (h *Handler) RefreshSellers(w http.ResponseWriter, r *http.Request) {
	if h.Refresh == nil {
		common.JSONError(w, http.StatusServiceUnavailable, "REFRESH_DISABLED", "background refresh not configured", nil)
		return
	}
	taskID, err := h.Refresh.Enqueue(r.Context())
	if err != nil {
		common.JSONError(w, http.StatusInternalServerError, "REFRESH_ERROR", err.Error(), nil)
		return
	}
	common.JSON(w, http.StatusAccepted, map[string]any{"data": map[string]string{"task_id": taskID}})
}

func (h *Handler) writeReport(w http.ResponseWriter, rows []report.SellerReport, names StrategyNames) {
	common.JSON(w, http.StatusOK, map[string]any{
		"data": rows,
		"meta": reportMeta{RunID: uuid.NewString(), Count: len(rows), Strategy: names.Normalized()},
	})
}

// mapReportError translates pipeline errors into canonical HTTP codes.
func mapReportError(err error) (int, string) {
	switch {
	case errors.Is(err, report.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT"
	case errors.Is(err, report.ErrMissingField):
		return http.StatusBadRequest, "MISSING_FIELD"
	case errors.Is(err, report.ErrInvalidType):
		return http.StatusBadRequest, "INVALID_TYPE"
	case errors.Is(err, report.ErrEmptyCollection):
		return http.StatusBadRequest, "EMPTY_COLLECTION"
	case errors.Is(err, report.ErrMissingStrategy):
		return http.StatusBadRequest, "MISSING_STRATEGY"
	case errors.Is(err, ErrUnknownStrategy):
		return http.StatusBadRequest, "UNKNOWN_STRATEGY"
	default:
		return http.StatusInternalServerError, "REPORT_ERROR"
	}
}

func validationDetails(err error) any {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Namespace())
	}
	return map[string]any{"fields": fields}
}
