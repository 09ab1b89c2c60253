package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/recipebox/fulfillment/internal/allocation"
	"github.com/recipebox/fulfillment/internal/models"
	"github.com/recipebox/fulfillment/internal/service"
)

// FulfillmentHandler handles feasibility check HTTP requests
type FulfillmentHandler struct {
	service *service.FulfillmentService
	logger  *slog.Logger
}

// NewFulfillmentHandler creates a new fulfillment handler
func NewFulfillmentHandler(service *service.FulfillmentService, logger *slog.Logger) *FulfillmentHandler {
	return &FulfillmentHandler{
		service: service,
		logger:  logger,
	}
}

// Check handles POST /api/fulfillment/check
// An infeasible order set is a normal 200 response with feasible=false;
// error statuses are reserved for unusable input:
// - 400: no orders, or no stock snapshot to check against
// - 422: well-formed JSON carrying nonsensical records
func (h *FulfillmentHandler) Check(w http.ResponseWriter, r *http.Request) {
	var req models.FeasibilityRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode feasibility request", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	result, err := h.service.CheckFeasibility(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoOrders):
			writeError(w, http.StatusBadRequest, "Request must contain at least one order", h.logger)
		case errors.Is(err, service.ErrNoStock):
			writeError(w, http.StatusBadRequest, "No recipes in stock to check against", h.logger)
		case errors.Is(err, allocation.ErrInvalidInput):
			h.logger.Warn("rejected malformed feasibility input", "error", err)
			writeError(w, http.StatusUnprocessableEntity, err.Error(), h.logger)
		default:
			h.logger.Error("feasibility check failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	writeJSON(w, http.StatusOK, result, h.logger)
	h.logger.Info("feasibility check completed",
		"check_id", result.CheckID,
		"feasible", result.Feasible,
		"orders_count", len(req.Orders),
	)
}
