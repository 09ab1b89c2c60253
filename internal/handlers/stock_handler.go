package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/recipebox/fulfillment/internal/models"
	"github.com/recipebox/fulfillment/internal/repository"
	"github.com/recipebox/fulfillment/internal/service"
)

// StockHandler handles recipe stock HTTP requests
type StockHandler struct {
	service *service.StockService
	logger  *slog.Logger
}

// NewStockHandler creates a new stock handler
func NewStockHandler(service *service.StockService, logger *slog.Logger) *StockHandler {
	return &StockHandler{
		service: service,
		logger:  logger,
	}
}

// ListRecipes handles GET /api/stock
// Returns the current stock snapshot
func (h *StockHandler) ListRecipes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	recipes, err := h.service.ListRecipes(ctx)
	if err != nil {
		h.logger.Error("failed to list recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, recipes, h.logger)
}

// GetRecipe handles GET /api/stock/{recipeId}
// Returns a single recipe or error:
// - 200: successful operation
// - 400: Invalid ID supplied
// - 404: Recipe not found
func (h *StockHandler) GetRecipe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recipeID := chi.URLParam(r, "recipeId")

	if recipeID == "" {
		h.logger.Warn("recipe ID is required")
		writeError(w, http.StatusBadRequest, "Invalid ID supplied", h.logger)
		return
	}

	recipe, err := h.service.GetRecipe(ctx, recipeID)
	if err != nil {
		if err == repository.ErrRecipeNotFound {
			h.logger.Info("recipe not found", "recipeId", recipeID)
			writeError(w, http.StatusNotFound, "Recipe not found", h.logger)
			return
		}

		h.logger.Error("failed to get recipe", "recipeId", recipeID, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, recipe, h.logger)
}

// ReplaceStock handles PUT /api/stock
// Swaps the entire stock snapshot for the provided recipe list
func (h *StockHandler) ReplaceStock(w http.ResponseWriter, r *http.Request) {
	var recipes []models.Recipe

	if err := json.NewDecoder(r.Body).Decode(&recipes); err != nil {
		h.logger.Error("failed to decode stock snapshot", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	if err := h.service.ReplaceStock(r.Context(), recipes); err != nil {
		h.logger.Error("failed to replace stock", "error", err)
		writeError(w, http.StatusBadRequest, err.Error(), h.logger)
		return
	}

	h.logger.Info("stock snapshot replaced", "recipes_count", len(recipes))
	writeJSON(w, http.StatusOK, map[string]int{"recipes": len(recipes)}, h.logger)
}
