package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/recipebox/fulfillment/internal/models"
	"github.com/recipebox/fulfillment/internal/repository"
	"github.com/recipebox/fulfillment/internal/service"
	"github.com/recipebox/fulfillment/pkg/logger"
)

func newFulfillmentHandler(t *testing.T) *FulfillmentHandler {
	t.Helper()
	repo := repository.NewInMemoryStockRepository()
	log := logger.New("error")
	svc := service.NewFulfillmentService(repo, nil, log)
	return NewFulfillmentHandler(svc, log)
}

func TestCheck_Feasible(t *testing.T) {
	handler := newFulfillmentHandler(t)

	body := `{"orders": [{"mealType": "vegetarian", "numRecipes": 2, "portions": 4}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/check", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Check(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.FeasibilityResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !result.Feasible {
		t.Error("expected feasible = true")
	}
	if result.CheckID == "" {
		t.Error("expected a check ID")
	}
	if result.Diagnostic != nil {
		t.Errorf("expected no diagnostic, got %+v", result.Diagnostic)
	}
}

func TestCheck_InfeasibleWithDiagnostic(t *testing.T) {
	handler := newFulfillmentHandler(t)

	// Meal type with no recipes in the seed stock.
	body := `{"orders": [{"mealType": "family", "numRecipes": 1, "portions": 1}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/check", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Check(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.FeasibilityResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Feasible {
		t.Error("expected feasible = false")
	}
	if result.Diagnostic == nil {
		t.Fatal("expected a diagnostic")
	}
	if result.Diagnostic.MealType != "family" || result.Diagnostic.OrderIndex != 0 {
		t.Errorf("diagnostic = %+v, want meal type family at index 0", result.Diagnostic)
	}
}

func TestCheck_InlineRecipes(t *testing.T) {
	handler := newFulfillmentHandler(t)

	body := `{
		"recipes": [
			{"id": "a", "mealType": "vegetarian", "stockLevel": 10},
			{"id": "b", "mealType": "vegetarian", "stockLevel": 4}
		],
		"orders": [{"mealType": "vegetarian", "numRecipes": 2, "portions": 5}]
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/check", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Check(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var result models.FeasibilityResult
	if err := json.NewDecoder(w.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if result.Feasible {
		t.Error("expected feasible = false against the inline snapshot")
	}
}

func TestCheck_BadRequests(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{
			name:       "invalid JSON",
			body:       `{"orders": `,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty order list",
			body:       `{"orders": []}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative portions",
			body:       `{"orders": [{"mealType": "vegetarian", "numRecipes": 1, "portions": -1}]}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "negative inline stock",
			body: `{
				"recipes": [{"id": "a", "mealType": "vegetarian", "stockLevel": -5}],
				"orders": [{"mealType": "vegetarian", "numRecipes": 1, "portions": 1}]
			}`,
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newFulfillmentHandler(t)

			req := httptest.NewRequest(http.MethodPost, "/api/fulfillment/check", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.Check(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}

			var body errorResponse
			if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
				t.Fatalf("failed to decode error body: %v", err)
			}
			if body.Error == "" {
				t.Error("expected a non-empty error message")
			}
		})
	}
}
