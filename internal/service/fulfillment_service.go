package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/recipebox/fulfillment/internal/allocation"
	"github.com/recipebox/fulfillment/internal/models"
	"github.com/recipebox/fulfillment/internal/repository"
)

var (
	ErrNoOrders = errors.New("at least one order is required")
	ErrNoStock  = errors.New("no recipes in stock")
)

// DecisionNotifier publishes decision events after each check.
// Implemented by notify.AMQPPublisher; optional.
type DecisionNotifier interface {
	PublishDecision(ctx context.Context, event models.DecisionEvent) error
}

// FulfillmentService handles feasibility check business logic
type FulfillmentService struct {
	stockRepo repository.StockRepository
	notifier  DecisionNotifier
	log       *slog.Logger
}

// NewFulfillmentService creates a new fulfillment service. notifier may be
// nil, in which case no events are published.
func NewFulfillmentService(stockRepo repository.StockRepository, notifier DecisionNotifier, log *slog.Logger) *FulfillmentService {
	return &FulfillmentService{
		stockRepo: stockRepo,
		notifier:  notifier,
		log:       log,
	}
}

// CheckFeasibility decides whether every order in the request can be
// fulfilled. Inline recipes in the request take precedence over the stock
// repository, so callers can run what-if checks against hypothetical stock.
//
// An infeasible order set is a normal result, not an error; errors mean the
// input was unusable (no orders, no stock snapshot, or malformed records,
// the latter wrapping allocation.ErrInvalidInput).
func (s *FulfillmentService) CheckFeasibility(ctx context.Context, req models.FeasibilityRequest) (*models.FeasibilityResult, error) {
	if len(req.Orders) == 0 {
		return nil, ErrNoOrders
	}

	recipes := req.Recipes
	if len(recipes) == 0 {
		var err error
		recipes, err = s.stockRepo.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		if len(recipes) == 0 {
			return nil, ErrNoStock
		}
	}

	decision, err := allocation.Decide(recipes, req.Orders)
	if err != nil {
		return nil, err
	}

	result := &models.FeasibilityResult{
		CheckID:  uuid.New().String(),
		Feasible: decision.Feasible,
	}
	if !decision.Feasible {
		result.Diagnostic = &models.Diagnostic{
			MealType:   decision.MealType,
			OrderIndex: decision.OrderIndex,
		}
	}

	s.publish(ctx, result, len(req.Orders))

	return result, nil
}

// publish emits the decision event. Publishing is best-effort: a broker
// failure must not fail the check itself.
func (s *FulfillmentService) publish(ctx context.Context, result *models.FeasibilityResult, orderCount int) {
	if s.notifier == nil {
		return
	}

	event := models.DecisionEvent{
		CheckID:    result.CheckID,
		Feasible:   result.Feasible,
		OrderCount: orderCount,
		Diagnostic: result.Diagnostic,
		CheckedAt:  time.Now().UTC(),
	}
	if err := s.notifier.PublishDecision(ctx, event); err != nil {
		s.log.Warn("failed to publish decision event", "check_id", result.CheckID, "error", err)
	}
}
