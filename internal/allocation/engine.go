// Package allocation decides whether a set of customer orders can be
// fulfilled from a shared pool of prepared recipe stock. The decision is a
// pure function of its inputs: no caller data is mutated and no state is
// retained between runs.
package allocation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/recipebox/fulfillment/internal/models"
)

// ErrInvalidInput marks malformed input records, as opposed to a well-formed
// problem that simply has no solution. Infeasibility is never an error.
var ErrInvalidInput = errors.New("invalid input")

// Decision is the outcome of one feasibility run. When Feasible is false,
// MealType and OrderIndex identify the first order (by position in the input
// slice) that could not be satisfied; OrderIndex is -1 otherwise.
type Decision struct {
	Feasible   bool
	MealType   string
	OrderIndex int
}

// Decide reports whether an assignment of recipes to orders exists that
// respects every recipe's stock level and every order's recipe-count and
// per-recipe portion requirements simultaneously.
//
// Meal types never share stock, so each meal-type group is solved
// independently and concurrently; the overall result is the logical AND of
// the group results.
func Decide(recipes []models.Recipe, orders []models.Order) (Decision, error) {
	if err := validate(recipes, orders); err != nil {
		return Decision{}, err
	}

	groups, missing := partition(recipes, orders)
	if missing >= 0 {
		return Decision{Feasible: false, MealType: orders[missing].MealType, OrderIndex: missing}, nil
	}

	type groupFailure struct {
		mealType   string
		orderIndex int
	}

	failures := make(chan groupFailure, len(groups))
	var wg sync.WaitGroup

	for mealType, g := range groups {
		if len(g.orders) == 0 {
			continue
		}
		wg.Add(1)
		go func(mealType string, g *group) {
			defer wg.Done()
			if idx := solveGroup(g); idx >= 0 {
				failures <- groupFailure{mealType: mealType, orderIndex: idx}
			}
		}(mealType, g)
	}

	go func() {
		wg.Wait()
		close(failures)
	}()

	// Groups finish in arbitrary order; report the failure with the smallest
	// input index so diagnostics are deterministic.
	decision := Decision{Feasible: true, OrderIndex: -1}
	for f := range failures {
		if decision.Feasible || f.orderIndex < decision.OrderIndex {
			decision = Decision{Feasible: false, MealType: f.mealType, OrderIndex: f.orderIndex}
		}
	}

	return decision, nil
}

// validate rejects malformed records before the algorithm runs, so callers
// can tell "no stock-based solution exists" apart from nonsensical input.
func validate(recipes []models.Recipe, orders []models.Order) error {
	for _, r := range recipes {
		if r.StockLevel < 0 {
			return fmt.Errorf("%w: recipe %q has negative stock level %d", ErrInvalidInput, r.ID, r.StockLevel)
		}
	}

	for i, o := range orders {
		if o.NumRecipes < 0 {
			return fmt.Errorf("%w: order %d has negative recipe count %d", ErrInvalidInput, i, o.NumRecipes)
		}
		if o.Portions < 0 {
			return fmt.Errorf("%w: order %d has negative portion requirement %d", ErrInvalidInput, i, o.Portions)
		}
	}

	return nil
}
