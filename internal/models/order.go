package models

import "time"

// Order represents one customer order. It must be composed from NumRecipes
// distinct recipes of the order's meal type, each supplying at least Portions
// portions. Orders are never partially satisfied.
type Order struct {
	MealType   string `json:"mealType"`
	NumRecipes int    `json:"numRecipes"`
	Portions   int    `json:"portions"`
}

// FeasibilityRequest is the body of a feasibility check request.
// When Recipes is non-empty it is used as the stock snapshot for this check
// instead of the service's stock repository.
type FeasibilityRequest struct {
	Orders  []Order  `json:"orders"`
	Recipes []Recipe `json:"recipes,omitempty"`
}

// Diagnostic identifies the first order that could not be satisfied.
// OrderIndex is the order's position in the request's Orders slice.
type Diagnostic struct {
	MealType   string `json:"mealType"`
	OrderIndex int    `json:"orderIndex"`
}

// FeasibilityResult is the outcome of one feasibility check.
type FeasibilityResult struct {
	CheckID    string      `json:"checkId"`
	Feasible   bool        `json:"feasible"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
}

// DecisionEvent is published to the notification queue after each check.
type DecisionEvent struct {
	CheckID    string      `json:"check_id"`
	Feasible   bool        `json:"feasible"`
	OrderCount int         `json:"order_count"`
	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
	CheckedAt  time.Time   `json:"checked_at"`
}
