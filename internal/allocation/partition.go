package allocation

import "github.com/recipebox/fulfillment/internal/models"

// group holds one meal type's supply and the orders competing for it.
// Demand and supply never cross meal-type boundaries, so each group is an
// independent subproblem.
type group struct {
	recipes []models.Recipe
	orders  []indexedOrder
}

// indexedOrder keeps an order's position in the caller's slice so diagnostics
// can point back at the original input.
type indexedOrder struct {
	models.Order
	index int
}

// partition splits recipes and orders into per-meal-type groups. The second
// return value is the index of the first order whose meal type has no recipes
// at all, or -1 if every order found a group. Such an order can never be
// satisfied, so callers short-circuit without running the solver.
func partition(recipes []models.Recipe, orders []models.Order) (map[string]*group, int) {
	groups := make(map[string]*group)

	for _, r := range recipes {
		g := groups[r.MealType]
		if g == nil {
			g = &group{}
			groups[r.MealType] = g
		}
		g.recipes = append(g.recipes, r)
	}

	missing := -1
	for i, o := range orders {
		g := groups[o.MealType]
		if g == nil {
			if missing == -1 {
				missing = i
			}
			continue
		}
		g.orders = append(g.orders, indexedOrder{Order: o, index: i})
	}

	return groups, missing
}
