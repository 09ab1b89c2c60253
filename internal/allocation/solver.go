package allocation

import "sort"

// solveGroup decides whether every order in one meal-type group can obtain
// its required number of distinct recipes, each with enough remaining stock,
// without any recipe's committed portions exceeding its stock level.
//
// A greedy pass runs first: orders are processed most-demanding first and
// each takes the eligible recipes with the largest remaining stock. That is
// right in the common case but not always — a recipe the pass drains may
// have been needed to serve several smaller thresholds from its residual
// stock — so a failed pass is verified by an exact search before the group
// is reported infeasible.
//
// Returns the original input index of the first order the greedy pass could
// not place, once the exact search has confirmed that no assignment exists,
// or -1 when the group is feasible. The group itself is never mutated.
func solveGroup(g *group) int {
	orders := make([]indexedOrder, len(g.orders))
	copy(orders, g.orders)
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].Portions != orders[j].Portions {
			return orders[i].Portions > orders[j].Portions
		}
		if orders[i].NumRecipes != orders[j].NumRecipes {
			return orders[i].NumRecipes > orders[j].NumRecipes
		}
		return orders[i].index < orders[j].index
	})

	failed := greedyPass(stockLevels(g), orders)
	if failed == -1 {
		return -1
	}
	if exactFeasible(stockLevels(g), orders) {
		return -1
	}
	return failed
}

func stockLevels(g *group) []int {
	remaining := make([]int, len(g.recipes))
	for i, r := range g.recipes {
		remaining[i] = r.StockLevel
	}
	return remaining
}

// greedyPass assigns each order the eligible recipes with the largest
// remaining stock, depleting remaining in place. Returns the original input
// index of the first order it cannot place, or -1.
func greedyPass(remaining []int, orders []indexedOrder) int {
	for _, o := range orders {
		if o.NumRecipes == 0 {
			// Nothing to assign.
			continue
		}

		// A zero-portion threshold keeps zero-stock recipes eligible.
		eligible := make([]int, 0, len(remaining))
		for i, stock := range remaining {
			if stock >= o.Portions {
				eligible = append(eligible, i)
			}
		}

		if len(eligible) < o.NumRecipes {
			return o.index
		}

		sort.SliceStable(eligible, func(i, j int) bool {
			return remaining[eligible[i]] > remaining[eligible[j]]
		})

		for _, i := range eligible[:o.NumRecipes] {
			remaining[i] -= o.Portions
		}
	}

	return -1
}

// exactFeasible reports whether any assignment satisfies every order, trying
// each way to choose an order's distinct recipes before moving to the next.
// Recipes with equal remaining stock are interchangeable, so choices are
// enumerated over stock values rather than individual recipes, which keeps
// the branching small. Only entered after the greedy pass fails.
func exactFeasible(remaining []int, orders []indexedOrder) bool {
	if len(orders) == 0 {
		return true
	}

	o := orders[0]
	rest := orders[1:]
	if o.NumRecipes == 0 {
		return exactFeasible(remaining, rest)
	}

	counts := make(map[int]int)
	total := 0
	for _, stock := range remaining {
		if stock >= o.Portions {
			counts[stock]++
			total++
		}
	}
	if total < o.NumRecipes {
		return false
	}

	values := make([]int, 0, len(counts))
	for v := range counts {
		values = append(values, v)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(values)))

	// taken[i] recipes of stock values[i] serve this order; values past
	// len(taken) contribute none.
	var choose func(vi, need int, taken []int) bool
	choose = func(vi, need int, taken []int) bool {
		if need == 0 {
			return exactFeasible(applyChoice(remaining, values, taken, o.Portions), rest)
		}
		if vi == len(values) {
			return false
		}
		max := counts[values[vi]]
		if max > need {
			max = need
		}
		for take := max; take >= 0; take-- {
			if choose(vi+1, need-take, append(taken, take)) {
				return true
			}
		}
		return false
	}

	return choose(0, o.NumRecipes, nil)
}

// applyChoice returns a copy of remaining with portions subtracted from
// taken[i] recipes of stock values[i].
func applyChoice(remaining, values, taken []int, portions int) []int {
	pending := make(map[int]int, len(taken))
	for i := range taken {
		pending[values[i]] = taken[i]
	}

	next := make([]int, len(remaining))
	copy(next, remaining)
	for i, stock := range next {
		if pending[stock] > 0 {
			pending[stock]--
			next[i] = stock - portions
		}
	}
	return next
}
