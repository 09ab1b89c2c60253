package allocation

import (
	"testing"

	"github.com/recipebox/fulfillment/internal/models"
)

func TestPartition_GroupsByMealType(t *testing.T) {
	recipes := []models.Recipe{
		{ID: "1", MealType: "vegetarian", StockLevel: 3},
		{ID: "2", MealType: "gourmet", StockLevel: 4},
		{ID: "3", MealType: "vegetarian", StockLevel: 5},
	}
	orders := []models.Order{
		{MealType: "gourmet", NumRecipes: 1, Portions: 2},
		{MealType: "vegetarian", NumRecipes: 2, Portions: 1},
	}

	groups, missing := partition(recipes, orders)

	if missing != -1 {
		t.Fatalf("partition() missing = %d, want -1", missing)
	}
	if len(groups) != 2 {
		t.Fatalf("partition() groups = %d, want 2", len(groups))
	}

	veg := groups["vegetarian"]
	if veg == nil || len(veg.recipes) != 2 || len(veg.orders) != 1 {
		t.Errorf("vegetarian group = %+v, want 2 recipes and 1 order", veg)
	}
	if veg != nil && len(veg.orders) == 1 && veg.orders[0].index != 1 {
		t.Errorf("vegetarian order index = %d, want 1", veg.orders[0].index)
	}

	gourmet := groups["gourmet"]
	if gourmet == nil || len(gourmet.recipes) != 1 || len(gourmet.orders) != 1 {
		t.Errorf("gourmet group = %+v, want 1 recipe and 1 order", gourmet)
	}
}

func TestPartition_ReportsFirstOrderWithoutSupply(t *testing.T) {
	recipes := []models.Recipe{
		{ID: "1", MealType: "vegetarian", StockLevel: 3},
	}
	orders := []models.Order{
		{MealType: "vegetarian", NumRecipes: 1, Portions: 1},
		{MealType: "family", NumRecipes: 1, Portions: 1},
		{MealType: "gourmet", NumRecipes: 1, Portions: 1},
	}

	_, missing := partition(recipes, orders)

	if missing != 1 {
		t.Errorf("partition() missing = %d, want 1", missing)
	}
}
