// Package loader reads stock and order collections from their JSON file
// formats. It only assembles input for the allocation engine; it never
// interprets feasibility itself.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/recipebox/fulfillment/internal/models"
)

// ErrBadFormat marks a file that parsed as JSON but does not match the
// expected stock or orders layout.
var ErrBadFormat = errors.New("malformed input file")

// wordNumbers maps the spelled-out counts used in order file keys. Extend as
// new box sizes appear.
var wordNumbers = map[string]int{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
}

// stockEntry is one recipe record in a stock file, keyed by recipe name:
//
//	{"recipe_1": {"box_type": "vegetarian", "stock_count": 5}, ...}
type stockEntry struct {
	BoxType    string `json:"box_type"`
	StockCount int    `json:"stock_count"`
}

// LoadStock reads a stock file into recipes. Entries are returned sorted by
// recipe name so repeated loads produce identical slices. Stock counts are
// passed through as-is; the engine rejects negative values itself.
func LoadStock(path string) ([]models.Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read stock file: %w", err)
	}

	var entries map[string]stockEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse stock file %s: %w", path, err)
	}

	names := make([]string, 0, len(entries))
	for name := range entries {
		names = append(names, name)
	}
	sort.Strings(names)

	recipes := make([]models.Recipe, 0, len(entries))
	for _, name := range names {
		e := entries[name]
		if e.BoxType == "" {
			return nil, fmt.Errorf("%w: recipe %q has no box_type", ErrBadFormat, name)
		}
		recipes = append(recipes, models.Recipe{
			ID:         name,
			Name:       name,
			MealType:   e.BoxType,
			StockLevel: e.StockCount,
		})
	}

	return recipes, nil
}

// LoadOrders reads an orders file, keyed meal type -> "<word>_portions" ->
// "<word>_recipes" -> order count, and expands the counts into individual
// orders:
//
//	{"vegetarian": {"two_portions": {"four_recipes": 10, ...}, ...}, ...}
//
// Keys are walked in sorted order so the expansion is deterministic.
func LoadOrders(path string) ([]models.Order, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read orders file: %w", err)
	}

	var byMealType map[string]map[string]map[string]int
	if err := json.Unmarshal(data, &byMealType); err != nil {
		return nil, fmt.Errorf("failed to parse orders file %s: %w", path, err)
	}

	var orders []models.Order
	for _, mealType := range sortedKeys(byMealType) {
		byPortions := byMealType[mealType]
		for _, portionsKey := range sortedKeys(byPortions) {
			portions, err := wordCount(portionsKey, "portions")
			if err != nil {
				return nil, err
			}
			byRecipes := byPortions[portionsKey]
			for _, recipesKey := range sortedKeys(byRecipes) {
				numRecipes, err := wordCount(recipesKey, "recipes")
				if err != nil {
					return nil, err
				}
				count := byRecipes[recipesKey]
				if count < 0 {
					return nil, fmt.Errorf("%w: %s/%s/%s has negative order count %d", ErrBadFormat, mealType, portionsKey, recipesKey, count)
				}
				for i := 0; i < count; i++ {
					orders = append(orders, models.Order{
						MealType:   mealType,
						NumRecipes: numRecipes,
						Portions:   portions,
					})
				}
			}
		}
	}

	return orders, nil
}

// wordCount converts a key like "two_portions" or "four_recipes" into its
// numeric count, requiring the given unit suffix.
func wordCount(key, unit string) (int, error) {
	word, found := strings.CutSuffix(key, "_"+unit)
	if !found {
		return 0, fmt.Errorf("%w: key %q does not end in _%s", ErrBadFormat, key, unit)
	}
	n, ok := wordNumbers[word]
	if !ok {
		return 0, fmt.Errorf("%w: unknown count word %q in key %q", ErrBadFormat, word, key)
	}
	return n, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
