package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/recipebox/fulfillment/internal/models"
)

var (
	ErrRecipeNotFound = errors.New("recipe not found")
)

// StockRepository defines the interface for recipe stock access. The
// allocation engine never talks to a repository directly; it only sees the
// snapshot a repository hands out.
type StockRepository interface {
	GetAll(ctx context.Context) ([]models.Recipe, error)
	GetByID(ctx context.Context, id string) (*models.Recipe, error)
	ReplaceAll(ctx context.Context, recipes []models.Recipe) error
}

// InMemoryStockRepository implements StockRepository with in-memory storage
type InMemoryStockRepository struct {
	mu      sync.RWMutex
	recipes map[string]models.Recipe
}

// NewInMemoryStockRepository creates a new in-memory stock repository with seed data
func NewInMemoryStockRepository() *InMemoryStockRepository {
	recipes := map[string]models.Recipe{
		"1": {ID: "1", Name: "Grilled Halloumi Salad", MealType: "vegetarian", StockLevel: 12},
		"2": {ID: "2", Name: "Mushroom Risotto", MealType: "vegetarian", StockLevel: 8},
		"3": {ID: "3", Name: "Spiced Chickpea Stew", MealType: "vegetarian", StockLevel: 10},
		"4": {ID: "4", Name: "Roast Squash Tagine", MealType: "vegetarian", StockLevel: 6},
		"5": {ID: "5", Name: "Duck Breast with Plum Sauce", MealType: "gourmet", StockLevel: 7},
		"6": {ID: "6", Name: "Pan-Seared Ribeye", MealType: "gourmet", StockLevel: 5},
		"7": {ID: "7", Name: "Miso-Glazed Cod", MealType: "gourmet", StockLevel: 9},
		"8": {ID: "8", Name: "Lamb Shank Ragu", MealType: "gourmet", StockLevel: 4},
	}

	return &InMemoryStockRepository{
		recipes: recipes,
	}
}

// GetAll returns all recipes, sorted by ID for deterministic snapshots
func (r *InMemoryStockRepository) GetAll(ctx context.Context) ([]models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipes := make([]models.Recipe, 0, len(r.recipes))
	for _, recipe := range r.recipes {
		recipes = append(recipes, recipe)
	}
	sort.Slice(recipes, func(i, j int) bool { return recipes[i].ID < recipes[j].ID })
	return recipes, nil
}

// GetByID returns a recipe by its ID
func (r *InMemoryStockRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	recipe, exists := r.recipes[id]
	if !exists {
		return nil, ErrRecipeNotFound
	}
	return &recipe, nil
}

// ReplaceAll swaps the entire stock snapshot
func (r *InMemoryStockRepository) ReplaceAll(ctx context.Context, recipes []models.Recipe) error {
	next := make(map[string]models.Recipe, len(recipes))
	for _, recipe := range recipes {
		next[recipe.ID] = recipe
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.recipes = next
	return nil
}
