package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/recipebox/fulfillment/internal/models"
	"github.com/recipebox/fulfillment/internal/repository"
)

var ErrNegativeStock = errors.New("stock level must not be negative")

// StockService handles business logic for recipe stock
type StockService struct {
	repo repository.StockRepository
}

// NewStockService creates a new stock service
func NewStockService(repo repository.StockRepository) *StockService {
	return &StockService{
		repo: repo,
	}
}

// ListRecipes returns the current stock snapshot
func (s *StockService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	return s.repo.GetAll(ctx)
}

// GetRecipe returns a recipe by ID
func (s *StockService) GetRecipe(ctx context.Context, id string) (*models.Recipe, error) {
	return s.repo.GetByID(ctx, id)
}

// ReplaceStock validates and swaps the entire stock snapshot
func (s *StockService) ReplaceStock(ctx context.Context, recipes []models.Recipe) error {
	for _, r := range recipes {
		if r.ID == "" {
			return fmt.Errorf("recipe %q has no id", r.Name)
		}
		if r.StockLevel < 0 {
			return fmt.Errorf("recipe %q: %w", r.ID, ErrNegativeStock)
		}
	}
	return s.repo.ReplaceAll(ctx, recipes)
}
