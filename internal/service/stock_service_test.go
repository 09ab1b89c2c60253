package service

import (
	"context"
	"errors"
	"testing"

	"github.com/recipebox/fulfillment/internal/models"
	"github.com/recipebox/fulfillment/internal/repository"
)

func TestStockService_ReplaceStock(t *testing.T) {
	tests := []struct {
		name    string
		recipes []models.Recipe
		wantErr error
	}{
		{
			name: "valid snapshot",
			recipes: []models.Recipe{
				{ID: "1", Name: "Mushroom Risotto", MealType: "vegetarian", StockLevel: 5},
			},
			wantErr: nil,
		},
		{
			name: "negative stock rejected",
			recipes: []models.Recipe{
				{ID: "1", Name: "Mushroom Risotto", MealType: "vegetarian", StockLevel: -1},
			},
			wantErr: ErrNegativeStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewStockService(repository.NewInMemoryStockRepository())

			err := svc.ReplaceStock(context.Background(), tt.recipes)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ReplaceStock() error = %v, wantErr %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReplaceStock() unexpected error = %v", err)
			}

			got, err := svc.ListRecipes(context.Background())
			if err != nil {
				t.Fatalf("ListRecipes() unexpected error = %v", err)
			}
			if len(got) != len(tt.recipes) {
				t.Errorf("ListRecipes() returned %d recipes, want %d", len(got), len(tt.recipes))
			}
		})
	}
}

func TestStockService_ReplaceStock_MissingID(t *testing.T) {
	svc := NewStockService(repository.NewInMemoryStockRepository())

	err := svc.ReplaceStock(context.Background(), []models.Recipe{
		{Name: "Mushroom Risotto", MealType: "vegetarian", StockLevel: 5},
	})
	if err == nil {
		t.Error("ReplaceStock() expected error for recipe without id")
	}
}
