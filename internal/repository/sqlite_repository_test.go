package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/recipebox/fulfillment/internal/models"
)

func newTestSQLiteRepo(t *testing.T) *SQLiteStockRepository {
	t.Helper()

	repo, err := NewSQLiteStockRepository(filepath.Join(t.TempDir(), "stock.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSQLiteStockRepository_RoundTrip(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	recipes := []models.Recipe{
		{ID: "2", Name: "Miso-Glazed Cod", MealType: "gourmet", StockLevel: 9},
		{ID: "1", Name: "Mushroom Risotto", MealType: "vegetarian", StockLevel: 8},
	}
	if err := repo.ReplaceAll(ctx, recipes); err != nil {
		t.Fatalf("ReplaceAll() unexpected error = %v", err)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() unexpected error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetAll() returned %d recipes, want 2", len(got))
	}
	if got[0].ID != "1" || got[1].ID != "2" {
		t.Errorf("GetAll() not sorted by ID: %+v", got)
	}

	recipe, err := repo.GetByID(ctx, "2")
	if err != nil {
		t.Fatalf("GetByID() unexpected error = %v", err)
	}
	if recipe.Name != "Miso-Glazed Cod" || recipe.StockLevel != 9 {
		t.Errorf("GetByID() = %+v, want the stored gourmet recipe", recipe)
	}
}

func TestSQLiteStockRepository_GetByID_NotFound(t *testing.T) {
	repo := newTestSQLiteRepo(t)

	if _, err := repo.GetByID(context.Background(), "missing"); err != ErrRecipeNotFound {
		t.Errorf("GetByID() error = %v, want ErrRecipeNotFound", err)
	}
}

func TestSQLiteStockRepository_ReplaceAllOverwrites(t *testing.T) {
	repo := newTestSQLiteRepo(t)
	ctx := context.Background()

	first := []models.Recipe{{ID: "1", Name: "Mushroom Risotto", MealType: "vegetarian", StockLevel: 8}}
	if err := repo.ReplaceAll(ctx, first); err != nil {
		t.Fatalf("ReplaceAll() unexpected error = %v", err)
	}

	second := []models.Recipe{{ID: "2", Name: "Lamb Shank Ragu", MealType: "gourmet", StockLevel: 4}}
	if err := repo.ReplaceAll(ctx, second); err != nil {
		t.Fatalf("ReplaceAll() unexpected error = %v", err)
	}

	got, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() unexpected error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "2" {
		t.Errorf("GetAll() after second ReplaceAll = %+v, want only recipe 2", got)
	}
}
