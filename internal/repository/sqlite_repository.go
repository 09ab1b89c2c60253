package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // Pure Go sqlite driver

	"github.com/recipebox/fulfillment/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS recipes (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL,
	meal_type   TEXT NOT NULL,
	stock_level INTEGER NOT NULL
);`

// SQLiteStockRepository implements StockRepository on a SQLite database, for
// deployments that want stock to survive restarts.
type SQLiteStockRepository struct {
	db *sql.DB
}

// NewSQLiteStockRepository opens (creating if necessary) the database at path
// and ensures the schema exists.
func NewSQLiteStockRepository(path string) (*SQLiteStockRepository, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &SQLiteStockRepository{db: db}, nil
}

// Close closes the underlying database connection.
func (r *SQLiteStockRepository) Close() error {
	return r.db.Close()
}

// GetAll returns all recipes, sorted by ID for deterministic snapshots.
func (r *SQLiteStockRepository) GetAll(ctx context.Context) ([]models.Recipe, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, meal_type, stock_level FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []models.Recipe
	for rows.Next() {
		var recipe models.Recipe
		if err := rows.Scan(&recipe.ID, &recipe.Name, &recipe.MealType, &recipe.StockLevel); err != nil {
			return nil, fmt.Errorf("failed to scan recipe: %w", err)
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipes: %w", err)
	}
	return recipes, nil
}

// GetByID returns a recipe by its ID.
func (r *SQLiteStockRepository) GetByID(ctx context.Context, id string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, meal_type, stock_level FROM recipes WHERE id = ?`, id,
	).Scan(&recipe.ID, &recipe.Name, &recipe.MealType, &recipe.StockLevel)
	if err == sql.ErrNoRows {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe %s: %w", id, err)
	}
	return &recipe, nil
}

// ReplaceAll swaps the entire stock snapshot in a single transaction.
func (r *SQLiteStockRepository) ReplaceAll(ctx context.Context, recipes []models.Recipe) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM recipes`); err != nil {
		return fmt.Errorf("failed to clear recipes: %w", err)
	}

	for _, recipe := range recipes {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipes (id, name, meal_type, stock_level) VALUES (?, ?, ?, ?)`,
			recipe.ID, recipe.Name, recipe.MealType, recipe.StockLevel,
		); err != nil {
			return fmt.Errorf("failed to insert recipe %s: %w", recipe.ID, err)
		}
	}

	return tx.Commit()
}
