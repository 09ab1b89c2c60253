package models

// Recipe represents one prepared recipe held in stock.
// Two recipes of the same meal type are still distinct allocatable units;
// identity is carried by ID.
type Recipe struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	MealType   string `json:"mealType"`
	StockLevel int    `json:"stockLevel"`
}
