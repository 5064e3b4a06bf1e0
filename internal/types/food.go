package types

import "time"

// Ingredient is a single component of a FoodItem with its own nutrition share.
type Ingredient struct {
	Name     string  `json:"name"`
	Carbs    float64 `json:"carbs"`    // grams
	Calories float64 `json:"calories"` // kcal
}

// FoodItem is one identified dish or food with estimated nutrition values.
// When Ingredients is populated, Carbs and Calories start out as the sum over
// the breakdown, but the totals are the authoritative editable values:
// removing an ingredient adjusts them in place rather than recomputing.
type FoodItem struct {
	Name        string       `json:"name"`
	Carbs       float64      `json:"carbs"`      // grams
	Calories    float64      `json:"calories"`   // kcal
	GI          float64      `json:"gi"`         // glycemic index
	Confidence  float64      `json:"confidence"` // 0-1
	Ingredients []Ingredient `json:"ingredients,omitempty"`
}

// RemoveIngredient removes the ingredient at index i and subtracts its carbs
// and calories from the item's totals, floored at zero. The change is purely
// in-memory; nothing is persisted until the item is saved. Out-of-range
// indexes are a no-op.
func (f *FoodItem) RemoveIngredient(i int) {
	if i < 0 || i >= len(f.Ingredients) {
		return
	}
	ing := f.Ingredients[i]

	f.Carbs = max(0, f.Carbs-ing.Carbs)
	f.Calories = max(0, f.Calories-ing.Calories)

	f.Ingredients = append(f.Ingredients[:i], f.Ingredients[i+1:]...)
}

// MealLog is a persisted snapshot of one or more food items saved together.
// Totals are computed once when the log is created and never recomputed.
type MealLog struct {
	ID            string     `json:"id"`
	Date          time.Time  `json:"date"`
	Items         []FoodItem `json:"items"`
	TotalCarbs    float64    `json:"totalCarbs"`
	TotalCalories float64    `json:"totalCalories"`
}
