package models

// FoodItem is one food the backend recognized in a meal description.
type FoodItem struct {
	ID          string  `json:"id"`
	Description string  `json:"descricao"`
	Quantity    float64 `json:"quantidade"`
	Unit        string  `json:"unidade"`
	Calories    float64 `json:"calorias"`
	Protein     float64 `json:"proteinas"`
	Carbs       float64 `json:"carboidratos"`
	Fat         float64 `json:"gorduras"`
}

// MealRecord is a meal as stored by the backend. Date is a calendar date
// string, possibly carrying a time-of-day suffix ("2025-03-10T00:00:00").
type MealRecord struct {
	ID            string     `json:"id"`
	DisplayName   string     `json:"nomeRef"`
	Date          string     `json:"data"`
	Foods         []FoodItem `json:"alimentos"`
	TotalCalories float64    `json:"totalCalorias"`
	TotalProtein  float64    `json:"totalProteinas"`
	TotalCarbs    float64    `json:"totalCarboidratos"`
	TotalFat      float64    `json:"totalGorduras"`
}

// MealResult is the backend answer to a create or update request.
type MealResult struct {
	Success bool        `json:"sucesso"`
	Message string      `json:"mensagem"`
	Meal    *MealRecord `json:"refeicao"`
}

// Totals are macro sums over a set of meals.
type Totals struct {
	Calories float64 `json:"calorias"`
	Protein  float64 `json:"proteinas"`
	Carbs    float64 `json:"carboidratos"`
	Fat      float64 `json:"gorduras"`
}

// TodaySummary lists today's meals with their aggregate totals.
type TodaySummary struct {
	Meals  []MealRecord `json:"refeicoes"`
	Totals Totals       `json:"totais"`
}
