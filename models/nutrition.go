package models

// NutritionPer100g is the nutrient breakdown for 100 grams of a food.
// Calories is a whole number; every other field is rounded to one decimal.
type NutritionPer100g struct {
	Calories     int     `json:"calories"`
	Protein      float64 `json:"protein"`
	Fat          float64 `json:"fat"`
	Carbs        float64 `json:"carbs"`
	Fiber        float64 `json:"fiber"`
	Sugar        float64 `json:"sugar"`
	Sodium       float64 `json:"sodium"`
	Cholesterol  float64 `json:"cholesterol"`
	Calcium      float64 `json:"calcium"`
	Iron         float64 `json:"iron"`
	Magnesium    float64 `json:"magnesium"`
	Potassium    float64 `json:"potassium"`
	Zinc         float64 `json:"zinc"`
	Phosphorus   float64 `json:"phosphorus"`
	VitaminA     float64 `json:"vitaminA"`
	VitaminC     float64 `json:"vitaminC"`
	ThiaminB1    float64 `json:"thiaminB1"`
	RiboflavinB2 float64 `json:"riboflavinB2"`
	NiacinB3     float64 `json:"niacinB3"`
	VitaminB6    float64 `json:"vitaminB6"`
	VitaminB12   float64 `json:"vitaminB12"`
	VitaminD     float64 `json:"vitaminD"`
	VitaminE     float64 `json:"vitaminE"`
	VitaminK     float64 `json:"vitaminK"`
}

// NutritionRecord is the cached unit for one food label. Records are
// immutable once fetched; the cache never holds a partial record.
type NutritionRecord struct {
	NutritionPer100g NutritionPer100g `json:"nutritionPer100g"`
	Allergens        []string         `json:"allergens"`
}

// Prediction is a single classifier result.
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}
