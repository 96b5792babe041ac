package models

import (
	"time"

	"github.com/google/uuid"
)

// NutritionFacts holds values per 100g or per portion depending on context.
type NutritionFacts struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`       // grams
	Carbohydrates float64 `json:"carbohydrates"` // grams
	Fat           float64 `json:"fat"`           // grams
	Fiber         float64 `json:"fiber"`         // grams
	Sugar         float64 `json:"sugar"`         // grams
	Sodium        float64 `json:"sodium"`        // mg
}

// ScaleToPortion converts per-100g facts into facts for the given portion size.
func (n NutritionFacts) ScaleToPortion(grams float64) NutritionFacts {
	f := grams / 100.0
	return NutritionFacts{
		Calories:      n.Calories * f,
		Protein:       n.Protein * f,
		Carbohydrates: n.Carbohydrates * f,
		Fat:           n.Fat * f,
		Fiber:         n.Fiber * f,
		Sugar:         n.Sugar * f,
		Sodium:        n.Sodium * f,
	}
}

// FoodItem is one detected food. EstimatedNutrition is always derived from
// NutritionPer100g and PortionSize, never set independently.
type FoodItem struct {
	Name               string         `json:"name"`
	Confidence         float64        `json:"confidence"`
	PortionSize        float64        `json:"portion_size"` // grams
	NutritionPer100g   NutritionFacts `json:"nutrition_per_100g"`
	EstimatedNutrition NutritionFacts `json:"estimated_nutrition"`
}

type NutritionSummary struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
	TotalFiber    float64 `json:"total_fiber"`
}

// SummarizeItems is the only way a summary is produced: the additive fold
// over every item's estimated nutrition.
func SummarizeItems(items []FoodItem) NutritionSummary {
	var total NutritionSummary
	for _, it := range items {
		total.TotalCalories += it.EstimatedNutrition.Calories
		total.TotalProtein += it.EstimatedNutrition.Protein
		total.TotalCarbs += it.EstimatedNutrition.Carbohydrates
		total.TotalFat += it.EstimatedNutrition.Fat
		total.TotalFiber += it.EstimatedNutrition.Fiber
	}
	return total
}

type AnalysisMetadata struct {
	ProcessingTimeMs    int64   `json:"processing_time_ms"`
	ModelVersion        string  `json:"model_version"`
	ConfidenceThreshold float64 `json:"confidence_threshold"`
}

// MealAnalysis is created once per photo-analysis request and immutable
// after creation. Confidence is the vision model's self-reported score.
type MealAnalysis struct {
	MealID           uuid.UUID        `json:"meal_id"`
	UserID           string           `json:"user_id"`
	Timestamp        time.Time        `json:"timestamp"`
	ImageHash        *string          `json:"image_hash"`
	FoodItems        []FoodItem       `json:"food_items"`
	TotalNutrition   NutritionSummary `json:"total_nutrition"`
	Confidence       float64          `json:"confidence"`
	AnalysisMetadata AnalysisMetadata `json:"analysis_metadata"`
}

// DetectedIngredient is the vision model's wire shape for one ingredient.
type DetectedIngredient struct {
	Name                 string         `json:"name"`
	Confidence           float64        `json:"confidence"`
	NutritionPer100g     NutritionFacts `json:"nutrition_per_100g"`
	EstimatedPortionSize float64        `json:"estimated_portion_size"`
}

type VisionAnalysisResult struct {
	Ingredients      []DetectedIngredient `json:"ingredients"`
	ConfidenceScore  float64              `json:"confidence_score"`
	ProcessingTimeMs int64                `json:"processing_time_ms"`
}

type AnalyzePhotoRequest struct {
	ImageData string `json:"image_data" binding:"required"` // base64, optionally a data URL
	UserID    string `json:"user_id" binding:"required"`
}

type NutritionResponse struct {
	Success bool          `json:"success"`
	Data    *MealAnalysis `json:"data"`
	Error   *string       `json:"error"`
}
