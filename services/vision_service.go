package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ToXMon/fitagent/models"
	"github.com/ToXMon/fitagent/utils"

	"github.com/google/uuid"
)

const (
	visionModelVersion        = "fitagent-vit-v1.0"
	visionConfidenceThreshold = 0.8
	visionMaxDetections       = 10
)

type VisionService struct {
	client   *http.Client
	endpoint string
}

func NewVisionService(endpoint string) *VisionService {
	return &VisionService{
		client:   &http.Client{Timeout: 10 * time.Second},
		endpoint: endpoint,
	}
}

// AnalyzeImage runs the full photo path: image preparation, the vision model
// call with the threshold policy, and assembly of the immutable analysis.
func (s *VisionService) AnalyzeImage(imageData, userID string) (*models.MealAnalysis, error) {
	start := time.Now()

	processed, err := utils.ProcessBase64Image(imageData)
	if err != nil {
		// Image problems are soft failures: the client can fall back to
		// manual entry.
		return nil, &models.VisionAnalysisFailed{
			Confidence:        0,
			FallbackAvailable: true,
			Message:           fmt.Sprintf("image processing failed: %v", err),
		}
	}

	result, err := s.callVisionModel(processed)
	if err != nil {
		return nil, err
	}

	items := convertToFoodItems(result.Ingredients)
	hash := utils.CalculateHash(processed)

	return &models.MealAnalysis{
		MealID:         uuid.New(),
		UserID:         userID,
		Timestamp:      time.Now().UTC(),
		ImageHash:      &hash,
		FoodItems:      items,
		TotalNutrition: models.SummarizeItems(items),
		Confidence:     result.ConfidenceScore,
		AnalysisMetadata: models.AnalysisMetadata{
			ProcessingTimeMs:    time.Since(start).Milliseconds(),
			ModelVersion:        visionModelVersion,
			ConfidenceThreshold: visionConfidenceThreshold,
		},
	}, nil
}

func (s *VisionService) callVisionModel(imageBytes []byte) (*models.VisionAnalysisResult, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"image":                base64.StdEncoding.EncodeToString(imageBytes),
		"confidence_threshold": visionConfidenceThreshold,
		"max_detections":       visionMaxDetections,
	})
	if err != nil {
		return nil, &models.InternalServerError{Message: fmt.Sprintf("failed to marshal vision payload: %v", err)}
	}

	resp, err := s.client.Post(s.endpoint+"/analyze", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, &models.ExternalServiceError{
			Service: "Vision Model",
			Message: fmt.Sprintf("network error: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &models.VisionAnalysisFailed{
			FallbackAvailable: true,
			Message:           fmt.Sprintf("vision model returned status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &models.VisionAnalysisFailed{
			FallbackAvailable: true,
			Message:           fmt.Sprintf("failed to read vision model response: %v", err),
		}
	}

	var result models.VisionAnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, &models.VisionAnalysisFailed{
			FallbackAvailable: true,
			Message:           fmt.Sprintf("failed to parse vision model response: %v", err),
		}
	}

	if result.ConfidenceScore < visionConfidenceThreshold {
		return nil, &models.VisionAnalysisFailed{
			Confidence:        result.ConfidenceScore,
			FallbackAvailable: true,
			Message:           "low confidence in food detection",
		}
	}
	return &result, nil
}

func convertToFoodItems(ingredients []models.DetectedIngredient) []models.FoodItem {
	items := make([]models.FoodItem, 0, len(ingredients))
	for _, ing := range ingredients {
		items = append(items, models.FoodItem{
			Name:               ing.Name,
			Confidence:         ing.Confidence,
			PortionSize:        ing.EstimatedPortionSize,
			NutritionPer100g:   ing.NutritionPer100g,
			EstimatedNutrition: ing.NutritionPer100g.ScaleToPortion(ing.EstimatedPortionSize),
		})
	}
	return items
}
