package services

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ToXMon/fitagent/models"

	"github.com/stretchr/testify/require"
)

func smallImageBase64(t *testing.T) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		img.Set(x, x, color.RGBA{R: 200, G: 100, B: 50, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func visionFixture(confidence float64) models.VisionAnalysisResult {
	return models.VisionAnalysisResult{
		Ingredients: []models.DetectedIngredient{
			{
				Name:       "grilled chicken",
				Confidence: 0.92,
				NutritionPer100g: models.NutritionFacts{
					Calories: 165, Protein: 31, Carbohydrates: 0, Fat: 3.6,
				},
				EstimatedPortionSize: 150,
			},
			{
				Name:       "brown rice",
				Confidence: 0.85,
				NutritionPer100g: models.NutritionFacts{
					Calories: 112, Protein: 2.6, Carbohydrates: 24, Fat: 0.9, Fiber: 1.8,
				},
				EstimatedPortionSize: 100,
			},
		},
		ConfidenceScore:  confidence,
		ProcessingTimeMs: 120,
	}
}

func visionServer(t *testing.T, status int, result models.VisionAnalysisResult) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/analyze", r.URL.Path)

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		require.NotEmpty(t, payload["image"])
		require.InDelta(t, 0.8, payload["confidence_threshold"], 1e-9)
		require.InDelta(t, 10, payload["max_detections"], 1e-9)

		w.WriteHeader(status)
		if status == http.StatusOK {
			json.NewEncoder(w).Encode(result)
		}
	}))
}

func TestAnalyzeImageSuccess(t *testing.T) {
	srv := visionServer(t, http.StatusOK, visionFixture(0.81))
	defer srv.Close()

	svc := NewVisionService(srv.URL)
	analysis, err := svc.AnalyzeImage(smallImageBase64(t), "user-1")
	require.NoError(t, err)

	require.Equal(t, "user-1", analysis.UserID)
	require.NotEqual(t, "", analysis.MealID.String())
	require.NotNil(t, analysis.ImageHash)
	require.Len(t, *analysis.ImageHash, 64)
	require.InDelta(t, 0.81, analysis.Confidence, 1e-9)
	require.Equal(t, "fitagent-vit-v1.0", analysis.AnalysisMetadata.ModelVersion)
	require.InDelta(t, 0.8, analysis.AnalysisMetadata.ConfidenceThreshold, 1e-9)

	require.Len(t, analysis.FoodItems, 2)
	chicken := analysis.FoodItems[0]
	require.Equal(t, "grilled chicken", chicken.Name)
	require.InDelta(t, 31*1.5, chicken.EstimatedNutrition.Protein, 1e-9)
	require.InDelta(t, 165*1.5, chicken.EstimatedNutrition.Calories, 1e-9)

	wantProtein := 31*1.5 + 2.6
	require.InDelta(t, wantProtein, analysis.TotalNutrition.TotalProtein, 1e-9)
}

func TestAnalyzeImageBelowThresholdIsSoftFailure(t *testing.T) {
	srv := visionServer(t, http.StatusOK, visionFixture(0.79))
	defer srv.Close()

	svc := NewVisionService(srv.URL)
	_, err := svc.AnalyzeImage(smallImageBase64(t), "user-1")

	var visionErr *models.VisionAnalysisFailed
	require.ErrorAs(t, err, &visionErr)
	require.True(t, visionErr.FallbackAvailable)
	require.InDelta(t, 0.79, visionErr.Confidence, 1e-9)
}

func TestAnalyzeImageUpstreamErrorStatus(t *testing.T) {
	srv := visionServer(t, http.StatusInternalServerError, models.VisionAnalysisResult{})
	defer srv.Close()

	svc := NewVisionService(srv.URL)
	_, err := svc.AnalyzeImage(smallImageBase64(t), "user-1")

	var visionErr *models.VisionAnalysisFailed
	require.ErrorAs(t, err, &visionErr)
	require.True(t, visionErr.FallbackAvailable)
	require.Zero(t, visionErr.Confidence)
}

func TestAnalyzeImageNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	svc := NewVisionService(srv.URL)
	_, err := svc.AnalyzeImage(smallImageBase64(t), "user-1")

	var extErr *models.ExternalServiceError
	require.ErrorAs(t, err, &extErr)
	require.Equal(t, "Vision Model", extErr.Service)
}

func TestAnalyzeImageBadImagePayload(t *testing.T) {
	svc := NewVisionService("http://unused")
	_, err := svc.AnalyzeImage("not base64 at all", "user-1")

	var visionErr *models.VisionAnalysisFailed
	require.ErrorAs(t, err, &visionErr)
	require.True(t, visionErr.FallbackAvailable)
}
