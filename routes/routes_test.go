package routes

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ToXMon/fitagent/config"
	"github.com/ToXMon/fitagent/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T, visionEndpoint string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return SetupRouter(&config.Config{
		Host:                "127.0.0.1",
		Port:                0,
		VeniceAIKey:         "test-key",
		VisionModelEndpoint: visionEndpoint,
		RateLimitPerMinute:  6000,
		RateLimitBurst:      100,
	})
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	r := testEngine(t, "http://unused")

	w := doJSON(t, r, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "healthy", body["status"])
	require.Equal(t, "fitagent-backend", body["service"])
	require.NotEmpty(t, body["version"])
	require.NotEmpty(t, body["timestamp"])
}

func TestUserProfileEndpoint(t *testing.T) {
	r := testEngine(t, "http://unused")

	w := doJSON(t, r, http.MethodGet, "/api/user/profile/user-42", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.UserProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.NotNil(t, resp.Data)
	require.NotEmpty(t, resp.Data.WalletAddress)
	require.Equal(t, models.NFTLevelSprout, resp.Data.CurrentLevel)
}

func TestUserBalanceEndpoint(t *testing.T) {
	r := testEngine(t, "http://unused")

	w := doJSON(t, r, http.MethodGet, "/api/user/balance/0x742d35Cc6634C0532925a3b8D4C9db96590c6C8b", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"balance":1250`)
}

func TestCompleteGoalEndpoint(t *testing.T) {
	r := testEngine(t, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/api/complete-goal",
		`{"user_id":"user-1","protein_intake":25.0,"calorie_intake":600,"goal_type":"DailyProtein"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, true, resp["success"])
	require.InDelta(t, 60, resp["vp_earned"], 1e-9)
	require.InDelta(t, 8, resp["streak_updated"], 1e-9)
	require.Equal(t, false, resp["nft_evolution"])
}

func TestCompleteGoalRejectsNegativeIntake(t *testing.T) {
	r := testEngine(t, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/api/complete-goal",
		`{"user_id":"user-1","protein_intake":-1,"calorie_intake":600,"goal_type":"DailyProtein"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"validation_error"`)
	require.Contains(t, w.Body.String(), `"protein_intake"`)
}

func TestAnalyzePhotoRejectsMissingFields(t *testing.T) {
	r := testEngine(t, "http://unused")

	w := doJSON(t, r, http.MethodPost, "/api/analyze-photo", `{"user_id":"user-1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"validation_error"`)
}

func TestAnalyzePhotoLowConfidenceMapsTo206(t *testing.T) {
	vision := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.VisionAnalysisResult{
			ConfidenceScore: 0.79,
		})
	}))
	defer vision.Close()

	r := testEngine(t, vision.URL)

	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	img.Set(10, 10, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	payload, err := json.Marshal(map[string]string{
		"image_data": base64.StdEncoding.EncodeToString(buf.Bytes()),
		"user_id":    "user-1",
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/api/analyze-photo", string(payload))
	require.Equal(t, http.StatusPartialContent, w.Code)
	require.Contains(t, w.Body.String(), `"manual_entry_available"`)
}
