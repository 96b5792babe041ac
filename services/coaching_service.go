package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ToXMon/fitagent/models"
)

const (
	veniceEndpoint     = "https://api.venice.ai/api/v1/chat/completions"
	veniceModel        = "qwen3-235b"
	veniceTemperature  = 0.6
	veniceTopP         = 0.95
	veniceMaxTokens    = 500
	maxHistoryMessages = 10
)

const coachSystemPrompt = `You are FitAgent, a motivational nutrition coach focused on helping users achieve their daily protein goals and overall health.

Your personality:
- Encouraging and positive, never judgmental
- Focus on protein intake as the primary goal
- Use scientific knowledge but explain it simply
- Celebrate progress and provide actionable advice
- Suggest realistic next steps

Your response format should be JSON:
{
  "coaching_text": "Your main coaching message (2-3 sentences)",
  "suggested_goal": {
    "goal_type": "DailyProtein",
    "target_value": 25.0,
    "vp_reward": 50,
    "description": "Reach 25g protein in your next meal"
  },
  "motivation_quote": "A short motivational quote",
  "recommendations": ["Specific actionable tip 1", "Specific actionable tip 2"],
  "next_meal_suggestions": ["Food suggestion 1", "Food suggestion 2"]
}

Focus on:
1. Protein content analysis and goals
2. Balanced macro recommendations
3. Encouraging consistency for NFT evolution
4. Practical meal suggestions
5. Celebrating achievements and streaks`

type CoachingService struct {
	client   *http.Client
	apiKey   string
	endpoint string

	// Last successful advice text per user, served as the fallback when the
	// upstream times out.
	mu    sync.RWMutex
	cache map[string]string
}

func NewCoachingService(apiKey string) *CoachingService {
	return &CoachingService{
		client:   &http.Client{Timeout: 10 * time.Second},
		apiKey:   apiKey,
		endpoint: veniceEndpoint,
		cache:    make(map[string]string),
	}
}

// GenerateCoaching calls the Venice AI chat endpoint and always yields a
// fully-populated advice on any successful transport round-trip; only
// transport-level failures surface as errors.
func (s *CoachingService) GenerateCoaching(req *models.CoachingRequest) (*models.CoachingAdvice, error) {
	veniceReq := models.VeniceAIRequest{
		Model:       veniceModel,
		Messages:    buildMessageHistory(req),
		Temperature: veniceTemperature,
		TopP:        veniceTopP,
		MaxTokens:   veniceMaxTokens,
		VeniceParameters: models.VeniceParameters{
			EnableWebSearch:           "on",
			EnableWebCitations:        true,
			IncludeVeniceSystemPrompt: true,
		},
	}

	payload, err := json.Marshal(veniceReq)
	if err != nil {
		return nil, &models.InternalServerError{Message: fmt.Sprintf("failed to marshal coaching payload: %v", err)}
	}

	httpReq, err := http.NewRequest(http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, &models.InternalServerError{Message: fmt.Sprintf("failed to create coaching request: %v", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, &models.ExternalServiceError{
			Service: "Venice AI",
			Message: fmt.Sprintf("network error: %v", err),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, s.timeoutError(req.UserID, fmt.Sprintf("Venice AI returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, s.timeoutError(req.UserID, fmt.Sprintf("failed to read Venice AI response: %v", err))
	}

	var veniceResp models.VeniceAIResponse
	if err := json.Unmarshal(body, &veniceResp); err != nil {
		return nil, s.timeoutError(req.UserID, fmt.Sprintf("failed to parse Venice AI response: %v", err))
	}
	if len(veniceResp.Choices) == 0 {
		return nil, s.timeoutError(req.UserID, "no response from Venice AI")
	}

	advice := parseCoachingContent(veniceResp.Choices[0].Message.Content)

	s.mu.Lock()
	s.cache[req.UserID] = advice.CoachingText
	s.mu.Unlock()

	return advice, nil
}

// timeoutError attaches the user's cached advice, if any, so the response
// mapper can serve stale coaching instead of a 503.
func (s *CoachingService) timeoutError(userID, message string) error {
	var cached *string
	s.mu.RLock()
	if text, ok := s.cache[userID]; ok {
		cached = &text
	}
	s.mu.RUnlock()
	return &models.AICoachingTimeout{CachedResponse: cached, Message: message}
}

// buildMessageHistory produces the bounded conversation context: the coach
// system prompt, at most the 10 most recent prior turns in their original
// order, and a final user turn summarizing the current meal.
func buildMessageHistory(req *models.CoachingRequest) []models.VeniceMessage {
	messages := []models.VeniceMessage{
		{Role: "system", Content: coachSystemPrompt},
	}

	history := req.ConversationHistory
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}
	for _, msg := range history {
		role := models.MessageTypeUser
		switch strings.ToLower(msg.MessageType) {
		case models.MessageTypeAssistant:
			role = models.MessageTypeAssistant
		case models.MessageTypeSystem:
			role = models.MessageTypeSystem
		}
		messages = append(messages, models.VeniceMessage{Role: role, Content: msg.Content})
	}

	foodNames := make([]string, 0, len(req.NutritionData.FoodItems))
	for _, item := range req.NutritionData.FoodItems {
		foodNames = append(foodNames, item.Name)
	}

	summary := fmt.Sprintf(
		"Meal Analysis: %.0f calories, %.1fg protein, %.1fg carbs, %.1fg fat. Foods detected: %s",
		req.NutritionData.TotalNutrition.TotalCalories,
		req.NutritionData.TotalNutrition.TotalProtein,
		req.NutritionData.TotalNutrition.TotalCarbs,
		req.NutritionData.TotalNutrition.TotalFat,
		strings.Join(foodNames, ", "),
	)
	messages = append(messages, models.VeniceMessage{
		Role:    "user",
		Content: "Please analyze this meal and provide coaching: " + summary,
	})

	return messages
}

// parseCoachingContent applies the two-tier fallback: a JSON object is read
// field by field with independent typed defaults; anything else becomes the
// coaching text verbatim with fixed defaults for the rest. It never fails.
func parseCoachingContent(content string) *models.CoachingAdvice {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &obj); err != nil {
		return &models.CoachingAdvice{
			CoachingText: content,
			SuggestedGoal: &models.SuggestedGoal{
				GoalType:    models.GoalTypeDailyProtein,
				TargetValue: 25.0,
				VPReward:    50,
				Description: "Aim for 25g protein in your next meal",
			},
			MotivationQuote:     "Every healthy choice counts!",
			Recommendations:     []string{"Keep tracking your meals!"},
			NextMealSuggestions: []string{"Add some lean protein to your next meal"},
		}
	}

	var goalObj map[string]json.RawMessage
	if raw, ok := obj["suggested_goal"]; ok {
		_ = json.Unmarshal(raw, &goalObj)
	}

	return &models.CoachingAdvice{
		CoachingText: stringField(obj["coaching_text"], "Great job tracking your meal!"),
		SuggestedGoal: &models.SuggestedGoal{
			GoalType:    models.GoalTypeDailyProtein,
			TargetValue: floatField(goalObj["target_value"], 25.0),
			VPReward:    uintField(goalObj["vp_reward"], 50),
			Description: stringField(goalObj["description"], "Keep up the great work!"),
		},
		MotivationQuote:     stringField(obj["motivation_quote"], "Every meal is a step toward your goals!"),
		Recommendations:     stringListField(obj["recommendations"], []string{"Keep tracking your meals consistently!"}),
		NextMealSuggestions: stringListField(obj["next_meal_suggestions"], []string{"Try adding some lean protein to your next meal!"}),
	}
}

func stringField(raw json.RawMessage, def string) string {
	var s string
	if raw == nil || json.Unmarshal(raw, &s) != nil {
		return def
	}
	return s
}

func floatField(raw json.RawMessage, def float64) float64 {
	var f float64
	if raw == nil || json.Unmarshal(raw, &f) != nil {
		return def
	}
	return f
}

func uintField(raw json.RawMessage, def uint) uint {
	var u uint
	if raw == nil || json.Unmarshal(raw, &u) != nil {
		return def
	}
	return u
}

// stringListField keeps only the string elements of a JSON array; a present
// array wins even when it ends up empty, anything else falls back.
func stringListField(raw json.RawMessage, def []string) []string {
	var elems []json.RawMessage
	if raw == nil || json.Unmarshal(raw, &elems) != nil {
		return def
	}
	out := make([]string, 0, len(elems))
	for _, e := range elems {
		var s string
		if json.Unmarshal(e, &s) == nil {
			out = append(out, s)
		}
	}
	return out
}
