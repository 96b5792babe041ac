package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type CoachingRequest struct {
	UserID              string                   `json:"user_id" binding:"required"`
	NutritionData       MealAnalysis             `json:"nutrition_data"`
	ConversationHistory []Message                `json:"conversation_history"`
	UserPreferences     *UserCoachingPreferences `json:"user_preferences"`
}

// Message is one prior conversation turn.
type Message struct {
	ID          uuid.UUID       `json:"id"`
	MessageType string          `json:"message_type"` // user | assistant | system
	Content     string          `json:"content"`
	Timestamp   time.Time       `json:"timestamp"`
	Metadata    json.RawMessage `json:"metadata,omitempty"`
}

const (
	MessageTypeUser      = "user"
	MessageTypeAssistant = "assistant"
	MessageTypeSystem    = "system"
)

type UserCoachingPreferences struct {
	CoachingStyle   string   `json:"coaching_style"` // Encouraging | Direct | Scientific | Casual
	FocusAreas      []string `json:"focus_areas"`
	MotivationLevel string   `json:"motivation_level"` // Low | Medium | High
}

type CoachingResponse struct {
	Success bool            `json:"success"`
	Data    *CoachingAdvice `json:"data"`
	Error   *string         `json:"error"`
}

// CoachingAdvice is constructed fresh per coaching call. Every field is
// populated even when the upstream reply is malformed.
type CoachingAdvice struct {
	CoachingText        string         `json:"coaching_text"`
	SuggestedGoal       *SuggestedGoal `json:"suggested_goal"`
	MotivationQuote     string         `json:"motivation_quote"`
	Recommendations     []string       `json:"recommendations"`
	NextMealSuggestions []string       `json:"next_meal_suggestions"`
}

type SuggestedGoal struct {
	GoalType    string  `json:"goal_type"`
	TargetValue float64 `json:"target_value"`
	VPReward    uint    `json:"vp_reward"`
	Description string  `json:"description"`
}

const (
	GoalTypeDailyProtein  = "DailyProtein"
	GoalTypeDailyCalories = "DailyCalories"
	GoalTypeMealBalance   = "MealBalance"
	GoalTypeHydration     = "Hydration"
)

// Venice AI chat-completions wire types.

type VeniceAIRequest struct {
	Model            string           `json:"model"`
	Messages         []VeniceMessage  `json:"messages"`
	Temperature      float64          `json:"temperature"`
	TopP             float64          `json:"top_p"`
	MaxTokens        int              `json:"max_tokens"`
	VeniceParameters VeniceParameters `json:"venice_parameters"`
}

type VeniceMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type VeniceParameters struct {
	EnableWebSearch           string `json:"enable_web_search"`
	EnableWebCitations        bool   `json:"enable_web_citations"`
	IncludeVeniceSystemPrompt bool   `json:"include_venice_system_prompt"`
}

type VeniceAIResponse struct {
	Choices []VeniceChoice `json:"choices"`
	Usage   *VeniceUsage   `json:"usage"`
}

type VeniceChoice struct {
	Message      VeniceMessage `json:"message"`
	FinishReason *string       `json:"finish_reason"`
}

type VeniceUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
