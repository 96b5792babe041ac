package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID            uuid.UUID       `json:"id"`
	FarcasterFID  *string         `json:"farcaster_fid"`
	WalletAddress string          `json:"wallet_address"`
	Email         *string         `json:"email"`
	CreatedAt     time.Time       `json:"created_at"`
	Preferences   UserPreferences `json:"preferences"`
	Goals         NutritionGoals  `json:"goals"`
	NFTTokenID    *string         `json:"nft_token_id"`
	CurrentLevel  string          `json:"current_level"`
	Stats         UserStats       `json:"stats"`
}

type UserPreferences struct {
	DietaryRestrictions []string        `json:"dietary_restrictions"`
	Allergies           []string        `json:"allergies"`
	FitnessGoals        []string        `json:"fitness_goals"`
	PreferredMealTimes  []string        `json:"preferred_meal_times"`
	PrivacySettings     PrivacySettings `json:"privacy_settings"`
}

type PrivacySettings struct {
	ShowOnLeaderboard bool `json:"show_on_leaderboard"`
	ShareAchievements bool `json:"share_achievements"`
	AllowNFTLending   bool `json:"allow_nft_lending"`
}

type NutritionGoals struct {
	DailyProteinGrams float64 `json:"daily_protein_grams"`
	DailyCalories     float64 `json:"daily_calories"`
	DailyFiberGrams   float64 `json:"daily_fiber_grams"`
}

type UserStats struct {
	TotalMealsLogged       uint    `json:"total_meals_logged"`
	CurrentStreak          uint    `json:"current_streak"`
	LongestStreak          uint    `json:"longest_streak"`
	TotalVPEarned          uint    `json:"total_vp_earned"`
	AverageProteinIntake   float64 `json:"average_protein_intake"`
	GoalsCompletedThisWeek uint    `json:"goals_completed_this_week"`
}

// NFT achievement tiers, one-way evolution at streak milestones.
const (
	NFTLevelSeedling       = "Seedling"
	NFTLevelSprout         = "Sprout"
	NFTLevelPlant          = "Plant"
	NFTLevelTree           = "Tree"
	NFTLevelForestGuardian = "ForestGuardian"
)

type UserProfileResponse struct {
	Success bool    `json:"success"`
	Data    *User   `json:"data"`
	Error   *string `json:"error"`
}
