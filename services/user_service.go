package services

import (
	"log"
	"time"

	"github.com/ToXMon/fitagent/models"

	"github.com/google/uuid"
)

// UserService serves profiles from mock data until Tableland (or another
// durable store) is wired in behind the same surface.
type UserService struct{}

func NewUserService() *UserService {
	return &UserService{}
}

func (s *UserService) GetProfile(userID string) (*models.User, error) {
	log.Printf("fetching user profile for: %s", userID)

	id, err := uuid.Parse(userID)
	if err != nil {
		id = uuid.New()
	}

	fid := "12345"
	email := "user@example.com"
	tokenID := "1"

	return &models.User{
		ID:            id,
		FarcasterFID:  &fid,
		WalletAddress: "0x742d35Cc6634C0532925a3b8D4C9db96590c6C8b",
		Email:         &email,
		CreatedAt:     time.Now().UTC(),
		Preferences: models.UserPreferences{
			DietaryRestrictions: []string{"vegetarian"},
			Allergies:           []string{"nuts"},
			FitnessGoals:        []string{"muscle_gain", "weight_loss"},
			PreferredMealTimes:  []string{"7:00", "12:00", "18:00"},
			PrivacySettings: models.PrivacySettings{
				ShowOnLeaderboard: true,
				ShareAchievements: true,
				AllowNFTLending:   true,
			},
		},
		Goals: models.NutritionGoals{
			DailyProteinGrams: 120.0,
			DailyCalories:     2000.0,
			DailyFiberGrams:   25.0,
		},
		NFTTokenID:   &tokenID,
		CurrentLevel: models.NFTLevelSprout,
		Stats: models.UserStats{
			TotalMealsLogged:       45,
			CurrentStreak:          7,
			LongestStreak:          14,
			TotalVPEarned:          2250,
			AverageProteinIntake:   95.5,
			GoalsCompletedThisWeek: 5,
		},
	}, nil
}

// UpdateUserStats records a goal completion against the user's stats.
// Best-effort until the durable store exists.
func (s *UserService) UpdateUserStats(userID string, proteinIntake float64, goalCompleted bool) error {
	log.Printf("user %s stats updated: protein=%.1f, goal_completed=%t", userID, proteinIntake, goalCompleted)
	return nil
}
