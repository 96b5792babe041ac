package controllers

import (
	"log"
	"net/http"

	"github.com/ToXMon/fitagent/models"
	"github.com/ToXMon/fitagent/services"

	"github.com/gin-gonic/gin"
)

type GoalCompletionRequest struct {
	UserID        string  `json:"user_id" binding:"required"`
	ProteinIntake float64 `json:"protein_intake"`
	CalorieIntake float64 `json:"calorie_intake"`
	GoalType      string  `json:"goal_type"`
}

type GoalCompletionResponse struct {
	Success       bool    `json:"success"`
	VPEarned      *uint   `json:"vp_earned,omitempty"`
	StreakUpdated *uint   `json:"streak_updated,omitempty"`
	NFTEvolution  *bool   `json:"nft_evolution,omitempty"`
	Error         *string `json:"error,omitempty"`
}

type GoalController struct {
	chain *services.BlockchainService
	users *services.UserService
}

func NewGoalController(chain *services.BlockchainService, users *services.UserService) *GoalController {
	return &GoalController{chain: chain, users: users}
}

// POST /api/complete-goal  {user_id, protein_intake, calorie_intake, goal_type}
func (gc *GoalController) CompleteGoal(c *gin.Context) {
	var req GoalCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&models.ValidationError{Field: "user_id", Message: "user_id is required"})
		return
	}
	if req.ProteinIntake < 0 {
		c.Error(&models.ValidationError{Field: "protein_intake", Message: "protein intake cannot be negative"})
		return
	}
	if req.CalorieIntake < 0 {
		c.Error(&models.ValidationError{Field: "calorie_intake", Message: "calorie intake cannot be negative"})
		return
	}

	result, err := gc.chain.CompleteGoal(req.UserID, req.ProteinIntake, req.CalorieIntake)
	if err != nil {
		c.Error(err)
		return
	}

	if err := gc.users.UpdateUserStats(req.UserID, req.ProteinIntake, true); err != nil {
		log.Printf("stats update failed for user %s: %v", req.UserID, err)
	}

	if result.EvolutionQueued {
		c.Error(&models.BlockchainUnavailable{
			OperationQueued: true,
			Message:         "evolution trigger deferred",
		})
		return
	}

	c.JSON(http.StatusOK, GoalCompletionResponse{
		Success:       true,
		VPEarned:      &result.VPEarned,
		StreakUpdated: &result.StreakUpdated,
		NFTEvolution:  &result.NFTEvolution,
	})
}
