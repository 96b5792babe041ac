package controllers

import (
	"log"
	"net/http"

	"github.com/ToXMon/fitagent/models"
	"github.com/ToXMon/fitagent/services"

	"github.com/gin-gonic/gin"
)

type CoachingController struct {
	coaching *services.CoachingService
}

func NewCoachingController(coaching *services.CoachingService) *CoachingController {
	return &CoachingController{coaching: coaching}
}

// POST /api/coach-meal  {user_id, nutrition_data, conversation_history?, user_preferences?}
func (cc *CoachingController) CoachMeal(c *gin.Context) {
	var req models.CoachingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&models.ValidationError{Field: "request", Message: "user_id and nutrition_data are required"})
		return
	}
	if len(req.UserID) > maxUserIDLength {
		c.Error(&models.ValidationError{Field: "user_id", Message: "user ID too long"})
		return
	}

	log.Printf("generating coaching advice for user: %s", req.UserID)

	advice, err := cc.coaching.GenerateCoaching(&req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.CoachingResponse{Success: true, Data: advice})
}
