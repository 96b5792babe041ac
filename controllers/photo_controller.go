package controllers

import (
	"log"
	"net/http"

	"github.com/ToXMon/fitagent/models"
	"github.com/ToXMon/fitagent/services"

	"github.com/gin-gonic/gin"
)

const maxUserIDLength = 100

type PhotoController struct {
	vision *services.VisionService
}

func NewPhotoController(vision *services.VisionService) *PhotoController {
	return &PhotoController{vision: vision}
}

// POST /api/analyze-photo  {image_data, user_id}
func (pc *PhotoController) AnalyzePhoto(c *gin.Context) {
	var req models.AnalyzePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(&models.ValidationError{Field: "request", Message: "image_data and user_id are required"})
		return
	}
	if len(req.UserID) > maxUserIDLength {
		c.Error(&models.ValidationError{Field: "user_id", Message: "user ID too long"})
		return
	}

	log.Printf("analyzing photo for user: %s", req.UserID)

	analysis, err := pc.vision.AnalyzeImage(req.ImageData, req.UserID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.NutritionResponse{Success: true, Data: analysis})
}
