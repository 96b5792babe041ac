package controllers

import (
	"log"
	"net/http"

	"github.com/ToXMon/fitagent/models"
	"github.com/ToXMon/fitagent/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	users *services.UserService
	chain *services.BlockchainService
}

func NewUserController(users *services.UserService, chain *services.BlockchainService) *UserController {
	return &UserController{users: users, chain: chain}
}

// GET /api/user/profile/:user_id
func (uc *UserController) GetUserProfile(c *gin.Context) {
	userID := c.Param("user_id")
	if len(userID) > maxUserIDLength {
		c.Error(&models.ValidationError{Field: "user_id", Message: "user ID too long"})
		return
	}

	log.Printf("fetching profile for user: %s", userID)

	user, err := uc.users.GetProfile(userID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, models.UserProfileResponse{Success: true, Data: user})
}

// GET /api/user/balance/:address
func (uc *UserController) GetUserBalance(c *gin.Context) {
	address := c.Param("address")

	balance, err := uc.chain.GetUserBalance(address)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"balance": balance,
	})
}
