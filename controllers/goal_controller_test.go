package controllers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ToXMon/fitagent/middlewares"
	"github.com/ToXMon/fitagent/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type fixedLedger struct {
	streak     uint
	triggerErr error
}

func (l fixedLedger) LookupStreak(string) (uint, error)       { return l.streak, nil }
func (l fixedLedger) TriggerEvolution(string, uint) error     { return l.triggerErr }
func (l fixedLedger) MintTokens(string, uint) (string, error) { return "0xabc", nil }
func (l fixedLedger) Balance(string) (uint, error)            { return 1250, nil }

func goalEngine(ledger services.Ledger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.ErrorHandler())
	ctl := NewGoalController(services.NewBlockchainServiceWithLedger(ledger), services.NewUserService())
	r.POST("/api/complete-goal", ctl.CompleteGoal)
	return r
}

func postGoal(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/complete-goal", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCompleteGoalMilestoneEvolution(t *testing.T) {
	r := goalEngine(fixedLedger{streak: 7})

	w := postGoal(r, `{"user_id":"user-1","protein_intake":30,"calorie_intake":700,"goal_type":"DailyProtein"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"nft_evolution":true`)
	require.Contains(t, w.Body.String(), `"vp_earned":60`)
	require.Contains(t, w.Body.String(), `"streak_updated":7`)
}

func TestCompleteGoalQueuedEvolutionMapsTo202(t *testing.T) {
	r := goalEngine(fixedLedger{streak: 30, triggerErr: errors.New("layerzero bridge down")})

	w := postGoal(r, `{"user_id":"user-1","protein_intake":30,"calorie_intake":700,"goal_type":"DailyProtein"}`)
	require.Equal(t, http.StatusAccepted, w.Code)
	require.Contains(t, w.Body.String(), `"blockchain_delayed"`)
	// internal detail stays out of the body
	require.NotContains(t, w.Body.String(), "layerzero")
}

func TestCompleteGoalMissingUserID(t *testing.T) {
	r := goalEngine(fixedLedger{streak: 8})

	w := postGoal(r, `{"protein_intake":30,"calorie_intake":700}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"validation_error"`)
}
