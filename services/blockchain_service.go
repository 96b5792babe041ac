package services

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/ToXMon/fitagent/models"
)

const (
	baseVPReward          = 50
	proteinBonusVP        = 10
	proteinBonusThreshold = 25.0
)

// Tier evolution fires only at these exact streak values:
// Seedling->Sprout at 7, Sprout->Plant at 30, Plant->Tree at 90,
// Tree->ForestGuardian at 365.
var evolutionMilestones = map[uint]bool{7: true, 30: true, 90: true, 365: true}

// Ledger abstracts the on-chain reward store (streaks, token mints, tier
// evolution) so a real contract client can replace the in-process mock
// without touching the orchestration path.
type Ledger interface {
	LookupStreak(userID string) (uint, error)
	TriggerEvolution(userID string, streak uint) error
	MintTokens(address string, amount uint) (string, error)
	Balance(address string) (uint, error)
}

// mockLedger stands in for the Base/Flow contracts until they exist.
type mockLedger struct{}

func (mockLedger) LookupStreak(userID string) (uint, error) {
	log.Printf("calculating streak for user: %s", userID)
	return 8, nil
}

func (mockLedger) TriggerEvolution(userID string, streak uint) error {
	log.Printf("triggering NFT evolution for user %s at streak %d", userID, streak)
	return nil
}

func (mockLedger) MintTokens(address string, amount uint) (string, error) {
	log.Printf("minting %d VP tokens for address: %s", amount, address)
	return fmt.Sprintf("0x%x", rand.Uint64()), nil
}

func (mockLedger) Balance(address string) (uint, error) {
	return 1250, nil
}

type BlockchainService struct {
	ledger Ledger
}

func NewBlockchainService() *BlockchainService {
	return &BlockchainService{ledger: mockLedger{}}
}

func NewBlockchainServiceWithLedger(l Ledger) *BlockchainService {
	return &BlockchainService{ledger: l}
}

type GoalCompletionResult struct {
	VPEarned      uint
	StreakUpdated uint
	NFTEvolution  bool

	// EvolutionQueued marks that the evolution call failed and was deferred;
	// the reward path itself still completed.
	EvolutionQueued bool
}

// CompleteGoal computes the VP reward, refreshes the streak and runs the
// best-effort evolution check. Evolution never blocks the reward path.
func (s *BlockchainService) CompleteGoal(userID string, proteinIntake, calorieIntake float64) (*GoalCompletionResult, error) {
	log.Printf("processing goal completion for user: %s", userID)

	vp := uint(baseVPReward)
	if proteinIntake >= proteinBonusThreshold {
		vp += proteinBonusVP
	}

	streak, err := s.ledger.LookupStreak(userID)
	if err != nil {
		return nil, &models.BlockchainUnavailable{
			Message: fmt.Sprintf("streak lookup failed: %v", err),
		}
	}

	result := &GoalCompletionResult{VPEarned: vp, StreakUpdated: streak}

	if evolutionMilestones[streak] {
		result.NFTEvolution = true
		if err := s.ledger.TriggerEvolution(userID, streak); err != nil {
			log.Printf("evolution trigger failed for user %s, deferring: %v", userID, err)
			result.EvolutionQueued = true
		}
	}

	log.Printf("goal completion result for %s: VP=%d streak=%d evolved=%t",
		userID, result.VPEarned, result.StreakUpdated, result.NFTEvolution)
	return result, nil
}

// MintVPTokens mints the given amount and returns the transaction hash.
func (s *BlockchainService) MintVPTokens(address string, amount uint) (string, error) {
	tx, err := s.ledger.MintTokens(address, amount)
	if err != nil {
		return "", &models.BlockchainUnavailable{
			Message: fmt.Sprintf("mint failed for %s: %v", address, err),
		}
	}
	return tx, nil
}

// GetUserBalance is a read-only VP balance lookup.
func (s *BlockchainService) GetUserBalance(address string) (uint, error) {
	balance, err := s.ledger.Balance(address)
	if err != nil {
		return 0, &models.BlockchainUnavailable{
			Message: fmt.Sprintf("balance lookup failed for %s: %v", address, err),
		}
	}
	return balance, nil
}
