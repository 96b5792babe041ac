package models

import "fmt"

// The fixed set of error kinds every adapter failure is classified into.
// Each kind carries exactly the context the response mapper needs to pick a
// status and payload shape; the Message field is server-side diagnostic
// detail and is logged, never returned to clients.

type VisionAnalysisFailed struct {
	Confidence        float64
	FallbackAvailable bool
	Message           string
}

func (e *VisionAnalysisFailed) Error() string {
	return fmt.Sprintf("vision analysis failed: %s", e.Message)
}

type AICoachingTimeout struct {
	CachedResponse *string
	Message        string
}

func (e *AICoachingTimeout) Error() string {
	return fmt.Sprintf("AI coaching timeout: %s", e.Message)
}

type BlockchainUnavailable struct {
	OperationQueued bool
	Message         string
}

func (e *BlockchainUnavailable) Error() string {
	return fmt.Sprintf("blockchain unavailable: %s", e.Message)
}

type RateLimitExceeded struct {
	RetryAfterSeconds uint
	Message           string
}

func (e *RateLimitExceeded) Error() string {
	return fmt.Sprintf("rate limit exceeded: %s", e.Message)
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on %s: %s", e.Field, e.Message)
}

type DatabaseError struct {
	Message string
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error: %s", e.Message)
}

type ExternalServiceError struct {
	Service string
	Message string
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s error: %s", e.Service, e.Message)
}

type InternalServerError struct {
	Message string
}

func (e *InternalServerError) Error() string {
	return fmt.Sprintf("internal server error: %s", e.Message)
}
