package middlewares

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/ToXMon/fitagent/models"

	"github.com/gin-gonic/gin"
)

// ErrorHandler is the single boundary turning classified errors into HTTP
// responses. Handlers push errors with c.Error and return; nothing else in
// the codebase decides status codes.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// Full diagnostic detail stays server-side.
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)

		status, body, retryAfter := MapError(err)
		if retryAfter > 0 {
			c.Header("Retry-After", strconv.FormatUint(uint64(retryAfter), 10))
		}
		c.JSON(status, body)
	}
}

// MapError is a pure function of (error kind, kind-specific flags). The
// bodies carry only the structured kind, a safe message and the kind's
// hints; internal detail never appears here.
func MapError(err error) (status int, body gin.H, retryAfter uint) {
	var (
		vision    *models.VisionAnalysisFailed
		coaching  *models.AICoachingTimeout
		chain     *models.BlockchainUnavailable
		rateLimit *models.RateLimitExceeded
		invalid   *models.ValidationError
		database  *models.DatabaseError
		external  *models.ExternalServiceError
	)

	switch {
	case errors.As(err, &vision):
		if vision.FallbackAvailable {
			return http.StatusPartialContent, gin.H{
				"error":    "vision_analysis_failed",
				"fallback": "manual_entry_available",
				"message":  "We couldn't analyze your photo clearly. You can enter nutrition info manually.",
			}, 0
		}
		return http.StatusBadRequest, gin.H{
			"error":   "vision_analysis_failed",
			"message": "Unable to analyze the photo. Please try with a clearer image.",
		}, 0

	case errors.As(err, &coaching):
		if coaching.CachedResponse != nil {
			return http.StatusOK, gin.H{
				"error":             "coaching_timeout",
				"fallback_response": *coaching.CachedResponse,
				"message":           "Using cached coaching response due to timeout.",
			}, 0
		}
		return http.StatusServiceUnavailable, gin.H{
			"error":   "coaching_unavailable",
			"message": "AI coaching is temporarily unavailable. Please try again later.",
		}, 0

	case errors.As(err, &chain):
		if chain.OperationQueued {
			return http.StatusAccepted, gin.H{
				"error":   "blockchain_delayed",
				"message": "Blockchain operation queued. Rewards will be processed when network is available.",
			}, 0
		}
		return http.StatusServiceUnavailable, gin.H{
			"error":   "blockchain_unavailable",
			"message": "Blockchain services are temporarily unavailable.",
		}, 0

	case errors.As(err, &rateLimit):
		return http.StatusTooManyRequests, gin.H{
			"error":               "rate_limit_exceeded",
			"retry_after_seconds": rateLimit.RetryAfterSeconds,
			"message":             "Too many requests. Please try again later.",
		}, rateLimit.RetryAfterSeconds

	case errors.As(err, &invalid):
		return http.StatusBadRequest, gin.H{
			"error":   "validation_error",
			"field":   invalid.Field,
			"message": invalid.Message,
		}, 0

	case errors.As(err, &database):
		return http.StatusInternalServerError, gin.H{
			"error":   "database_error",
			"message": "Database operation failed.",
		}, 0

	case errors.As(err, &external):
		return http.StatusBadGateway, gin.H{
			"error":   "external_service_error",
			"service": external.Service,
			"message": fmt.Sprintf("%s service is unavailable.", external.Service),
		}, 0

	default:
		// InternalServerError and anything unclassified.
		return http.StatusInternalServerError, gin.H{
			"error":   "internal_server_error",
			"message": "An unexpected error occurred.",
		}, 0
	}
}
