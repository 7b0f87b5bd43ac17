package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/yashi-star/InterviewManagementSystem/internal/domain"
)

// ErrorResponse is the uniform error body returned by every endpoint.
type ErrorResponse struct {
	Timestamp   time.Time      `json:"timestamp"`
	Status      int            `json:"status"`
	Error       string         `json:"error"`
	Message     string         `json:"message"`
	Path        string         `json:"path"`
	Details     string         `json:"details,omitempty"`
	FieldErrors []FieldError   `json:"fieldErrors,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// FieldError describes one rejected request field.
type FieldError struct {
	Field         string `json:"field"`
	RejectedValue any    `json:"rejectedValue"`
	Message       string `json:"message"`
}

// respondError is the single translation point from domain errors to
// HTTP responses. Handlers never map errors themselves.
func respondError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Timestamp: time.Now(),
		Path:      c.Request.URL.Path,
		Message:   err.Error(),
	}

	var (
		notFound          *domain.NotFoundError
		duplicateEmail    *domain.DuplicateEmailError
		duplicateFeedback *domain.DuplicateFeedbackError
		conflict          *domain.SchedulingConflictError
		validation        *domain.ValidationError
		illegal           *domain.IllegalTransitionError
		noOp              *domain.NoOpTransitionError
		invalidState      *domain.InvalidStateError
		forbidden         *domain.ForbiddenError
		tooLarge          *domain.PayloadTooLargeError
		external          *domain.ExternalServiceError
	)

	switch {
	case errors.As(err, &notFound):
		resp.Status = http.StatusNotFound
		resp.Error = "Not Found"
	case errors.As(err, &duplicateEmail), errors.As(err, &duplicateFeedback):
		resp.Status = http.StatusConflict
		resp.Error = "Conflict"
	case errors.As(err, &conflict):
		resp.Status = http.StatusConflict
		resp.Error = "Conflict"
		resp.Metadata = map[string]any{
			"interviewerId": conflict.InterviewerID,
			"conflictTime":  conflict.ConflictTime.Format(time.RFC3339),
		}
	case errors.As(err, &validation):
		resp.Status = http.StatusBadRequest
		resp.Error = "Bad Request"
		resp.FieldErrors = []FieldError{{
			Field:   validation.Field,
			Message: validation.Message,
		}}
	case errors.As(err, &invalidState):
		resp.Status = http.StatusBadRequest
		resp.Error = "Bad Request"
	case errors.As(err, &illegal), errors.As(err, &noOp), errors.As(err, &forbidden):
		resp.Status = http.StatusUnprocessableEntity
		resp.Error = "Unprocessable Entity"
	case errors.As(err, &tooLarge):
		resp.Status = http.StatusRequestEntityTooLarge
		resp.Error = "Payload Too Large"
	case errors.As(err, &external):
		resp.Status = http.StatusServiceUnavailable
		resp.Error = "Service Unavailable"
		resp.Metadata = map[string]any{"serviceName": external.Service}
	default:
		log.Error().Err(err).Str("path", resp.Path).Msg("unhandled error")
		resp.Status = http.StatusInternalServerError
		resp.Error = "Internal Server Error"
		resp.Message = "An unexpected error occurred"
	}

	c.JSON(resp.Status, resp)
}

// respondBindError translates gin binding failures into the uniform
// body, expanding validator violations into fieldErrors.
func respondBindError(c *gin.Context, err error) {
	resp := ErrorResponse{
		Timestamp: time.Now(),
		Status:    http.StatusBadRequest,
		Error:     "Bad Request",
		Message:   "Request validation failed",
		Path:      c.Request.URL.Path,
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			resp.FieldErrors = append(resp.FieldErrors, FieldError{
				Field:         fe.Field(),
				RejectedValue: fe.Value(),
				Message:       bindErrorMessage(fe),
			})
		}
	} else {
		resp.Details = err.Error()
	}

	c.JSON(http.StatusBadRequest, resp)
}

func bindErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must contain at least " + fe.Param() + " items"
	case "max":
		return "must contain at most " + fe.Param() + " items"
	default:
		return "is invalid"
	}
}
