package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/services"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/gin-gonic/gin"
)

// ===== COMMON RESPONSE STRUCTURES =====

// ErrorResponse represents an error response
type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Code    string      `json:"code,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ===== BASE HANDLER STRUCT =====

// MsgInvalidInput is the toast shown when a form submission cannot be used.
const MsgInvalidInput = "That request could not be processed. Please check your input and try again."

// BaseHandler provides common logging and response helpers for all handlers
type BaseHandler struct {
	logger        utils.Logger
	validator     *validator.Validator
	notifications services.NotificationService
}

func NewBaseHandler(logger utils.Logger, validator *validator.Validator) BaseHandler {
	return BaseHandler{
		logger:    logger,
		validator: validator,
	}
}

func (h *BaseHandler) requestFields(c *gin.Context, additionalFields ...interface{}) []interface{} {
	fields := []interface{}{
		"request_id", c.GetHeader("X-Request-ID"),
		"session_id", h.extractSessionID(c),
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	}
	return append(fields, additionalFields...)
}

// LogRequest logs incoming HTTP requests with context information
func (h *BaseHandler) LogRequest(c *gin.Context, message string, additionalFields ...interface{}) {
	fields := h.requestFields(c, additionalFields...)
	fields = append(fields,
		"remote_addr", c.ClientIP(),
		"timestamp", time.Now().Format(time.RFC3339),
	)
	h.logger.Debug(message, fields...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, message string, additionalFields ...interface{}) {
	h.logger.LogError(err, message, h.requestFields(c, additionalFields...)...)
}

func (h *BaseHandler) LogWarn(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Warn(message, h.requestFields(c, additionalFields...)...)
}

func (h *BaseHandler) LogInfo(c *gin.Context, message string, additionalFields ...interface{}) {
	h.logger.Info(message, h.requestFields(c, additionalFields...)...)
}

func (h *BaseHandler) extractSessionID(c *gin.Context) string {
	if session, ok := sessionFrom(c); ok {
		return session.ID()
	}
	return ""
}

// RespondWithError sends a consistent error response and logs it
func (h *BaseHandler) RespondWithError(c *gin.Context, statusCode int, message string, err error, details ...interface{}) {
	errorResp := ErrorResponse{
		Message: message,
	}
	if len(details) > 0 {
		errorResp.Details = details[0]
	}

	if err != nil && statusCode >= http.StatusInternalServerError {
		h.LogError(c, err, message, "status_code", statusCode)
	} else {
		h.LogWarn(c, message, "status_code", statusCode)
	}

	c.JSON(statusCode, errorResp)
}

// handleServiceError maps service errors to JSON responses. The user-facing
// notification has already been raised by the service. Generation failures are
// matched first since they may wrap a validation cause.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var failure *services.GenerationFailure
	if errors.As(err, &failure) {
		h.RespondWithError(c, http.StatusBadGateway, failure.Message, err)
		return
	}

	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, validationErrors)
		return
	}

	var validationError *services.ValidationError
	if errors.As(err, &validationError) {
		h.RespondWithError(c, http.StatusBadRequest, "Validation failed", err, services.ValidationErrors{*validationError})
		return
	}

	var unanswered *services.UnansweredError
	if errors.As(err, &unanswered) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Message: unanswered.Notice(),
			Details: map[string]interface{}{"unanswered": unanswered.Questions},
			Code:    "unanswered_questions",
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrNoDocument):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: services.MsgNoDocument,
			Code:    "no_document",
		})
	case errors.Is(err, services.ErrRequestInFlight):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: services.MsgRequestInFlight,
			Code:    "request_in_flight",
		})
	case errors.Is(err, services.ErrQuizAlreadyGraded):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: services.MsgQuizAlreadyGraded,
			Code:    "quiz_already_graded",
		})
	case errors.Is(err, services.ErrQuizNotGraded):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "Quiz has not been submitted yet",
			Code:    "quiz_not_graded",
		})
	case errors.Is(err, services.ErrQuizNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "Quiz not found",
		})
	default:
		h.RespondWithError(c, http.StatusInternalServerError, "Internal server error", err)
	}
}

// respond writes data as JSON for API clients and redirects browsers back to
// the quiz page, where notifications carry the outcome.
func (h *BaseHandler) respond(c *gin.Context, statusCode int, data interface{}, err error) {
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	c.JSON(statusCode, data)
}

// rejectInput answers a payload that failed binding or validation. Browsers are
// sent back to the quiz page with an error toast.
func (h *BaseHandler) rejectInput(c *gin.Context, err error) {
	if wantsJSON(c) {
		if services.IsValidation(err) {
			h.handleServiceError(c, err)
			return
		}
		h.RespondWithError(c, http.StatusBadRequest, "Invalid request payload", err, err.Error())
		return
	}

	h.LogWarn(c, "Invalid form submission", "error", err)
	if session, ok := sessionFrom(c); ok && h.notifications != nil {
		if _, nerr := h.notifications.Notify(c.Request.Context(), session.ID(), models.NotificationError, MsgInvalidInput); nerr != nil {
			h.LogError(c, nerr, "Failed to show notification")
		}
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}
