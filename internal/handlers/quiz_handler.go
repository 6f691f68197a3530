package handlers

import (
	"fmt"
	"net/http"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/services"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// SelectOptionRequest carries one answer selection. Pointers distinguish a
// missing field from index 0.
type SelectOptionRequest struct {
	Question *int `form:"question" json:"question" validate:"required,min=0"`
	Option   *int `form:"option" json:"option" validate:"required,min=0"`
}

type SubmitQuizResponse struct {
	Result models.QuizResult `json:"result"`
	Quiz   models.QuizView   `json:"quiz"`
}

type QuizHandler struct {
	BaseHandler
	quizService   services.QuizService
	reportService services.ReportService
}

func NewQuizHandler(
	quizService services.QuizService,
	reportService services.ReportService,
	notifications services.NotificationService,
	validator *validator.Validator,
	logger utils.Logger,
) *QuizHandler {
	base := NewBaseHandler(logger, validator)
	base.notifications = notifications
	return &QuizHandler{
		BaseHandler:   base,
		quizService:   quizService,
		reportService: reportService,
	}
}

// GenerateQuiz handles POST /quiz/generate
func (h *QuizHandler) GenerateQuiz(c *gin.Context) {
	h.LogRequest(c, "Generating quiz")
	session := mustSession(c)

	quiz, err := h.quizService.GenerateQuiz(c.Request.Context(), session)
	if err != nil {
		h.respond(c, 0, nil, err)
		return
	}

	h.respond(c, http.StatusCreated, quiz.View(), nil)
}

// GetQuiz handles GET /quiz/:id
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := ParseStringIDParam(c, "id")
	if quizID == "" {
		return
	}

	quiz, err := mustSession(c).Quiz(quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quiz.View())
}

// SelectOption handles POST /quiz/:id/select
func (h *QuizHandler) SelectOption(c *gin.Context) {
	quizID := ParseStringIDParam(c, "id")
	if quizID == "" {
		return
	}

	var req SelectOptionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectInput(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.rejectInput(c, err)
		return
	}

	quiz, err := h.quizService.SelectOption(c.Request.Context(), mustSession(c), quizID, *req.Question, *req.Option)
	if err != nil {
		h.respond(c, 0, nil, err)
		return
	}

	h.respond(c, http.StatusOK, quiz.View(), nil)
}

// SubmitQuiz handles POST /quiz/:id/submit
func (h *QuizHandler) SubmitQuiz(c *gin.Context) {
	quizID := ParseStringIDParam(c, "id")
	if quizID == "" {
		return
	}
	h.LogRequest(c, "Submitting quiz", "quiz_id", quizID)
	session := mustSession(c)

	result, err := h.quizService.SubmitQuiz(c.Request.Context(), session, quizID)
	if err != nil {
		h.respond(c, 0, nil, err)
		return
	}

	quiz, err := session.Quiz(quizID)
	if err != nil {
		h.respond(c, 0, nil, err)
		return
	}

	h.respond(c, http.StatusOK, SubmitQuizResponse{Result: *result, Quiz: quiz.View()}, nil)
}

// ExportReport handles GET /quiz/:id/report.xlsx
func (h *QuizHandler) ExportReport(c *gin.Context) {
	quizID := ParseStringIDParam(c, "id")
	if quizID == "" {
		return
	}

	quiz, err := mustSession(c).Quiz(quizID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	data, err := h.reportService.ExportQuizResult(c.Request.Context(), quiz)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quiz-%s.xlsx", quizID))
	c.Data(http.StatusOK, xlsxContentType, data)
}
