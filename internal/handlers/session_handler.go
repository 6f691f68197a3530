package handlers

import (
	"net/http"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/services"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/gin-gonic/gin"
)

type SetLearningStyleRequest struct {
	Style models.LearningStyle `form:"style" json:"style" validate:"required,learning_style"`
}

type SetActiveDocumentRequest struct {
	DocumentID string `form:"document_id" json:"document_id" validate:"required"`
}

// SessionState is the JSON shape of a session.
type SessionState struct {
	ID               string                 `json:"id"`
	LearningStyle    models.LearningStyle   `json:"learning_style"`
	ActiveDocumentID string                 `json:"active_document_id,omitempty"`
	GenerationState  models.GenerationState `json:"generation_state"`
	Busy             bool                   `json:"busy"`
	CurrentQuizID    string                 `json:"current_quiz_id,omitempty"`
}

type NotificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
}

type SessionHandler struct {
	BaseHandler
	quizService services.QuizService
}

func NewSessionHandler(
	quizService services.QuizService,
	notifications services.NotificationService,
	validator *validator.Validator,
	logger utils.Logger,
) *SessionHandler {
	base := NewBaseHandler(logger, validator)
	base.notifications = notifications
	return &SessionHandler{
		BaseHandler: base,
		quizService: quizService,
	}
}

// GetSession handles GET /session
func (h *SessionHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, sessionState(mustSession(c)))
}

// SetLearningStyle handles POST /session/style
func (h *SessionHandler) SetLearningStyle(c *gin.Context) {
	var req SetLearningStyleRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectInput(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.rejectInput(c, err)
		return
	}

	session := mustSession(c)
	if err := h.quizService.SetLearningStyle(c.Request.Context(), session, req.Style); err != nil {
		h.respond(c, 0, nil, err)
		return
	}

	h.respond(c, http.StatusOK, sessionState(session), nil)
}

// SetActiveDocument handles POST /session/document. The upload flow calls it
// with the id the backend assigned to the new document.
func (h *SessionHandler) SetActiveDocument(c *gin.Context) {
	var req SetActiveDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectInput(c, err)
		return
	}
	if err := h.validator.Validate(&req); err != nil {
		h.rejectInput(c, err)
		return
	}

	session := mustSession(c)
	if err := h.quizService.SetActiveDocument(c.Request.Context(), session, req.DocumentID); err != nil {
		h.respond(c, 0, nil, err)
		return
	}

	h.LogInfo(c, "Active document set", "document_id", req.DocumentID)
	h.respond(c, http.StatusOK, sessionState(session), nil)
}

// ListDocuments handles GET /documents
func (h *SessionHandler) ListDocuments(c *gin.Context) {
	docs, err := h.quizService.ListDocuments(c.Request.Context())
	if err != nil {
		h.RespondWithError(c, http.StatusBadGateway, "Failed to load documents", err)
		return
	}
	if docs == nil {
		docs = []models.Document{}
	}
	c.JSON(http.StatusOK, models.DocumentsResponse{Documents: docs})
}

// Notifications handles GET /notifications
func (h *SessionHandler) Notifications(c *gin.Context) {
	resp := NotificationsResponse{Notifications: []models.Notification{}}
	if n, ok := h.notifications.Current(mustSession(c).ID()); ok {
		resp.Notifications = append(resp.Notifications, n)
	}
	c.JSON(http.StatusOK, resp)
}

// DismissNotification handles DELETE /notifications
func (h *SessionHandler) DismissNotification(c *gin.Context) {
	h.notifications.Dismiss(mustSession(c).ID())
	c.Status(http.StatusNoContent)
}

func sessionState(session *services.Session) SessionState {
	state := SessionState{
		ID:              session.ID(),
		LearningStyle:   session.LearningStyle(),
		GenerationState: session.GenerationState(),
		Busy:            session.Busy(),
	}
	state.ActiveDocumentID, _ = session.ActiveDocument()
	if quiz, ok := session.CurrentQuiz(); ok {
		state.CurrentQuizID = quiz.ID()
	}
	return state
}
