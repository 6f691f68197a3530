package handlers

import (
	"net/http"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/models"
	"github.com/SAP-F-2025/learning-assistant/internal/services"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/gin-gonic/gin"
)

// PageData is everything quiz.tmpl needs.
type PageData struct {
	Session        SessionState
	LearningStyles []models.LearningStyle
	Quiz           *models.QuizView
	Notification   *models.Notification
	ToastMillis    int64
}

type PageHandler struct {
	BaseHandler
	quizService   services.QuizService
	notifications services.NotificationService
	toastDuration time.Duration
}

func NewPageHandler(
	quizService services.QuizService,
	notifications services.NotificationService,
	toastDuration time.Duration,
	validator *validator.Validator,
	logger utils.Logger,
) *PageHandler {
	return &PageHandler{
		BaseHandler:   NewBaseHandler(logger, validator),
		quizService:   quizService,
		notifications: notifications,
		toastDuration: toastDuration,
	}
}

// Index handles GET /. A fresh session picks up the user's stored learning
// style and a backend health warning, as the chat page does on load.
func (h *PageHandler) Index(c *gin.Context) {
	session := mustSession(c)
	ctx := c.Request.Context()

	if created, _ := c.Get(sessionCreatedKey); created == true {
		if _, err := h.quizService.LoadPreferences(ctx, session); err != nil {
			h.LogWarn(c, "Failed to load user preferences", "error", err)
		}
		if _, err := h.quizService.CheckBackend(ctx, session); err != nil {
			h.LogWarn(c, "Backend health check failed", "error", err)
		}
	}

	data := PageData{
		Session:        sessionState(session),
		LearningStyles: models.LearningStyles,
		ToastMillis:    h.toastDuration.Milliseconds(),
	}
	if quiz, ok := session.CurrentQuiz(); ok {
		view := quiz.View()
		data.Quiz = &view
	}
	if n, ok := h.notifications.Current(session.ID()); ok {
		data.Notification = &n
	}

	c.HTML(http.StatusOK, "quiz.tmpl", data)
}

type HealthHandler struct {
	BaseHandler
	quizService services.QuizService
	analytics   services.AnalyticsService
}

func NewHealthHandler(quizService services.QuizService, analytics services.AnalyticsService, logger utils.Logger) *HealthHandler {
	return &HealthHandler{
		BaseHandler: NewBaseHandler(logger, nil),
		quizService: quizService,
		analytics:   analytics,
	}
}

// Health handles GET /health. The service stays healthy when the backend is
// down; the backend section reports it.
func (h *HealthHandler) Health(c *gin.Context) {
	backend := gin.H{"status": "unreachable"}
	if health, err := h.quizService.CheckBackend(c.Request.Context(), nil); err == nil {
		backend = gin.H{
			"status":           health.Status,
			"gemini_available": health.GeminiAvailable,
			"tts_available":    health.TTSAvailable,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "learning-assistant-quiz",
		"backend": backend,
	})
}

// Stats handles GET /stats
func (h *HealthHandler) Stats(c *gin.Context) {
	if h.analytics == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Message: "Analytics disabled"})
		return
	}
	c.JSON(http.StatusOK, h.analytics.Usage())
}
