package handlers

import (
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/services"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/gin-gonic/gin"
)

// Dependencies bundles what the handlers need from the service layer.
type Dependencies struct {
	QuizService   services.QuizService
	Notifications services.NotificationService
	Reports       services.ReportService
	Analytics     services.AnalyticsService
	Sessions      *services.SessionRegistry
	Validator     *validator.Validator
	Logger        utils.Logger

	ToastDuration time.Duration
	SessionTTL    time.Duration
	SecureCookies bool
}

type HandlerManager struct {
	pageHandler    *PageHandler
	quizHandler    *QuizHandler
	sessionHandler *SessionHandler
	healthHandler  *HealthHandler

	sessions      *services.SessionRegistry
	sessionTTL    time.Duration
	secureCookies bool
}

func NewHandlerManager(deps Dependencies) *HandlerManager {
	return &HandlerManager{
		pageHandler:    NewPageHandler(deps.QuizService, deps.Notifications, deps.ToastDuration, deps.Validator, deps.Logger),
		quizHandler:    NewQuizHandler(deps.QuizService, deps.Reports, deps.Notifications, deps.Validator, deps.Logger),
		sessionHandler: NewSessionHandler(deps.QuizService, deps.Notifications, deps.Validator, deps.Logger),
		healthHandler:  NewHealthHandler(deps.QuizService, deps.Analytics, deps.Logger),
		sessions:       deps.Sessions,
		sessionTTL:     deps.SessionTTL,
		secureCookies:  deps.SecureCookies,
	}
}

// SetupRoutes sets up all routes. The router must already have the page
// templates loaded.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", hm.healthHandler.Health)
	router.GET("/stats", hm.healthHandler.Stats)

	ui := router.Group("/")
	ui.Use(SessionMiddleware(hm.sessions, hm.sessionTTL, hm.secureCookies))
	{
		ui.GET("", hm.pageHandler.Index)
		ui.GET("documents", hm.sessionHandler.ListDocuments)

		// Session setters
		session := ui.Group("/session")
		{
			session.GET("", hm.sessionHandler.GetSession)
			session.POST("/style", hm.sessionHandler.SetLearningStyle)
			session.POST("/document", hm.sessionHandler.SetActiveDocument)
		}

		// Quiz lifecycle
		quiz := ui.Group("/quiz")
		{
			quiz.POST("/generate", hm.quizHandler.GenerateQuiz)
			quiz.GET("/:id", hm.quizHandler.GetQuiz)
			quiz.POST("/:id/select", hm.quizHandler.SelectOption)
			quiz.POST("/:id/submit", hm.quizHandler.SubmitQuiz)
			quiz.GET("/:id/report.xlsx", hm.quizHandler.ExportReport)
		}

		notifications := ui.Group("/notifications")
		{
			notifications.GET("", hm.sessionHandler.Notifications)
			notifications.DELETE("", hm.sessionHandler.DismissNotification)
		}
	}
}
