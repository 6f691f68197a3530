package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SAP-F-2025/learning-assistant/internal/client"
	"github.com/SAP-F-2025/learning-assistant/internal/config"
	"github.com/SAP-F-2025/learning-assistant/internal/events"
	"github.com/SAP-F-2025/learning-assistant/internal/handlers"
	"github.com/SAP-F-2025/learning-assistant/internal/services"
	"github.com/SAP-F-2025/learning-assistant/internal/utils"
	"github.com/SAP-F-2025/learning-assistant/internal/validator"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("development").Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Events ──────────────────────────────────────────────────────
	eventPublisher, err := cfg.Events.CreateEventPublisher(logger.Slog())
	if err != nil {
		logger.Error("Failed to create event publisher, falling back to mock", "error", err)
		eventPublisher = events.NewMockEventPublisher(logger.Slog())
	}
	defer func() {
		if err := eventPublisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	analytics := services.NewAnalyticsService()
	if bus, ok := eventPublisher.(*events.GoChannelEventPublisher); ok {
		messages, err := bus.Subscribe(ctx)
		if err != nil {
			logger.Error("Failed to subscribe to quiz events", "error", err)
			os.Exit(1)
		}
		go events.Consume(ctx, messages, logger.Slog(), events.LogHandler(logger.Slog()), analytics.HandleEvent)
	}

	// ── Services ────────────────────────────────────────────────────
	v := validator.New()
	backend := client.NewBackendClient(cfg.BackendURL, cfg.BackendTimeout, logger)
	notifications := services.NewNotificationService(cfg.ToastDuration, eventPublisher, logger)
	sessions := services.NewSessionRegistry()

	hm := handlers.NewHandlerManager(handlers.Dependencies{
		QuizService:   services.NewQuizService(backend, notifications, eventPublisher, logger, v, cfg.QuestionCount),
		Notifications: notifications,
		Reports:       services.NewReportService(logger),
		Analytics:     analytics,
		Sessions:      sessions,
		Validator:     v,
		Logger:        logger,
		ToastDuration: cfg.ToastDuration,
		SessionTTL:    cfg.SessionTTL,
		SecureCookies: cfg.IsProduction(),
	})

	go pruneLoop(ctx, sessions, notifications, cfg.SessionTTL, logger)

	// ── Router ──────────────────────────────────────────────────────
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	tmpl, err := handlers.LoadTemplates()
	if err != nil {
		logger.Error("Failed to parse templates", "error", err)
		os.Exit(1)
	}

	router := gin.New()
	router.Use(gin.Recovery(), utils.LoggerMiddleware(logger))
	router.SetHTMLTemplate(tmpl)
	hm.SetupRoutes(router)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.BackendTimeout + 15*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		logger.Info("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", "error", err)
		}
	}()

	logger.Info("Starting server",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"backend_url", cfg.BackendURL)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}

// pruneLoop drops idle sessions and expired notifications.
func pruneLoop(ctx context.Context, sessions *services.SessionRegistry, notifications services.NotificationService, ttl time.Duration, logger utils.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := sessions.Prune(ttl)
			expired := notifications.Prune()
			if removed > 0 || expired > 0 {
				logger.Debug("Pruned session state", "sessions", removed, "notifications", expired)
			}
		}
	}
}
