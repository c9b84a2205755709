package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/markgregr/taskflow_REST_server/internal/config"
	"github.com/markgregr/taskflow_REST_server/internal/lib/locale"
	"github.com/markgregr/taskflow_REST_server/internal/notify"
	"github.com/markgregr/taskflow_REST_server/internal/rest/handlers"
	"github.com/markgregr/taskflow_REST_server/internal/rest/middleware"
	"github.com/markgregr/taskflow_REST_server/internal/scheduler"
	"github.com/markgregr/taskflow_REST_server/internal/services/auth"
	"github.com/markgregr/taskflow_REST_server/internal/services/comment"
	"github.com/markgregr/taskflow_REST_server/internal/services/task"
	"github.com/markgregr/taskflow_REST_server/internal/storage"
)

// App owns the HTTP server, the storage handle and the cron scheduler.
// Done is closed once a shutdown signal has been fully processed.
type App struct {
	Done chan struct{}

	log      *logrus.Entry
	cfg      *config.Config
	server   *http.Server
	store    *storage.Storage
	reminder *scheduler.Reminder
}

func New(cfg *config.Config, log *logrus.Entry) (*App, error) {
	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	bundle, err := locale.NewBundle()
	if err != nil {
		return nil, err
	}

	pusher, err := newPusher(cfg, log.Logger)
	if err != nil {
		return nil, err
	}
	mailer := newMailer(cfg, log.Logger)

	authService := auth.New(log.Logger, store, mailer, cfg.JWT.Secret, cfg.JWT.TokenTTL, cfg.ClientURL)
	taskService := task.New(log.Logger, store, pusher)
	commentService := comment.New(log.Logger, store, pusher)

	if cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.Locale(bundle))

	handlers.NewUserHandler(authService, log.Logger).EnrichRoutes(router)
	handlers.NewTaskHandler(taskService, authService, log.Logger).EnrichRoutes(router)
	handlers.NewCommentHandler(commentService, authService, log.Logger).EnrichRoutes(router)

	server := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		Done:     make(chan struct{}),
		log:      log,
		cfg:      cfg,
		server:   server,
		store:    store,
		reminder: scheduler.NewReminder(taskService, log.Logger),
	}, nil
}

// Run starts the HTTP server and the scheduler, then waits for SIGINT or
// SIGTERM in the background. Returns immediately.
func (a *App) Run() {
	const op = "app.Run"
	log := a.log.WithField("operation", op)

	if err := a.reminder.Start(); err != nil {
		log.WithError(err).Error("failed to start scheduler")
	}

	go func() {
		log.WithField("address", a.cfg.HTTPServer.Address).Info("http server listening")
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http server stopped")
		}
	}()

	go a.waitForShutdown()
}

func (a *App) waitForShutdown() {
	const op = "app.waitForShutdown"
	log := a.log.WithField("operation", op)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.WithField("signal", sig.String()).Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPServer.Timeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("http server shutdown failed")
	}
	a.reminder.Stop()
	if err := a.store.Close(); err != nil {
		log.WithError(err).Error("failed to close storage")
	}

	close(a.Done)
}

func newPusher(cfg *config.Config, log *logrus.Logger) (notify.Pusher, error) {
	if cfg.Firebase.CredentialsFile == "" {
		return notify.NewLogPusher(log), nil
	}
	return notify.NewFCMPusher(context.Background(), cfg.Firebase.CredentialsFile)
}

func newMailer(cfg *config.Config, log *logrus.Logger) notify.Mailer {
	if cfg.SMTP.Host == "" {
		return notify.NewLogMailer(log)
	}
	return notify.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
}
