package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lucasmarins-seget/agendamento-seget-back/internal/config"
	dbpkg "github.com/lucasmarins-seget/agendamento-seget-back/internal/db"
	infraCache "github.com/lucasmarins-seget/agendamento-seget-back/internal/infra/cache"
	infraRepo "github.com/lucasmarins-seget/agendamento-seget-back/internal/infra/repository"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/logging"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/mailer"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/metrics"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/routes"
	"github.com/lucasmarins-seget/agendamento-seget-back/internal/scheduler"
)

func main() {

	cfg := config.Load()

	logger := logging.New(cfg.Env)
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)

	m := metrics.New()

	cache := infraCache.NewOccupancyCache(cfg.RedisAddr, cfg.RedisPassword, logger)
	defer cache.Close()

	mailService := mailer.NewService(
		cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
		cfg.MailFrom, cfg.FrontendURL,
		logger, m,
	)
	mailDispatcher := mailer.NewDispatcher(mailService, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(m.Middleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	routes.RegisterRoutes(r, db, cfg, logger, m, cache, mailDispatcher)

	// Tarefas de fundo: e-mails de presença e reconciliação.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.New(
		infraRepo.NewSchedulerGormStore(db),
		mailService,
		logger,
	)
	sched.Start(ctx)

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		logger.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Shutdown gracioso: para o scheduler, drena as requisições em voo.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	sched.Stop()
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
