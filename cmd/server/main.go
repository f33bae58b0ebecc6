// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"linkedin-autoposter/internal/common/config"
	"linkedin-autoposter/internal/common/logger"
	"linkedin-autoposter/internal/generator"
	"linkedin-autoposter/internal/imaging"
	"linkedin-autoposter/internal/linkedin"
	"linkedin-autoposter/internal/scheduler"
	"linkedin-autoposter/internal/server"
	"linkedin-autoposter/internal/workflow"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("failed to load config", zap.Error(err))
	}

	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting service", map[string]interface{}{
		"app":         cfg.App.Name,
		"environment": cfg.App.Environment,
		"port":        cfg.Server.Port,
	})

	if missing := cfg.MissingRequired(); len(missing) > 0 {
		// Boot anyway: the trigger endpoints report the missing variables
		// per request instead of taking the whole process down.
		log.Warn("workflow credentials missing, runs will be refused", map[string]interface{}{
			"missing": missing,
		})
	}

	gen := generator.NewService(cfg.Gemini, log)
	resolver := imaging.NewResolver(cfg.Image)
	client := linkedin.NewClient(cfg.LinkedIn, log)
	runner := workflow.NewRunner(gen, resolver, client, client, log)

	var sched *scheduler.Scheduler
	if cfg.Schedule.Cron != "" {
		if len(cfg.MissingRequired()) > 0 {
			log.Warn("scheduler disabled: workflow credentials missing", nil)
		} else {
			sched, err = scheduler.New(cfg.Schedule.Cron, runner, log)
			if err != nil {
				zapLogger.Fatal("invalid schedule", zap.Error(err))
			}
			if err := sched.Start(); err != nil {
				zapLogger.Fatal("failed to start scheduler", zap.Error(err))
			}
		}
	}

	router := server.NewRouter(cfg, runner, log)
	srv := &http.Server{
		Addr:    server.Addr(cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("http server listening", map[string]interface{}{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", nil)

	if sched != nil {
		sched.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed", nil)
	}

	log.Info("stopped", nil)
}
