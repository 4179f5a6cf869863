package main

import (
	"context"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/sirupsen/logrus"

	"github.com/example/taskboard/internal/api"
	"github.com/example/taskboard/internal/config"
	"github.com/example/taskboard/internal/service"
	"github.com/example/taskboard/internal/storage"
)

const shutdownTimeout = 15 * time.Second

func main() {
	config.LoadDotenv()
	cfg := config.LoadServer()

	logger := newLogger(cfg)

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		logger.WithError(err).Fatal("open database")
	}

	taskService := service.NewTaskService(repo, logger)
	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewRouter(taskService, logger),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.Addr).Info("listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("serve")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down http server")
				return server.Shutdown(ctx)
			},
			"database": func(_ context.Context) error {
				return repo.Close()
			},
		},
	)

	exitCode := <-wait
	logger.WithField("code", exitCode).Info("exited")
	os.Exit(exitCode)
}

func newLogger(cfg config.ServerConfig) *logrus.Logger {
	logger := logrus.New()
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}
