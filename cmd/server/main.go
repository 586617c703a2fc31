package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"talent-hub/internal/app"
	"talent-hub/internal/config"
	"talent-hub/internal/pkg/logger"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}

	log := logger.New(cfg.Log)
	log.WithFields(logrus.Fields{"app": cfg.App.AppName, "env": cfg.App.Environment}).Info("starting")

	bootstrap, cleanup, err := app.Bootstrap(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to bootstrap app")
	}
	defer func() {
		if err := cleanup(); err != nil {
			log.WithError(err).Error("cleanup error")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := bootstrap.Serve(ctx); err != nil {
		log.WithError(err).Error("server error")
		return
	}
	log.Info("shutdown complete")
}
