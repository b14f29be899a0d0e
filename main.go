// @title        Task Manager API
// @version      1.0
// @description  In-memory task list with add, remove and list operations.
// @BasePath     /
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/config"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/logger"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/server"
	"github.com/Innocent9712/much-to-do/Server/TaskManager/internal/tasks"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("loading config")
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	gin.SetMode(cfg.Server.Mode)

	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func run(cfg *config.Config, log *logrus.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := tasks.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			log.WithError(err).Warn("closing task store")
		}
	}()

	router, err := server.NewRouter(cfg.Server, store, log)
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{"port": cfg.Server.Port, "backend": cfg.Store.Backend}).Info("starting task manager")
	return server.New(cfg.Server, router, log).ListenAndServe(ctx)
}
