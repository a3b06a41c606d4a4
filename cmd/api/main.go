package main

import (
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/app"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/bootstrap"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/config"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/apperror"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	if err := cfg.Validate(); err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	apperror.Init()

	// build dependency + routes
	router, cleanup, err := app.BuildApp(cfg, log)
	if err != nil {
		log.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(
		router,
		bootstrap.ServerConfig{
			Port:         cfg.Server.Port,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
			IdleTimeout:  cfg.Server.IdleTimeout,
		},
		bootstrap.NewStdoutAuditLogger(log),
		log,
	)
}
