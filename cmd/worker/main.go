package main

import (
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/app"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/config"
	"github.com/felicienmukamba/gestion-des-ressources-humaines/internal/shared/logger"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	if err := cfg.ValidateWorker(); err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	if err := app.RunWorker(cfg, log); err != nil {
		log.Fatal("run worker failed", zap.Error(err))
	}
}
