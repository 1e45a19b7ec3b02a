package main

import (
	"fmt"

	"asset-register/internal/config"
	"asset-register/internal/database"
	"asset-register/internal/server"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	database.Init(cfg.DBDSN)
	database.SeedSuperuser(database.DB, cfg.AdminEmail, cfg.AdminPassword)

	r := server.NewRouter(cfg)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	log.WithField("addr", addr).Info("starting server")
	if err := r.Run(addr); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
