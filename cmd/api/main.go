package main

import (
	"fmt"
	"log"
	"os"

	"hexa_access/internal/access"
	"hexa_access/internal/alerts"
	"hexa_access/internal/config"
	"hexa_access/internal/db"
	"hexa_access/internal/events"
	httpserver "hexa_access/internal/http"
	"hexa_access/internal/notify"
	"hexa_access/internal/seed"
	"hexa_access/internal/store/gormstore"
)

func main() {
	cfg := config.Load()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	gdb := db.Connect(cfg.DSN)
	db.AutoMigrate(gdb)

	if err := seed.FirstSetup(gdb, cfg.DefaultPin, cfg.DefaultPassword); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	characters := gormstore.NewCharacterStore(gdb)
	logs := gormstore.NewLogStore(gdb)
	rules := gormstore.NewAlertRuleStore(gdb)

	mailer := notify.NewMailer(cfg.Mail, logger)
	alertEngine := alerts.NewEngine(rules, logs, characters, mailer, logger)
	recorder := events.NewRecorder(logs, alertEngine, logger)
	accessEngine := access.NewEngine(characters, recorder, logger)

	r := httpserver.NewRouter(httpserver.Dependencies{
		Characters: characters,
		Logs:       logs,
		Rules:      rules,
		Recorder:   recorder,
		Access:     accessEngine,
		Dispatch:   mailer,
		JWTSecret:  cfg.JWTSecret,
		Logger:     logger,
	})

	log.Printf("Server listening on :%s", cfg.AppPort)
	if err := r.Run(fmt.Sprintf(":%s", cfg.AppPort)); err != nil {
		log.Fatalf("Server exited: %v", err)
	}
}
