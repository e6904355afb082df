package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"hexa_access/internal/notify"
)

type Config struct {
	DSN       string
	AppPort   string
	JWTSecret string

	// Defaults applied to seeded system personnel.
	DefaultPin      string
	DefaultPassword string

	Mail notify.Config
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, using system environment variables")
	}

	cfg := Config{
		DSN:             os.Getenv("MYSQL_DSN"),
		AppPort:         os.Getenv("APP_PORT"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		DefaultPin:      os.Getenv("DEFAULT_PIN"),
		DefaultPassword: os.Getenv("DEFAULT_PASSWORD"),
		Mail: notify.Config{
			SMTPHost:   os.Getenv("SMTP_HOST"),
			SMTPPort:   intEnv("SMTP_PORT", 587),
			User:       os.Getenv("EMAIL_USER"),
			Password:   os.Getenv("EMAIL_PASS"),
			AdminEmail: os.Getenv("ADMIN_EMAIL"),
		},
	}

	if cfg.DSN == "" {
		log.Fatal("MYSQL_DSN not set in environment")
	}
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-secret-only"
	}
	if cfg.AppPort == "" {
		cfg.AppPort = "5001"
	}
	if cfg.DefaultPin == "" {
		cfg.DefaultPin = "123456"
	}
	if cfg.DefaultPassword == "" {
		cfg.DefaultPassword = "password123"
	}
	if !cfg.Mail.Configured() {
		log.Println("EMAIL_USER not set, alerts will be logged to console only")
	}

	return cfg
}

func intEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
