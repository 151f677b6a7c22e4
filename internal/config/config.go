package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabaseURL string
	JWTSecret   string
	Port        string
	FrontendURL string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	GoogleSheetsID     string

	// Dedicated service credential for the scheduled sheets sync. When empty
	// the background sync is disabled; manual sync still works with the
	// requesting user's own credential.
	GoogleSyncRefreshToken string

	AMQPURL string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string
}

func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️ .env file not found, using system environment variables")
	}

	cfg := Config{
		DatabaseURL:            os.Getenv("DATABASE_URL"),
		JWTSecret:              os.Getenv("JWT_SECRET"),
		Port:                   os.Getenv("PORT"),
		FrontendURL:            os.Getenv("FRONTEND_URL"),
		GoogleClientID:         os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret:     os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURI:      os.Getenv("GOOGLE_REDIRECT_URI"),
		GoogleSheetsID:         os.Getenv("GOOGLE_SHEETS_ID"),
		GoogleSyncRefreshToken: os.Getenv("GOOGLE_SYNC_REFRESH_TOKEN"),
		AMQPURL:                os.Getenv("AMQP_URL"),
		MailHost:               os.Getenv("MAIL_HOST"),
		MailPort:               587,
		MailUser:               os.Getenv("MAIL_USER"),
		MailPass:               os.Getenv("MAIL_PASS"),
		MailFrom:               os.Getenv("MAIL_FROM"),
	}

	if cfg.DatabaseURL == "" {
		log.Fatal("❌ DATABASE_URL not set in environment")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET not set in environment")
	}
	if cfg.GoogleClientID == "" || cfg.GoogleClientSecret == "" || cfg.GoogleRedirectURI == "" {
		log.Fatal("❌ GOOGLE_CLIENT_ID / GOOGLE_CLIENT_SECRET / GOOGLE_REDIRECT_URI not set in environment")
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:5173"
	}
	if cfg.MailFrom == "" {
		cfg.MailFrom = "no-reply@prospecta.local"
	}

	return cfg
}
