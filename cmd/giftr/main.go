package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/giftr-dev/giftr/db"
	"github.com/giftr-dev/giftr/internal/auth"
	"github.com/giftr-dev/giftr/internal/config"
	"github.com/giftr-dev/giftr/internal/handlers"
	"github.com/giftr-dev/giftr/internal/logger"
	"github.com/giftr-dev/giftr/internal/mailer"
	"github.com/giftr-dev/giftr/internal/middleware"
	"github.com/giftr-dev/giftr/internal/oauth"
	"github.com/giftr-dev/giftr/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	cfg, err := config.NewConfig()

	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(cfg.LogLevel)

	gdb, err := db.Connect(cfg.Database.DSN)

	if err != nil {
		l.Fatal("Failed to connect to database", "error", err.Error())
	}

	if err := db.Migrate(gdb); err != nil {
		l.Fatal("Failed to migrate database", "error", err.Error())
	}

	sessions := auth.NewManager(cfg.Session.Secret)
	mail := mailer.NewResend(cfg.Mail.APIKey, cfg.Mail.Sender, l)
	google := oauth.NewGoogle(cfg.Google.ClientID, cfg.Google.Issuer, l)
	facebook := oauth.NewFacebook(cfg.Facebook.AppID, cfg.Facebook.AppSecret, l)

	h := handlers.New(gdb, l, mail, sessions, google, facebook,
		cfg.Session.Domain, cfg.Session.Secure)
	mw := middleware.New(gdb, sessions, l)

	r := router.NewRouter(h, mw)

	l.Info("Starting Giftr", "port", cfg.Port)

	if err := r.Run(":" + cfg.Port); err != nil {
		l.Fatal("Failed to start server", "error", err.Error())
	}
}
