package main

import (
	"context"
	"net/http"

	gorillahandlers "github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/habib-153/oddlogy-server/internal/auth"
	"github.com/habib-153/oddlogy-server/internal/config"
	"github.com/habib-153/oddlogy-server/internal/database"
	"github.com/habib-153/oddlogy-server/internal/mailer"
	"github.com/habib-153/oddlogy-server/internal/routes"
	"github.com/habib-153/oddlogy-server/internal/uploads"
)

func main() {
	cfg := config.LoadConfig()

	client, err := database.ConnectMongoDB(cfg.MongoURI)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			logrus.WithError(err).Fatal("Failed to disconnect from MongoDB")
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	if err := database.EnsureIndexes(ctx, client.Database(cfg.DatabaseName)); err != nil {
		logrus.WithError(err).Fatal("Failed to create indexes")
	}

	var uploader uploads.Uploader
	if cfg.CloudinaryURL != "" {
		uploader, err = uploads.NewCloudinary(cfg.CloudinaryURL)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to configure cloudinary")
		}
	}

	var mail mailer.Mailer = mailer.NopMailer{}
	if cfg.SMTPUsername != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom)
	}

	tm := auth.NewTokenManager(cfg.JWTSecret)
	router := routes.SetupRouter(client, cfg.DatabaseName, tm, uploader, mail)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(gorillahandlers.RecoveryHandler()(router))

	logrus.WithField("port", cfg.Port).Info("Server running")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logrus.WithError(err).Fatal("Failed to start server")
	}
}
