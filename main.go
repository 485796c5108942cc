package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/aggroplatform/aggro-admin/api"
	"github.com/aggroplatform/aggro-admin/auth"
	"github.com/aggroplatform/aggro-admin/config"
	"github.com/aggroplatform/aggro-admin/logger"
	"github.com/aggroplatform/aggro-admin/store"
	"github.com/aggroplatform/aggro-admin/upload"
	"github.com/aggroplatform/aggro-admin/views"
)

func main() {
	config.LoadConfig()

	client, err := store.ConnectMongo(config.MongoURI)
	if err != nil {
		logger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		client.Disconnect(ctx)
	}()

	gw := store.NewMongoGateway(client, config.DBName)

	sessions := auth.NewManager(gw, auth.SendGridMailer{})
	uploader := upload.NewClient(config.ImageHostURL, config.ImageUploadPreset)

	schemes := views.NewSchemesView(gw)
	defer schemes.Close()
	crops := views.NewCropsView(gw)
	defer crops.Close()
	feedback := views.NewFeedbackView(gw)
	defer feedback.Close()

	router := api.NewRouter(api.Handlers{
		Auth:      api.NewAuthHandler(sessions),
		Users:     api.NewUserHandler(views.NewUsersView(gw), gw),
		Schemes:   api.NewSchemeHandler(schemes, gw, uploader),
		Crops:     api.NewCropHandler(crops, gw, uploader),
		Feedback:  api.NewFeedbackHandler(feedback),
		Dashboard: api.NewDashboardHandler(views.NewDashboard(gw)),
		Settings:  api.NewSettingsHandler(views.NewAdminsView(gw), sessions, uploader),
		Events:    api.NewEventsHandler(gw),
	})

	logger.Info("Server starting", zap.String("port", config.Port))
	if err := http.ListenAndServe(":"+config.Port, router); err != nil {
		logger.Fatal("Server failed to start", zap.Error(err))
	}
}
