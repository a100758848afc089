package main

import (
	"context"
	"log"

	"github.com/Daniel-Moraes1/offer-watch/internal/auth"
	"github.com/Daniel-Moraes1/offer-watch/internal/config"
	"github.com/Daniel-Moraes1/offer-watch/internal/database"
	"github.com/Daniel-Moraes1/offer-watch/internal/handlers"
	"github.com/Daniel-Moraes1/offer-watch/internal/logger"
	"github.com/Daniel-Moraes1/offer-watch/internal/services"
	"github.com/Daniel-Moraes1/offer-watch/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logg, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatal("failed to build logger: ", err)
	}
	defer logg.Sync()

	db, err := database.Connect(cfg.DB.DSN)
	if err != nil {
		logg.Fatal("database connection failed", zap.Error(err))
	}
	st := store.New(db)

	ctx := context.Background()

	httpClient, err := auth.GmailClient(ctx, cfg.Gmail.CredentialsFile, cfg.Gmail.TokenFile)
	if err != nil {
		logg.Fatal("gmail authorization failed", zap.Error(err))
	}
	gmailService, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		logg.Fatal("creating gmail service failed", zap.Error(err))
	}

	inbox := services.NewInbox(gmailService, logg)

	// Connectivity check, and the label list is handy in the startup log.
	labels, err := inbox.Labels(ctx)
	if err != nil {
		logg.Fatal("gmail connectivity check failed", zap.Error(err))
	}
	logg.Info("gmail connected", zap.Strings("labels", labels))

	profile, err := gmailService.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		logg.Fatal("fetching gmail profile failed", zap.Error(err))
	}
	owner := profile.EmailAddress

	if cfg.Gmail.ProjectID != "" {
		if err := inbox.StartWatch(ctx, cfg.TopicName()); err != nil {
			logg.Error("registering mailbox watch failed", zap.Error(err))
		}
	} else {
		logg.Warn("PUBSUB_PROJECT_ID not set, skipping watch registration")
	}

	completer, err := services.NewOpenAICompleter(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if err != nil {
		logg.Fatal("creating completion client failed", zap.Error(err))
	}
	classifier := services.NewClassifier(completer, logg)
	processor := services.NewProcessor(inbox, classifier, st, logg)

	watcher := services.NewWatcher(processor, owner, cfg.Webhook.SyncInterval, logg)
	watcher.Start(ctx)

	h := handlers.NewPubSubHandler(processor, logg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.GET("/", h.Health)
	r.POST("/pubsub", h.Receive)

	logg.Info("webhook server starting",
		zap.Int("port", cfg.Webhook.Port), zap.String("owner", owner))
	if err := r.Run(cfg.WebhookAddr()); err != nil {
		logg.Fatal("server failed", zap.Error(err))
	}
}
