package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/menotliam/Chatbot-AI-4Enterprise/assistant"
	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/router"
	"github.com/menotliam/Chatbot-AI-4Enterprise/config"
	"github.com/menotliam/Chatbot-AI-4Enterprise/db"
	"github.com/menotliam/Chatbot-AI-4Enterprise/enhancer"
	"github.com/menotliam/Chatbot-AI-4Enterprise/eventbus"
	"github.com/menotliam/Chatbot-AI-4Enterprise/internal/logger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/messenger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/repositories"
	"github.com/menotliam/Chatbot-AI-4Enterprise/services"
)

// @title           Chatbot AI 4Enterprise API
// @version         1.0
// @description     Conversational assistant backend with session history, token accounting and Messenger relay
// @BasePath        /api
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mongo, err := db.Connect(ctx, cfg)
	if err != nil {
		logger.Log.Errorf("failed to initialize MongoDB: %v", err)
		return
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := mongo.Close(closeCtx); err != nil {
			logger.Log.Errorf("failed to close MongoDB connection: %v", err)
		}
	}()

	sessions := repositories.NewChatSessionRepository(mongo.Database())
	usage := repositories.NewTokenUsageRepository(mongo.Database())

	var events eventbus.Publisher
	if cfg.KafkaBootstrapServers != "" {
		bus, err := eventbus.NewKafkaEventBus(cfg.KafkaBootstrapServers)
		if err != nil {
			logger.Log.Errorf("failed to initialize Kafka event bus: %v", err)
			return
		}
		defer bus.Close()
		events = bus
	}

	gateway := assistant.NewGateway(cfg, sessions)
	rewriter := enhancer.New(cfg)
	chatSvc := services.NewChatService(sessions, usage, gateway, rewriter, events, cfg.Enhancer.Model)
	sender := messenger.NewClient(cfg.Messenger.PageAccessTokens)

	r := router.New(router.Deps{
		Mongo:       mongo,
		Sessions:    sessions,
		Usage:       usage,
		ChatService: chatSvc,
		Messenger:   sender,
		Config:      cfg,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: cors.Default().Handler(r),
	}

	go func() {
		logger.Log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Errorf("server error: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorf("graceful shutdown failed: %v", err)
	}
}
