package router

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/handlers"
	"github.com/menotliam/Chatbot-AI-4Enterprise/cmd/api/middleware"
	"github.com/menotliam/Chatbot-AI-4Enterprise/config"
	"github.com/menotliam/Chatbot-AI-4Enterprise/db"
	_ "github.com/menotliam/Chatbot-AI-4Enterprise/docs"
	"github.com/menotliam/Chatbot-AI-4Enterprise/messenger"
	"github.com/menotliam/Chatbot-AI-4Enterprise/repositories"
	"github.com/menotliam/Chatbot-AI-4Enterprise/services"
)

// Deps are the constructed collaborators the router wires into handlers.
// Everything is injected; the router creates nothing with its own
// lifecycle.
type Deps struct {
	Mongo       *db.Mongo
	Sessions    *repositories.ChatSessionRepository
	Usage       *repositories.TokenUsageRepository
	ChatService *services.ChatService
	Messenger   *messenger.Client
	Config      config.AppConfig
}

func New(deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogging())

	r.LoadHTMLGlob(filepath.Join(config.GetBasePath(), "templates", "*.html"))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		if err := deps.Mongo.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "mongo": "down", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Messenger webhook (verification + delivery) stays at the root path,
	// as registered with the platform.
	r.GET("/webhook", handlers.VerifyWebhookHandler(deps.Config.FBVerifyToken))
	r.POST("/webhook", handlers.HandleWebhookHandler(deps.Config.FBAppSecret, deps.ChatService, deps.Messenger))

	api := r.Group("/api")
	{
		chatbot := api.Group("/chatbot")
		{
			chatbot.GET("/", handlers.ChatPageHandler())
			chatbot.POST("/interact", handlers.ChatInteractHandler(deps.ChatService))
		}

		history := api.Group("/chat-history")
		{
			history.POST("/:session_id", handlers.AddMessageHandler(deps.Sessions))
			history.GET("/:session_id", handlers.GetHistoryHandler(deps.Sessions))
			history.GET("/user/:user_id", handlers.ListUserSessionsHandler(deps.Sessions))
			history.DELETE("/:session_id", handlers.DeleteSessionHandler(deps.Sessions))
			history.PATCH("/:session_id/metadata", handlers.UpdateMetadataHandler(deps.Sessions))
		}

		tracker := api.Group("/token-tracker")
		{
			tracker.POST("/usage", handlers.UpdateUsageHandler(deps.Usage))
			tracker.GET("/usage/:user_id", handlers.ListUserUsageHandler(deps.Usage))
			tracker.GET("/usage/:user_id/:session_id", handlers.GetUsageHandler(deps.Usage))
		}
	}

	return r
}
