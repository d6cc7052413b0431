package main

import (
	"context"
	"log"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	_ "github.com/statuswatch/backend/docs"
	"github.com/statuswatch/backend/internal/client"
	"github.com/statuswatch/backend/internal/config"
	"github.com/statuswatch/backend/internal/db"
	"github.com/statuswatch/backend/internal/handler"
	"github.com/statuswatch/backend/internal/service"
)

// @title statuswatch API
// @version 1.0
// @description System status monitoring backend: snapshot classification, status reports, trust voting, and Q&A.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment variables")
	}

	cfg := config.Load()
	ctx := context.Background()

	pg, err := db.NewPostgres(ctx, cfg.Postgres)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pg.Close()

	if err := pg.EnsureReportSchema(ctx); err != nil {
		log.Fatalf("failed to ensure report schema: %v", err)
	}

	authService, err := service.NewAuthService(pg, cfg.Auth)
	if err != nil {
		log.Fatalf("failed to init auth: %v", err)
	}
	if err := authService.EnsureSchema(ctx); err != nil {
		log.Fatalf("failed to ensure auth schema: %v", err)
	}
	if cfg.Auth.AdminUsername != "" || cfg.Auth.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
			log.Fatalf("failed to ensure admin account: %v", err)
		}
	}

	classifier := client.NewClassifierClient(cfg.Classifier)
	classifyService := service.NewClassifyService(classifier)

	genaiClient, err := client.NewGenAIClient(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to init genai client: %v", err)
	}

	feedbackService := service.NewFeedbackService(genaiClient)
	reportService := service.NewReportService(pg, feedbackService)
	chatService := service.NewChatService(genaiClient, pg)

	// Semantic retrieval needs the pgvector extension; without it chat
	// falls back to recent reports.
	if err := pg.EnsureEmbeddingSchema(ctx); err != nil {
		log.Printf("embedding schema unavailable, semantic search disabled: %v", err)
	} else {
		reportService.WithEmbeddings(pg, genaiClient)
		chatService.WithEmbeddings(genaiClient)
	}

	slackClient := client.NewSlackClient(cfg.Slack)
	if slackClient.IsConfigured() {
		reportService.WithNotifier(slackClient)
	}

	voteService := service.NewVoteService(pg)

	authHandler := handler.NewAuthHandler(authService)
	reportHandler := handler.NewReportHandler(classifyService, reportService)
	voteHandler := handler.NewVoteHandler(voteService)
	chatHandler := handler.NewChatHandler(chatService)

	router := gin.Default()

	if origins := strings.Split(cfg.Server.CORSOrigins, ","); cfg.Server.CORSOrigins != "" {
		router.Use(handler.CORSMiddleware(origins, true))
	}

	router.GET("/ping", handler.Ping)
	router.GET("/", handler.Root)
	router.GET("/openapi.json", handler.OpenAPIDoc)

	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.Refresh)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/config", authHandler.Config)
		auth.GET("/me", handler.AuthMiddleware(authService), authHandler.Me)
	}

	api := router.Group("/api/v1", handler.AuthMiddleware(authService))
	{
		api.POST("/classify", reportHandler.Classify)
		api.POST("/reports", reportHandler.Create)
		api.GET("/reports", reportHandler.List)
		api.GET("/reports/:id", reportHandler.Get)
		api.DELETE("/reports/:id", reportHandler.Delete)
		api.POST("/reports/:id/vote", voteHandler.Cast)
		api.POST("/chat", chatHandler.Ask)
	}

	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
