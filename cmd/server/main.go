package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mlodash/backend/internal/application/services"
	"github.com/mlodash/backend/internal/infrastructure/database"
	"github.com/mlodash/backend/internal/infrastructure/persistence"
	"github.com/mlodash/backend/internal/interfaces/middleware"
	"github.com/mlodash/backend/internal/interfaces/rest"
	"github.com/mlodash/backend/pkg/constants"
	"github.com/mlodash/backend/pkg/crypto"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Println("📁 Loaded .env")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}

	conn, err := database.GetInstance()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	db := conn.DB()

	cipher, err := crypto.NewFieldCipher(
		os.Getenv("FIELD_ENCRYPTION_SECRET"),
		os.Getenv("FIELD_ENCRYPTION_SALT"),
	)
	if err != nil {
		log.Fatalf("Failed to initialize field encryption: %v", err)
	}

	environment := os.Getenv("APP_ENV")
	if environment == "" {
		environment = constants.EnvProduction
	}

	clientRepo := persistence.NewClientRepository(db)
	workflowRepo := persistence.NewWorkflowRepository(db)
	notificationRepo := persistence.NewNotificationRepository(db)

	actionSvc := services.NewActionService(services.ActionServiceDeps{
		Clients:        clientRepo,
		Tasks:          persistence.NewTaskRepository(db),
		Documents:      persistence.NewDocumentRepository(db),
		Notes:          persistence.NewNoteRepository(db),
		Communications: persistence.NewCommunicationRepository(db),
		Templates:      persistence.NewTemplateRepository(db),
		Activities:     persistence.NewActivityRepository(db),
		Notifications:  notificationRepo,
		Users:          persistence.NewUserRepository(db),
		Decryptor:      cipher,
		HTTPClient:     &http.Client{},
		Environment:    environment,
	})

	executor := services.NewWorkflowExecutor(workflowRepo, actionSvc, actionSvc)
	scheduler := services.NewSchedulerService(workflowRepo, clientRepo, executor)
	go scheduler.Start()

	router := gin.Default()
	router.Use(middleware.Cors())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"server": "golang",
		})
	})

	requireAuth := middleware.RequireAuth(os.Getenv("API_JWT_SECRET"))

	workflowHandler := rest.NewWorkflowHandler(executor)
	notificationHandler := rest.NewNotificationHandler(notificationRepo)

	api := router.Group("/api")
	api.Use(requireAuth)
	{
		api.POST("/workflows/:workflowId/execute", workflowHandler.ExecuteWorkflow)
		api.POST("/events", workflowHandler.TriggerEvent)

		api.GET("/notifications", notificationHandler.GetNotifications)
		api.POST("/notifications/:id/read", notificationHandler.MarkAsRead)
	}

	server := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Printf("🚀 Server listening on port %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("⚠️ Forced shutdown: %v", err)
	}
	if err := conn.Close(); err != nil {
		log.Printf("⚠️ Failed to close database: %v", err)
	}
	log.Println("✅ Server stopped")
}
