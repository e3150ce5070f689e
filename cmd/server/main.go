package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/dileepadns7-pixel/animal-disease-ai/internal/catalog"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/classifier"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/config"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/diagnosis"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/handler"
	"github.com/dileepadns7-pixel/animal-disease-ai/internal/repository"
)

func main() {
	// Initialize logger
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Starting Animal Disease Diagnosis Service...")

	// Load configuration
	cfg, err := config.LoadConfig("configs/config.yml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	// Load disease catalog (built-in data unless a file is configured)
	cat := catalog.Default()
	if cfg.Catalog.Path != "" {
		cat, err = catalog.LoadFile(cfg.Catalog.Path)
		if err != nil {
			logger.Fatal("Failed to load disease catalog", zap.Error(err))
		}
		logger.Info("Disease catalog loaded from file",
			zap.String("path", cfg.Catalog.Path),
			zap.Int("diseases", cat.Len()))
	}

	// Initialize classifier client
	clf := classifier.NewClient(cfg.Classifier.URL, time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second)

	// Initialize repository
	// Create data directory if not exists
	os.MkdirAll("./data", 0755)

	repo, err := repository.NewHistoryRepository(cfg.Database.Path, logger)
	if err != nil {
		logger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	// Initialize diagnosis service
	svc := diagnosis.NewService(clf, repo, cat, diagnosis.Config{
		MinConfidence:  cfg.Pipeline.MinConfidence,
		SpeciesPenalty: cfg.Pipeline.SpeciesPenalty,
		TopN:           cfg.Pipeline.TopN,
	}, logger)

	// Initialize HTTP handler
	apiHandler := handler.NewHandler(svc, repo, cat, clf, logger)

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	// Register routes
	apiHandler.RegisterRoutes(router)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	logger.Info("Server starting", zap.String("address", serverAddr))

	// Graceful shutdown
	srv := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("Animal Disease Diagnosis Service is running",
		zap.String("port", cfg.Server.Port),
		zap.String("classifier", cfg.Classifier.URL),
		zap.Int("diseases", cat.Len()))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
