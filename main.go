// File: inkwell/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"inkwell/config"
	"inkwell/cron"
	"inkwell/database"
	bookRepoPkg "inkwell/database/repository/book"
	devicetokenRepoPkg "inkwell/database/repository/devicetoken"
	quoteRepoPkg "inkwell/database/repository/quote"
	"inkwell/handlers"
	"inkwell/middleware"
	"inkwell/routes"
	"inkwell/services/book"
	"inkwell/services/notification"
	"inkwell/services/quote"
	"inkwell/services/ranking"
	"inkwell/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitRanking()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	quoteRepo := quoteRepoPkg.NewMongoQuoteRepo()
	bookRepo := bookRepoPkg.NewMongoBookRepo()
	deviceTokenRepo := devicetokenRepoPkg.NewMongoDeviceTokenRepo()

	// services.
	rankingStore := ranking.NewRedisRankingStore(utils.GetRankingClient())

	notificationService, err := notification.NewDefaultNotificationService(deviceTokenRepo, utils.FCMClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	quoteService := &quote.DefaultQuoteService{
		Repo:     quoteRepo,
		Ranking:  rankingStore,
		Notifier: notificationService,
	}
	bookService := &book.DefaultBookService{
		Repo:    bookRepo,
		Ranking: rankingStore,
	}

	// Background trending digest.
	cron.InitDigestWorker(notificationService, rankingStore, deviceTokenRepo)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		Quote:   handlers.NewQuoteHandler(quoteService),
		Book:    handlers.NewBookHandler(bookService),
		Device:  handlers.NewDeviceHandler(deviceTokenRepo),
		Ranking: handlers.NewRankingHandler(rankingStore),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
