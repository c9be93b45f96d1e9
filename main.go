package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shelfspace/config"
	"shelfspace/cron"
	"shelfspace/database"
	occupancyRepoPkg "shelfspace/database/repository/occupancy"
	reservationRepoPkg "shelfspace/database/repository/reservation"
	shelfRepoPkg "shelfspace/database/repository/shelf"
	threadRepoPkg "shelfspace/database/repository/thread"
	"shelfspace/handlers"
	"shelfspace/middleware"
	"shelfspace/routes"
	"shelfspace/services/messaging"
	"shelfspace/services/notification"
	"shelfspace/services/rental"
	"shelfspace/services/storage"
	"shelfspace/utils"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.FirebaseInit()

	storageService, err := storage.NewCloudinaryStorageService()
	if err != nil {
		// Receipts can't be stored but the rest of the lifecycle still
		// works; the upload endpoint reports unavailable.
		logger.Sugar().Warnf("main: cloudinary storage unavailable: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	occupancyRepo := occupancyRepoPkg.NewMongoOccupancyRepo()
	shelfRepo := shelfRepoPkg.NewMongoShelfRepo()
	threadRepo := threadRepoPkg.NewMongoThreadRepo()

	// services.
	threadService := messaging.NewDefaultThreadService(threadRepo)
	notificationService := notification.NewFCMNotificationService()

	rentalService := &rental.DefaultRentalService{
		Repo:      reservationRepo,
		Occupancy: occupancyRepo,
		Shelves:   shelfRepo,
		Threads:   threadService,
		Notifier:  notificationService,
		Logger:    logger,
	}

	// Background expiry sweep.
	cron.InitExpiryWorker(rentalService)

	// Assemble the handler bundle and register routes.
	handlerBundle := handlers.NewHandlerBundle(rentalService, occupancyRepo, storageService)
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

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}
	logger.Info("Server exited cleanly")
}
