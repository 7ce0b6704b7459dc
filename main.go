package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"citylinker/config"
	"citylinker/database"
	categoryRepoPkg "citylinker/database/repository/category"
	providerRepoPkg "citylinker/database/repository/provider"
	reviewRepoPkg "citylinker/database/repository/review"
	userRepoPkg "citylinker/database/repository/user"
	"citylinker/handlers"
	"citylinker/middleware"
	"citylinker/routes"
	"citylinker/services/category"
	"citylinker/services/provider"
	"citylinker/services/review"
	"citylinker/services/storage"
	"citylinker/services/user"
	"citylinker/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	localStorage, err := storage.NewLocalStorageService(config.AppConfig.UploadDir)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize local storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	categoryRepo := categoryRepoPkg.NewMongoCategoryRepo()
	providerRepo := providerRepoPkg.NewMongoProviderRepo()
	reviewRepo := reviewRepoPkg.NewMongoReviewRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	categoryService := &category.DefaultCategoryService{Repo: categoryRepo}
	providerService := &provider.DefaultProviderService{
		Repo:    providerRepo,
		Storage: localStorage,
	}
	reviewService := &review.DefaultReviewService{
		Repo:         reviewRepo,
		ProviderRepo: providerRepo,
	}
	userService := &user.DefaultUserService{
		Repo:         userRepo,
		ProviderRepo: providerRepo,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		UserRepo:   userRepo,
		Categories: handlers.NewCategoryHandler(categoryService),
		Providers:  handlers.NewProviderHandler(providerService),
		Reviews:    handlers.NewReviewHandler(reviewService),
		Users:      handlers.NewUserHandler(userService),
		Admin:      handlers.NewAdminHandler(userService),
		Auth:       handlers.NewAuthHandler(userService),
		Storage:    handlers.NewStorageHandler(localStorage),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle, localStorage.BaseDir())

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
