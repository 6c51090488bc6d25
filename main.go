package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dockplan/config"
	"dockplan/cron"
	"dockplan/database"
	definitionRepoPkg "dockplan/database/repository/definition"
	scheduleRepoPkg "dockplan/database/repository/schedule"
	userRepoPkg "dockplan/database/repository/user"
	"dockplan/handlers"
	"dockplan/middleware"
	"dockplan/routes"
	"dockplan/services/scheduling"
	"dockplan/services/tasks"
	"dockplan/services/user"
	"dockplan/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	definitionRepo := definitionRepoPkg.NewMongoDefinitionRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()

	// services.
	queueClient := tasks.NewClient()
	defer queueClient.Close()

	schedulingService := &scheduling.DefaultSchedulingService{
		Definitions: definitionRepo,
		Schedules:   scheduleRepo,
		Queue:       queueClient,
	}

	userService := &user.DefaultUserService{
		Repo:        userRepo,
		Definitions: definitionRepo,
		Schedules:   scheduleRepo,
		Tokens:      user.NewRedisTokenCache(),
	}

	userHandler := &handlers.UserHandler{UserService: userService}
	scheduleHandler := &handlers.ScheduleHandler{Service: schedulingService}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		// User endpoints.
		RegisterUserHandler:        userHandler.RegisterUserHandler,
		AuthenticateUserHandler:    userHandler.AuthenticateUserHandler,
		RevokeUserAuthTokenHandler: userHandler.RevokeUserAuthTokenHandler,
		GetUserByIDHandler:         userHandler.GetUserByIDHandler,
		DeleteUserHandler:          userHandler.DeleteUserHandler,

		// Specific-date planning endpoints.
		UploadSpecific:          scheduleHandler.UploadSpecificHandler,
		SpecificDefinitions:     scheduleHandler.SpecificDefinitionsHandler,
		AddSpecific:             scheduleHandler.AddSpecificHandler,
		UpdateSpecific:          scheduleHandler.UpdateSpecificHandler,
		DeleteSpecific:          scheduleHandler.DeleteSpecificHandler,
		SpecificBoard:           scheduleHandler.SpecificBoardHandler,
		SaveSpecificAssignments: scheduleHandler.SaveSpecificAssignmentsHandler,
		ExportSpecific:          scheduleHandler.ExportSpecificHandler,

		// Recurring planning endpoints.
		UploadRecurring:          scheduleHandler.UploadRecurringHandler,
		MergeRecurringUpload:     scheduleHandler.MergeRecurringUploadHandler,
		RecurringDefinitions:     scheduleHandler.RecurringDefinitionsHandler,
		Patterns:                 scheduleHandler.PatternsHandler,
		AddRecurring:             scheduleHandler.AddRecurringHandler,
		UpdateRecurring:          scheduleHandler.UpdateRecurringHandler,
		DeleteRecurring:          scheduleHandler.DeleteRecurringHandler,
		RecurringBoard:           scheduleHandler.RecurringBoardHandler,
		SaveRecurringAssignments: scheduleHandler.SaveRecurringAssignmentsHandler,
		ExportRecurring:          scheduleHandler.ExportRecurringHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker that retries failed board purges.
	cron.InitPurgeWorker(schedulingService)

	utils.StartHealthMonitor([]*redis.Client{utils.GetAuthCacheClient()}, database.MongoClient)

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
