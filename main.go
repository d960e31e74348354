package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tablemate/config"
	"tablemate/cron"
	"tablemate/database"
	bookingRepoPkg "tablemate/database/repository/booking"
	profileRepoPkg "tablemate/database/repository/profile"
	restaurantRepoPkg "tablemate/database/repository/restaurant"
	"tablemate/handlers"
	"tablemate/routes"
	"tablemate/services/catalog"
	"tablemate/services/dialogue"
	"tablemate/services/interpreter"
	"tablemate/services/recommend"
	"tablemate/services/tasks"
	"tablemate/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	zap.ReplaceGlobals(logger)

	database.InitDB()
	utils.InitSessionCache()

	// repositories.
	restRepo := restaurantRepoPkg.NewMongoRestaurantRepo()
	profRepo := profileRepoPkg.NewMongoProfileRepo()
	bookRepo := bookingRepoPkg.NewMongoBookingRepo()

	// catalog: seed on first run, then serve from Mongo.
	if err := restRepo.EnsureSeeded(catalog.Seed()); err != nil {
		logger.Sugar().Fatalf("main: failed to seed restaurant catalog: %v", err)
	}
	restaurants, err := restRepo.GetAll()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to load restaurant catalog: %v", err)
	}
	cat := catalog.New(restaurants)

	// interpreter: Gemini when a key is configured, keyword engine
	// otherwise. The keyword engine also backs every Gemini failure.
	var interp interpreter.Interpreter = interpreter.NewKeywordInterpreter()
	if config.AppConfig.GeminiAPIKey != "" {
		gem, gerr := interpreter.NewGeminiInterpreter(config.AppConfig.GeminiAPIKey)
		if gerr != nil {
			logger.Warn("gemini interpreter unavailable, using keyword engine", zap.Error(gerr))
		} else {
			interp = gem
		}
	}

	// dialogue services.
	pipeline := dialogue.NewPipeline(interp, cat, logger)
	policy := dialogue.NewPolicy(cat)
	engine := recommend.NewEngine(cat)

	reminderOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
	reminders := tasks.NewReminderClient(reminderOpts)
	defer reminders.Close()
	cron.InitReminderWorker()

	sessionTTL := time.Duration(config.AppConfig.SessionTTLMin) * time.Minute
	if sessionTTL <= 0 {
		sessionTTL = 30 * time.Minute
	}
	sessions := dialogue.NewSessionStore(utils.GetSessionCacheClient(), sessionTTL)

	ctrl := dialogue.NewController(pipeline, policy, engine, cat, profRepo, bookRepo, reminders, logger)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())

	handlerBundle := &handlers.HandlerBundle{
		ChatHandler:      handlers.ChatHandler(ctrl, sessions, profRepo),
		ResetChatHandler: handlers.ResetChatHandler(sessions),

		ListRestaurantsHandler: handlers.ListRestaurantsHandler(cat),
		CatalogOptionsHandler:  handlers.CatalogOptionsHandler(cat),

		GetProfileHandler:   handlers.GetProfileHandler(profRepo),
		ListBookingsHandler: handlers.ListBookingsHandler(bookRepo),
	}
	routes.RegisterRoutes(router, handlerBundle)

	utils.StartHealthMonitor([]*redis.Client{utils.GetSessionCacheClient()}, database.MongoClient)

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
