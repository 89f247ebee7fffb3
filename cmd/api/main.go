package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"quiz-pulse/internal/adapter"
	"quiz-pulse/internal/adapter/trivia"
	"quiz-pulse/internal/cache"
	"quiz-pulse/internal/config"
	"quiz-pulse/internal/database"
	"quiz-pulse/internal/handler"
	"quiz-pulse/internal/logger"
	"quiz-pulse/internal/middleware"
	"quiz-pulse/internal/repository"
	"quiz-pulse/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Connect to MongoDB
	db, err := database.NewMongoDatabase(cfg.Mongo)
	if err != nil {
		appLogger.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}
	appLogger.Info("Successfully connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	// Initialize repositories
	userRepository := repository.NewMongoUserRepository(db)
	quizResponseRepository := repository.NewMongoQuizResponseRepository(db)

	// Initialize Redis client and cache adapter
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
	}
	appLogger.Info("Successfully connected to Redis")
	cacheAdapter := adapter.NewRedisCacheAdapter(redisClient)

	// Initialize the question bank client
	questionSource := trivia.NewOpenTDBClient(cfg.Trivia.BaseURL)

	// Initialize services
	quizService := service.NewQuizService(userRepository, quizResponseRepository)
	triviaService := service.NewTriviaService(questionSource, cacheAdapter, cfg)

	// Initialize handler
	quizHandler := handler.NewQuizHandler(quizService, triviaService)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	// Health check
	app.Get("/", quizHandler.Health)

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Post("/submit-email", quizHandler.SubmitEmail)
	apiGroup.Post("/submit-quiz", quizHandler.SubmitQuiz)
	apiGroup.Get("/questions", quizHandler.GetQuestions)
	apiGroup.Get("/quiz/:email", quizHandler.GetQuizResponses)
	apiGroup.Get("/quiz/:email/latest", quizHandler.GetLatestQuizResponse)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	if err := database.Disconnect(ctx, db); err != nil {
		appLogger.Error("Failed to disconnect from MongoDB", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
