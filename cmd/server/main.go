package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron"

	config "pagepilot/configs"
	"pagepilot/internal/api/handlers"
	"pagepilot/internal/api/middleware"
	"pagepilot/internal/cache"
	job "pagepilot/internal/jobs"
	"pagepilot/internal/queue"
	"pagepilot/internal/repository"
	"pagepilot/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	db, err := sql.Open("postgres", cfg.PostgresURI)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer closeDB(db)

	if err := db.Ping(); err != nil {
		log.Fatalf("Database is unreachable: %v", err)
	}

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	sentimentCache := cache.NewSentimentCache(cfg.RedisURI)
	defer sentimentCache.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		BodyLimit:    100 * 1024 * 1024, // 100 MB
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	userRepo := repository.NewUserRepository(db)
	scheduledPostRepo := repository.NewScheduledPostRepository(db)
	pageProfileRepo := repository.NewPageProfileRepository(db)
	mediaAssetRepo := repository.NewMediaAssetRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	strategyRepo := repository.NewStrategyRepository(db)
	replyLogRepo := repository.NewReplyLogRepository(db)
	apiKeyRepo := repository.NewApiKeyRepository(db)

	authService := service.NewAuthService(*cfg, userRepo)
	userService := service.NewUserService(userRepo)
	facebookService := service.NewFacebookService(*cfg, pageProfileRepo)
	llmService := service.NewLLMService(*cfg)
	mediaService := service.NewMediaService(*cfg, mediaAssetRepo)
	schedulingService := service.NewSchedulingService(scheduledPostRepo, pageProfileRepo, facebookService, mediaService)
	autoReplyService := service.NewAutoReplyService(settingsRepo, strategyRepo, replyLogRepo, pageProfileRepo, facebookService, llmService, sentimentCache)
	commentService := service.NewCommentService(pageProfileRepo, strategyRepo, facebookService, llmService, sentimentCache)
	dashboardService := service.NewDashboardService(pageProfileRepo, strategyRepo, facebookService, llmService, commentService)
	settingsService := service.NewSettingsService(settingsRepo, pageProfileRepo)
	strategyService := service.NewStrategyService(strategyRepo)
	apiKeyService := service.NewApiKeyService(apiKeyRepo)

	authMiddleware := middleware.NewAuthMiddleware(*cfg, apiKeyService)

	auth := handlers.NewAuthHandler(*cfg, authService)
	app.Get("/login", auth.Login)
	app.Get("/login/callback", auth.LoginCallbackHandler)
	app.Get("/logout", auth.Logout)

	api := app.Group("/api")
	api.Use(authMiddleware.AuthMiddleware())

	user := handlers.NewUserHandler(userService)
	api.Get("/user/info", user.GetUserInfo)
	api.Post("/user/remove", user.RemoveUser)

	page := handlers.NewPageHandler(facebookService, settingsService)
	api.Get("/page/connect", page.Connect)
	api.Get("/page/connect/callback", page.ConnectCallback)
	api.Get("/page", page.GetPage)
	api.Post("/page/update", page.UpdatePage)

	settings := handlers.NewSettingsHandler(settingsService)
	api.Get("/settings/info", settings.GetSettingsInfo)
	api.Post("/settings/update", settings.UpdateSettings)

	strategies := handlers.NewStrategyHandler(strategyService)
	api.Post("/strategies/create", strategies.CreateStrategy)
	api.Get("/strategies", strategies.ListStrategies)
	api.Post("/strategies/activate", strategies.ActivateStrategy)
	api.Post("/strategies/remove", strategies.RemoveStrategy)

	apiKeys := handlers.NewApiKeyHandler(apiKeyService)
	api.Post("/api_key/new", apiKeys.CreateApiKey)
	api.Get("/api_key/list", apiKeys.ListKeys)
	api.Post("/api_key/remove", apiKeys.RemoveAPIKey)

	post := handlers.NewPostHandler(schedulingService)
	api.Post("/posts/create", post.CreatePost)
	api.Get("/posts", post.ListPosts)
	api.Post("/posts/cancel", post.CancelPost)

	comments := handlers.NewCommentsHandler(commentService)
	api.Get("/comments/monitor", comments.MonitorComments)
	api.Get("/comments", comments.ListComments)
	api.Post("/comments/reply", comments.ReplyToComment)
	api.Post("/comments/quick_replies", comments.QuickReplies)

	dashboard := handlers.NewDashboardHandler(dashboardService)
	api.Get("/dashboard", dashboard.Overview)
	api.Get("/dashboard/suggestions", dashboard.Suggestions)

	// cron jobs
	dispatchJob := job.NewDispatchJob(schedulingService)
	commentPollJob := job.NewCommentPollJob(pageProfileRepo, replyLogRepo, facebookService, client)

	//queue
	queueW := queue.NewQueue(autoReplyService)

	c := cron.New()
	c.AddFunc("@every 00h01m00s", dispatchJob.DispatchDuePosts)
	c.AddFunc("@every 00h05m00s", commentPollJob.PollComments)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 10,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeEvaluateComment, queueW.HandleEvaluateCommentTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	closeDB(db)
	log.Println("Server shutdown complete.")
}
