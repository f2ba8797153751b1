package main

import (
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
	"github.com/robfig/cron"

	config "github.com/fofostudio/marketing-api/configs"
	"github.com/fofostudio/marketing-api/internal/api/handlers"
	"github.com/fofostudio/marketing-api/internal/api/middleware"
	"github.com/fofostudio/marketing-api/internal/gdrive"
	"github.com/fofostudio/marketing-api/internal/gsheets"
	job "github.com/fofostudio/marketing-api/internal/jobs"
	"github.com/fofostudio/marketing-api/internal/queue"
	"github.com/fofostudio/marketing-api/internal/repository"
	"github.com/fofostudio/marketing-api/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	client := asynq.NewClient(redisConn)
	defer client.Close()

	app := fiber.New(fiber.Config{
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		BodyLimit:    25 * 1024 * 1024, // base64 uploads
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	sheetsClient := gsheets.NewClient(cfg.SpreadsheetID)
	driveClient := gdrive.NewClient()

	calendarRepo := repository.NewCalendarRepository(sheetsClient, cfg.DefaultSheetName)

	authService := service.NewAuthService(*cfg)
	assetsService := service.NewAssetsService(*cfg, driveClient, calendarRepo)
	publishService := service.NewPublishService(*cfg)
	adsService := service.NewAdsService(*cfg)
	imageService := service.NewImageService(*cfg, driveClient, calendarRepo)

	tokenMiddleware := middleware.NewTokenMiddleware()

	health := handlers.NewHealthHandler(*cfg)
	app.Get("/health", health.Health)

	auth := handlers.NewAuthHandler(authService)
	app.Get("/auth/google/url", auth.AuthURL)
	app.Post("/auth/google/callback", auth.Callback)
	app.Post("/auth/google/refresh", auth.Refresh)

	api := app.Group("/api")
	api.Use(tokenMiddleware.RequireToken())

	calendar := handlers.NewCalendarHandler(calendarRepo)
	api.Get("/calendar/month", calendar.ListMonth)
	api.Get("/posts", calendar.GetPost)
	api.Put("/posts/update", calendar.UpdatePost)
	api.Post("/posts/date", calendar.UpdateDate)
	api.Post("/posts/image", calendar.UpdateImage)
	api.Post("/posts/from-asset", calendar.CreateFromAsset)
	api.Delete("/posts/remove", calendar.RemovePost)

	assets := handlers.NewAssetsHandler(assetsService)
	api.Get("/assets", assets.ListAssets)
	api.Post("/assets/upload", assets.UploadImage)

	image := handlers.NewImageHandler(client)
	api.Post("/posts/regenerate-image", image.RegenerateImage)

	publish := handlers.NewPublishHandler(publishService)
	api.Post("/publish", publish.PublishNow)

	ads := handlers.NewAdsHandler(adsService)
	api.Get("/ads/overview", ads.Overview)
	api.Get("/ads/campaigns", ads.ListCampaigns)
	api.Get("/ads/campaigns/:id", ads.CampaignDetail)
	api.Get("/ads/recommendations", ads.Recommendations)
	api.Post("/ads/recommendations/execute", ads.ExecuteRecommendation)
	api.Post("/ads/pause-all", ads.PauseAllCampaigns)

	// cron jobs
	reminderJob := job.NewReminderJob(*cfg, calendarRepo)

	//queue
	queueW := queue.NewQueue(imageService)

	c := cron.New()
	c.AddFunc("@every 01h00m00s", reminderJob.CheckUpcoming)
	c.Start()

	go func() {
		server := asynq.NewServer(redisConn, asynq.Config{
			Concurrency: 5,
		})

		mux := asynq.NewServeMux()
		mux.HandleFunc(queue.TaskTypeRegenerateImage, queueW.HandleRegenerateImageTask)

		log.Println("Starting the Asynq server...")
		if err := server.Run(mux); err != nil {
			log.Fatalf("Could not start Asynq server: %v", err)
		}
	}()

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Printf("Server is running on http://localhost:%s", cfg.Port)

	gracefulShutdown(app)
}

func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	log.Println("Server shutdown complete.")
}
