package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"civicreport-be/config"
	"civicreport-be/controllers"
	"civicreport-be/middlewares"
	"civicreport-be/models"
	"civicreport-be/notify"
	"civicreport-be/realtime"
	"civicreport-be/routes"
)

func newLogger(env string) zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339
	l := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if env == "development" {
		l = l.Level(zerolog.DebugLevel)
	} else {
		l = l.Level(zerolog.InfoLevel)
	}
	return l
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()
	logger := newLogger(cfg.Env)

	db := config.ConnectDB()
	if db == nil {
		logger.Fatal().Msg("failed to connect to MongoDB")
	}
	logger.Info().Msg("MongoDB connection established")

	if err := models.EnsureUserIndexes(config.GetCollection("users")); err != nil {
		logger.Warn().Err(err).Msg("user index creation")
	}
	if err := models.EnsureIssueIndexes(config.GetCollection("issues")); err != nil {
		logger.Warn().Err(err).Msg("issue index creation")
	}
	if err := models.EnsureNotificationIndexes(config.GetCollection("notifications")); err != nil {
		logger.Warn().Err(err).Msg("notification index creation")
	}

	rateLimited := cfg.RedisAddr != ""
	if rateLimited {
		config.ConnectRedis(cfg.RedisAddr, cfg.RedisPassword)
	}

	hub := realtime.NewHub(logger)

	smtp := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.EmailFrom)
	mailer := notify.NewEmailDispatcher(smtp, 4, 256, logger)
	defer mailer.Close()

	// With a peer service owning the socket sessions, user notifications
	// are relayed over HTTP; otherwise they go straight to the hub.
	var sink notify.NotificationSink
	if cfg.UserServiceURL != "" {
		sink = notify.NewRemoteSink(cfg.UserServiceURL)
		logger.Info().Str("url", cfg.UserServiceURL).Msg("relaying user notifications to peer service")
	} else {
		sink = &notify.DirectSink{Hub: hub}
	}

	ledger := notify.NewLedger(config.GetCollection("notifications"))
	controllers.Init(hub, mailer, sink, ledger, logger)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.CORSOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.AuthRoutes(r)
	routes.IssueRoutes(r, cfg.ReportLimit, rateLimited)
	routes.StaffRoutes(r)
	routes.AdminRoutes(r)
	routes.NotificationRoutes(r)
	routes.InternalRoutes(r)

	r.GET("/ws", hub.HandleWS)
	r.GET("/health", controllers.HealthCheck)

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
