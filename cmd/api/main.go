package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"envlogs/docs"
	"envlogs/internal/cache"
	"envlogs/internal/config"
	"envlogs/internal/database"
	"envlogs/internal/database/migration"
	handlers "envlogs/internal/http/handler"
	"envlogs/internal/http/middleware"
	"envlogs/internal/otel"
	"envlogs/internal/repository/postgres"
	"envlogs/internal/service"
	"envlogs/internal/slack"
	"envlogs/internal/storage"
	"envlogs/internal/zeronet"
)

const (
	partnerAPITimeout = 30 * time.Second
	webhookTimeout    = 10 * time.Second
)

// @title Envlogs API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	ctx := context.Background()

	// Initialize tracing (degrades to noop when the exporter is unreachable)
	shutdownTracing, err := otel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(ctx)

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, time.UTC, cfg.Database.Host); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Initialize reusable S3-compatible object storage client (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Optional Redis search cache; nil when REDIS_URL is unset
	searchCache, err := cache.New(cfg.Redis)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	if searchCache != nil {
		defer searchCache.Close()
	}

	// Regional partner API clients and the Slack webhook notifier
	dir := zeronet.NewDirectory(cfg.Regions, partnerAPITimeout)
	notifier := slack.NewWebhookNotifier(cfg.Slack.WebhookURL, webhookTimeout)

	// Initialize repositories and services
	exportRepo := postgres.NewExportPostgres(db)
	lookupSvc := service.NewLookupService(dir, searchCache, notifier, cfg.Slack.Channel)
	exportSvc := service.NewExportService(dir, objStore, exportRepo, notifier, cfg.Slack.Channel)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	// Register global middleware
	app.Use(otelfiber.Middleware())
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())

	// Request counter + /metrics endpoint
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register prometheus metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected services
	handlers.RegisterRoutes(app, db, lookupSvc, exportSvc, middleware.SlackAuth(cfg.Slack.SigningSecret))

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
