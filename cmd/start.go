package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"kawa-inventory/core/config"
	"kawa-inventory/core/database"
	"kawa-inventory/core/loader"
	"kawa-inventory/core/logger"
	"kawa-inventory/core/metrics"
	"kawa-inventory/core/middleware/auth"
	"kawa-inventory/core/middleware/rayid"

	"kawa-inventory/feature/integrity"
	"kawa-inventory/feature/inventory"
	"kawa-inventory/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "kawa-inventory/docs/swagger"
)

var migrateFlag bool

// @title Kawa Inventory API
// @version 1.0
// @description API for syncing and reading community members' FIO inventory.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Database connection failed", zap.Error(err))
		}
		logg.Info("Connected to database", zap.String("driver", cfg.Database.Driver))

		if migrateFlag || cfg.Server.Migrate {
			if err := db.AutoMigrate(models.All()...); err != nil {
				logg.Fatal("Migration failed", zap.Error(err))
			}
			logg.Info("Inventory tables migrated")
		}

		// 4. Initialize Storage
		client, err := newArchiveClient(cfg)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}

		// 5. Metrics
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		syncMetrics := metrics.NewSyncMetrics(reg)

		svc, err := newInventoryService(ctx, cfg, db, client, syncMetrics, logg)
		if err != nil {
			logg.Fatal("Failed to initialize inventory service", zap.Error(err))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()
		mgr.Register(integrity.NewFeature(client, cfg.Storage, cfg.Sync.ArchivePrefix, cfg.Sync.ArchiveSnapshots, logg, db))
		mgr.Register(inventory.NewFeature(svc))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Public endpoints
		app.Get("/swagger/*", swagger.HandlerDefault)
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{
			ApiKey:    cfg.Server.ApiKey,
			SkipPaths: []string{"/swagger", "/metrics"},
		}))
		if !cfg.Server.AuthEnabled() {
			logg.Warn("SERVER_API_KEY is empty; the API is unauthenticated")
		}

		// 5. Load Features
		loaded, err := mgr.LoadAll(app)
		if err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", loaded))

		// 6. Start Server
		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 7. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	startCmd.Flags().BoolVar(&migrateFlag, "migrate", false, "Run AutoMigrate for the inventory tables before serving")
	RootCmd.AddCommand(startCmd)
}
