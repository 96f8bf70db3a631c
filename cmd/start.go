package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"estate-manager/core/config"
	"estate-manager/core/loader"
	"estate-manager/core/logger"
	"estate-manager/core/middleware/auth"
	"estate-manager/core/middleware/rayid"
	"estate-manager/core/tempfile"

	"estate-manager/feature/audit"
	"estate-manager/feature/listing"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "estate-manager/docs/swagger"
)

// @title Estate Manager API
// @version 1.0
// @description API for managing property listings and their media.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

const auditCacheTTL = 5 * time.Minute

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the estate manager server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		if !cfg.Server.IsValidEnvironment() {
			logg.Warn("Unknown environment, treating as development", zap.String("environment", cfg.Server.Environment))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svcs, err := bootstrap(ctx, cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize services", zap.Error(err))
		}
		defer svcs.close()

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		mgr := loader.NewManager(logg)
		mgr.Register(listing.NewFeature(svcs.listings, svcs.uploadDir, cfg.Server.IsProduction()))
		mgr.Register(audit.NewFeature(svcs.newAuditService(cfg, logg)))

		// RayID first so every log line below can be traced.
		app.Use(rayid.New())

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

		app.Get("/swagger/*", swagger.HandlerDefault)

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		if cfg.Upload.SweepSchedule != "" {
			maxAge := cfg.Upload.MaxAge()
			sweeper, err := tempfile.NewSweeper(cfg.Upload.SweepSchedule, svcs.uploadDir, maxAge, logg)
			if err != nil {
				logg.Fatal("Failed to schedule temp sweep", zap.Error(err))
			}
			sweeper.Start()
			defer sweeper.Stop()
		}

		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
			return app.Listen(":" + cfg.Server.Port)
		})
		g.Go(func() error {
			<-gctx.Done()
			logg.Info("Shutting down server...")
			return app.ShutdownWithTimeout(30 * time.Second)
		})

		if err := g.Wait(); err != nil {
			logg.Error("Server stopped with error", zap.Error(err))
		}
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
