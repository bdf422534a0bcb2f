// @title CBT Portal API
// @version 1.0
// @description Backend server of the school Computer-Based Testing portal.
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url http://www.swagger.io/support
// @contact.email support@swagger.io

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization

package main

import (
	"cbt_portal_backend/internal/app"
	"cbt_portal_backend/internal/config"
	"cbt_portal_backend/pkg/configwatcher"
	"cbt_portal_backend/pkg/logger"
	"context"
	"flag"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const configDir = "configs"

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migrations and exit")
	migrate := flag.Bool("migrate", false, "force database migrations on startup, even in release mode")
	flag.Parse()

	// .env is optional, real environment variables win
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file loaded")
	}

	cfg, err := config.LoadConfig(configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		logger.Log.Info("Database migration finished, exiting")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := configwatcher.WatchConfig(ctx, configDir, application.ApplyConfig); err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()

	application.Run()
}
