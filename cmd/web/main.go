// Package main provides the entry point for the pantry web application
package main

import (
	"context"
	"fmt"
	"time"

	pantrysvc "github.com/Janay-Rawal/recipe-ai-agent/internal/application/pantry"
	recipesvc "github.com/Janay-Rawal/recipe-ai-agent/internal/application/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/ai/ollama"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/http/webserver"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/monitoring"
	gormrepo "github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/gorm"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/mysql"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/healthcheck"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/logger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	app := fx.New(
		fx.NopLogger,

		// Configuration
		fx.Provide(func() (*config.Config, error) {
			return config.Load("")
		}),

		// Logger
		fx.Provide(func(cfg *config.Config) (*zap.Logger, error) {
			return logger.New(logger.Config{
				Level:       cfg.App.LogLevel,
				Format:      cfg.App.LogFormat,
				Development: cfg.App.Debug,
			})
		}),

		// Metrics
		fx.Provide(monitoring.NewMetricsCollector),

		// Database
		fx.Provide(mysql.NewConnectionManager),
		fx.Provide(func(cm *mysql.ConnectionManager) *gorm.DB {
			return cm.GetDB()
		}),
		fx.Provide(gormrepo.NewIngredientRepository),
		fx.Provide(gormrepo.NewHistoryRepository),

		// AI backend
		fx.Provide(func(cfg *config.Config, log *zap.Logger, metrics *monitoring.MetricsCollector) outbound.AIService {
			client := ollama.NewClient(cfg.AI, log)
			client.SetMetrics(metrics)
			return client
		}),

		// Application services
		fx.Provide(pantrysvc.NewPantryService),
		fx.Provide(recipesvc.NewRecipeService),

		// Health check
		fx.Provide(newHealthCheck),

		// Web server
		fx.Provide(webserver.NewWebServer),

		// Lifecycle
		fx.Invoke(registerLifecycleHooks),
	)

	app.Run()
}

// newHealthCheck wires the database and Ollama probes into one registry.
func newHealthCheck(
	cfg *config.Config,
	log *zap.Logger,
	cm *mysql.ConnectionManager,
	aiService outbound.AIService,
) *healthcheck.HealthCheck {
	hc := healthcheck.New(cfg.App.Version, log)

	hc.Register("database", healthcheck.NewDatabaseChecker(cm.GetDB()))
	hc.Register("ollama", healthcheck.NewCustomChecker("ollama", func(ctx context.Context) (healthcheck.Status, string, interface{}) {
		if err := aiService.HealthCheck(ctx); err != nil {
			return healthcheck.StatusUnhealthy, err.Error(), nil
		}
		return healthcheck.StatusHealthy, "", map[string]interface{}{
			"base_url": cfg.AI.BaseURL,
			"model":    cfg.AI.Model,
		}
	}))

	return hc
}

func registerLifecycleHooks(
	lc fx.Lifecycle,
	cfg *config.Config,
	log *zap.Logger,
	cm *mysql.ConnectionManager,
	metrics *monitoring.MetricsCollector,
	server *webserver.WebServer,
) {
	gaugeCtx, stopGauges := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Database.AutoMigrate {
				if err := cm.Migrate(); err != nil {
					return err
				}
			}

			go reportPoolStats(gaugeCtx, cm, metrics)

			log.Info("Starting pantry web application",
				zap.Int("port", cfg.Server.Port),
				zap.String("environment", cfg.App.Environment),
				zap.String("model", cfg.AI.Model),
			)
			fmt.Printf("Pantry agent listening on http://localhost:%d\n", cfg.Server.Port)

			go func() {
				if err := server.Start(); err != nil {
					log.Fatal("Web server failed", zap.Error(err))
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopGauges()
			if err := server.Shutdown(ctx); err != nil {
				log.Error("Web server shutdown failed", zap.Error(err))
			}
			return cm.Close()
		},
	})
}

// reportPoolStats feeds the connection pool gauges until the context ends.
func reportPoolStats(ctx context.Context, cm *mysql.ConnectionManager, metrics *monitoring.MetricsCollector) {
	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stats := cm.Stats()
			metrics.UpdateDBConnections(stats.InUse, stats.Idle)
		}
	}
}
