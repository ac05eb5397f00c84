// Package main seeds the pantry with sample data for demos and local
// development. Rerunning it resets quantities and expiry dates in place.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	gormrepo "github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/gorm"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/mysql"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "Configuration file path")
	timeout := flag.Duration("timeout", 30*time.Second, "Seed timeout")
	flag.Parse()

	if err := run(*configPath, *timeout); err != nil {
		fmt.Fprintf(os.Stderr, "Seed failed: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, timeout time.Duration) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.App.LogLevel,
		Format:      "console",
		Development: cfg.App.Debug,
	})
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync()

	cm, err := mysql.NewConnectionManager(cfg, log)
	if err != nil {
		return fmt.Errorf("connect to MySQL: %w", err)
	}
	defer cm.Close()

	if err := cm.Migrate(); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	count, err := gormrepo.SeedPantry(ctx, cm.GetDB(), time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %d pantry items into %s.\n", count, cfg.Database.Database)
	return nil
}
