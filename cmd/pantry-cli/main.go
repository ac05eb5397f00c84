// Package main provides a terminal runner for one-shot recipe generation.
// It talks to the same MySQL store and Ollama instance as the web app, so a
// run from here shows up in the web history too.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	recipesvc "github.com/Janay-Rawal/recipe-ai-agent/internal/application/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/domain/recipe"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/ai/ollama"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	gormrepo "github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/gorm"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/mysql"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/logger"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
)

// cliConfig holds command-line configuration
type cliConfig struct {
	ConfigPath    string
	Dietary       string
	TimeLimit     int
	Servings      int
	Cuisine       string
	NumOptions    int
	ExcludeNonVeg bool
	ExcludeEggs   bool
	ExcludeDairy  bool
	Model         string
	Timeout       time.Duration
	Verbose       bool
}

func main() {
	os.Exit(run(parseFlags()))
}

// parseFlags parses command-line flags
func parseFlags() cliConfig {
	defaults := recipe.DefaultGenerationParams()
	cli := cliConfig{}

	flag.StringVar(&cli.ConfigPath, "config", "", "Configuration file path")
	flag.StringVar(&cli.Dietary, "dietary", defaults.Dietary, "Dietary preference: none, veg, eggs-ok, vegan, non-veg")
	flag.IntVar(&cli.TimeLimit, "time-limit", defaults.TimeLimit, "Cooking time limit in minutes")
	flag.IntVar(&cli.Servings, "servings", defaults.Servings, "Number of servings")
	flag.StringVar(&cli.Cuisine, "cuisine", defaults.Cuisine, "Cuisine style")
	flag.IntVar(&cli.NumOptions, "options", defaults.NumOptions, "Number of recipe options (1-3)")
	flag.BoolVar(&cli.ExcludeNonVeg, "exclude-non-veg", false, "Exclude non-veg ingredients")
	flag.BoolVar(&cli.ExcludeEggs, "exclude-eggs", false, "Exclude eggs")
	flag.BoolVar(&cli.ExcludeDairy, "exclude-dairy", false, "Exclude dairy")
	flag.StringVar(&cli.Model, "model", "", "Override the configured Ollama model")
	flag.DurationVar(&cli.Timeout, "timeout", 3*time.Minute, "Overall run timeout")
	flag.BoolVar(&cli.Verbose, "verbose", false, "Log at the configured level instead of errors only")

	flag.Parse()

	return cli
}

func run(cli cliConfig) int {
	cfg, err := config.Load(cli.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return exitCodeFailure
	}
	if cli.Model != "" {
		cfg.AI.Model = cli.Model
	}

	// Keep stdout clean for the recipe text unless asked otherwise.
	logLevel := "error"
	if cli.Verbose {
		logLevel = cfg.App.LogLevel
	}
	log, err := logger.New(logger.Config{
		Level:       logLevel,
		Format:      "console",
		Development: cfg.App.Debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		return exitCodeFailure
	}
	defer log.Sync()

	cm, err := mysql.NewConnectionManager(cfg, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to MySQL: %v\n", err)
		return exitCodeFailure
	}
	defer cm.Close()

	if cfg.Database.AutoMigrate {
		if err := cm.Migrate(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to migrate schema: %v\n", err)
			return exitCodeFailure
		}
	}

	db := cm.GetDB()
	service := recipesvc.NewRecipeService(
		gormrepo.NewIngredientRepository(db),
		gormrepo.NewHistoryRepository(db),
		ollama.NewClient(cfg.AI, log),
		cfg,
		log,
	)

	params := recipe.GenerationParams{
		Dietary:       cli.Dietary,
		TimeLimit:     cli.TimeLimit,
		Servings:      cli.Servings,
		Cuisine:       cli.Cuisine,
		NumOptions:    cli.NumOptions,
		ExcludeNonVeg: cli.ExcludeNonVeg,
		ExcludeEggs:   cli.ExcludeEggs,
		ExcludeDairy:  cli.ExcludeDairy,
	}
	params.ApplyDietaryDefaults()

	ctx, cancel := context.WithTimeout(context.Background(), cli.Timeout)
	defer cancel()

	result, err := service.Generate(ctx, params)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		return exitCodeFailure
	}

	fmt.Println("Pantry (expiry-ranked):")
	fmt.Println(result.Snapshot)
	fmt.Println()
	fmt.Println("=== Recipes ===")
	fmt.Println(result.Markdown)
	fmt.Println()
	fmt.Printf("Saved as history entry #%d (run %s).\n", result.HistoryID, result.RunID)

	switch {
	case result.Extraction.Found():
		fmt.Printf("Usage block: found (%d recipes). Apply it from the web UI to deduct the pantry.\n",
			len(result.Extraction.Recipes))
	case result.Extraction.Status == recipe.ExtractionInvalidJSON:
		fmt.Println("Usage block: present but not valid JSON, nothing to deduct.")
	default:
		fmt.Println("Usage block: none found, nothing to deduct.")
	}

	return exitCodeSuccess
}
