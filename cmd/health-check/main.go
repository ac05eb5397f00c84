// Package main provides a standalone health check command.
// It is used for Docker health checks, monitoring scripts, and debugging.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/persistence/mysql"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/healthcheck"
	"github.com/Janay-Rawal/recipe-ai-agent/pkg/logger"
)

const (
	exitCodeSuccess = 0
	exitCodeFailure = 1
	exitCodeError   = 2
)

// checkConfig holds command-line configuration
type checkConfig struct {
	URL          string
	Timeout      time.Duration
	Verbose      bool
	OutputFormat string
	RetryCount   int
	RetryDelay   time.Duration
	ConfigPath   string
	LocalCheck   bool
}

func main() {
	cfg := parseFlags()

	if cfg.LocalCheck {
		os.Exit(runLocalHealthCheck(cfg))
	}
	os.Exit(runRemoteHealthCheck(cfg))
}

// parseFlags parses command-line flags
func parseFlags() checkConfig {
	cfg := checkConfig{}

	flag.StringVar(&cfg.URL, "url", "", "Health check endpoint URL (e.g., http://localhost:8080/health)")
	flag.DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Request timeout")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output")
	flag.StringVar(&cfg.OutputFormat, "format", "text", "Output format: text, json, compact")
	flag.IntVar(&cfg.RetryCount, "retry", 0, "Number of retries on failure")
	flag.DurationVar(&cfg.RetryDelay, "retry-delay", 1*time.Second, "Delay between retries")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Configuration file path")
	flag.BoolVar(&cfg.LocalCheck, "local", false, "Probe MySQL and Ollama directly instead of the HTTP endpoint")

	flag.Parse()

	if cfg.URL == "" && !cfg.LocalCheck {
		cfg.URL = detectHealthCheckURL()
	}

	return cfg
}

// detectHealthCheckURL attempts to detect the health check URL
func detectHealthCheckURL() string {
	if url := os.Getenv("HEALTH_CHECK_URL"); url != "" {
		return url
	}
	return "http://localhost:8080/health"
}

// runRemoteHealthCheck performs a remote health check via HTTP
func runRemoteHealthCheck(cfg checkConfig) int {
	client := &http.Client{Timeout: cfg.Timeout}

	var lastError error
	for attempt := 0; attempt <= cfg.RetryCount; attempt++ {
		if attempt > 0 {
			if cfg.Verbose {
				fmt.Printf("Retrying in %v... (attempt %d/%d)\n", cfg.RetryDelay, attempt, cfg.RetryCount)
			}
			time.Sleep(cfg.RetryDelay)
		}

		resp, err := client.Get(cfg.URL)
		if err != nil {
			lastError = err
			if cfg.Verbose {
				fmt.Printf("Request failed: %v\n", err)
			}
			continue
		}

		return handleResponse(resp, cfg)
	}

	fmt.Printf("Health check failed after %d attempts: %v\n", cfg.RetryCount+1, lastError)
	return exitCodeError
}

// runLocalHealthCheck probes the dependencies directly from configuration,
// without needing the web server to be up.
func runLocalHealthCheck(cfg checkConfig) int {
	appCfg, err := config.Load(cfg.ConfigPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		return exitCodeError
	}

	log, err := logger.New(logger.Config{Level: "error", Format: "console"})
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		return exitCodeError
	}

	hc := healthcheck.New(appCfg.App.Version, log)

	cm, err := mysql.NewConnectionManager(appCfg, log)
	if err != nil {
		// Report the broken database through the same response shape.
		message := err.Error()
		hc.Register("database", healthcheck.NewCustomChecker("database", func(ctx context.Context) (healthcheck.Status, string, interface{}) {
			return healthcheck.StatusUnhealthy, message, nil
		}))
	} else {
		defer cm.Close()
		hc.Register("database", healthcheck.NewDatabaseChecker(cm.GetDB()))
	}

	hc.Register("ollama", healthcheck.NewExternalServiceChecker("ollama", appCfg.AI.BaseURL+"/api/tags", cfg.Timeout))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	return outputResult(hc.Check(ctx), cfg)
}

// handleResponse handles the HTTP response. The body is decoded as a
// generic map because the response encodes durations as milliseconds.
func handleResponse(resp *http.Response, cfg checkConfig) int {
	defer resp.Body.Close()

	var response map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		fmt.Printf("Failed to decode response: %v\n", err)
		return exitCodeError
	}

	return outputResult(response, cfg)
}

// outputResult prints the result in the configured format and maps the
// aggregate status onto an exit code.
func outputResult(result interface{}, cfg checkConfig) int {
	switch cfg.OutputFormat {
	case "json":
		data, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(data))
	case "compact":
		data, _ := json.Marshal(result)
		fmt.Println(string(data))
	default:
		outputText(result, cfg.Verbose)
	}

	if extractStatus(result) == healthcheck.StatusHealthy {
		return exitCodeSuccess
	}
	return exitCodeFailure
}

// extractStatus extracts the aggregate status from the result
func extractStatus(result interface{}) healthcheck.Status {
	switch r := result.(type) {
	case healthcheck.Response:
		return r.Status
	case map[string]interface{}:
		if status, ok := r["status"].(string); ok {
			return healthcheck.Status(status)
		}
	}
	return healthcheck.StatusUnhealthy
}

// outputText outputs the result in text format
func outputText(result interface{}, verbose bool) {
	switch r := result.(type) {
	case healthcheck.Response:
		fmt.Printf("Status: %s\n", r.Status)
		fmt.Printf("Version: %s\n", r.Version)
		fmt.Printf("Timestamp: %s\n", r.Timestamp.Format(time.RFC3339))
		fmt.Printf("Duration: %dms\n", r.TotalDuration.Milliseconds())

		if verbose && len(r.Checks) > 0 {
			fmt.Println("\nChecks:")
			for _, check := range r.Checks {
				fmt.Printf("  %s: %s", check.Name, check.Status)
				if check.Message != "" {
					fmt.Printf(" (%s)", check.Message)
				}
				fmt.Printf(" [%dms]\n", check.Duration.Milliseconds())
			}
		}

	case map[string]interface{}:
		if status, ok := r["status"].(string); ok {
			fmt.Printf("Status: %s\n", status)
		}
		if verbose {
			data, _ := json.MarshalIndent(r, "", "  ")
			fmt.Println(string(data))
		}

	default:
		fmt.Printf("Unknown result type: %T\n", result)
	}
}
