// Package ollama provides Ollama integration for local AI inference.
// It implements the AIService interface over the /api/chat endpoint.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"go.uber.org/zap"
)

// MetricsRecorder receives per-request outcome and latency observations.
type MetricsRecorder interface {
	AIRequest(model, status string, duration time.Duration)
}

// Client implements the AIService interface using the Ollama API
type Client struct {
	baseURL string
	model   string
	client  *http.Client
	logger  *zap.Logger
	metrics MetricsRecorder
}

// NewClient creates a new Ollama client
func NewClient(cfg config.AIConfig, logger *zap.Logger) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	logger.Info("Ollama client initialized",
		zap.String("base_url", baseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", timeout))

	return &Client{
		baseURL: baseURL,
		model:   cfg.Model,
		client: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("ollama-client"),
	}
}

// SetMetrics attaches an optional metrics recorder. A nil recorder leaves
// instrumentation off.
func (c *Client) SetMetrics(m MetricsRecorder) {
	c.metrics = m
}

func (c *Client) recordRequest(model, status string, started time.Time) {
	if c.metrics != nil {
		c.metrics.AIRequest(model, status, time.Since(started))
	}
}

// Ollama API structures
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Model    string                 `json:"model"`
	Messages []ChatMessage          `json:"messages"`
	Stream   bool                   `json:"stream"`
	Options  map[string]interface{} `json:"options,omitempty"`
}

type ChatResponse struct {
	Model              string      `json:"model"`
	Message            ChatMessage `json:"message"`
	Done               bool        `json:"done"`
	TotalDuration      int64       `json:"total_duration,omitempty"`
	LoadDuration       int64       `json:"load_duration,omitempty"`
	PromptEvalCount    int         `json:"prompt_eval_count,omitempty"`
	PromptEvalDuration int64       `json:"prompt_eval_duration,omitempty"`
	EvalCount          int         `json:"eval_count,omitempty"`
	EvalDuration       int64       `json:"eval_duration,omitempty"`
}

// HealthCheck verifies the Ollama service is reachable
func (c *Client) HealthCheck(ctx context.Context) error {
	endpoint := c.baseURL + "/api/tags"

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create health check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama health check failed with status %d", resp.StatusCode)
	}

	c.logger.Debug("Ollama health check passed")
	return nil
}

// Chat sends one system+user prompt pair and returns the model's raw
// markdown reply. Failures carry a remediation hint so callers can show
// the user what to fix.
func (c *Client) Chat(ctx context.Context, systemPrompt, userPrompt string, opts outbound.AIOptions) (string, error) {
	endpoint := c.baseURL + "/api/chat"

	model := opts.Model
	if model == "" {
		model = c.model
	}

	options := map[string]interface{}{
		"temperature": opts.Temperature,
	}
	if opts.NumPredict > 0 {
		options["num_predict"] = opts.NumPredict
	}

	reqBody := ChatRequest{
		Model: model,
		Messages: []ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream:  false,
		Options: options,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	started := time.Now()
	status := "error"
	defer func() { c.recordRequest(model, status, started) }()

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if isConnectionError(err) {
			return "", fmt.Errorf("could not reach Ollama at %s. Is Ollama running? (`ollama serve`): %w", c.baseURL, err)
		}
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("model %q not found. Try `ollama pull %s` or set OLLAMA_MODEL", model, model)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	c.logger.Debug("Ollama chat completion successful",
		zap.String("model", chatResp.Model),
		zap.Duration("elapsed", time.Since(started)),
		zap.Int("eval_count", chatResp.EvalCount))

	content := strings.TrimSpace(chatResp.Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty response from Ollama")
	}

	status = "success"
	return content, nil
}

// isConnectionError reports whether the error means Ollama is not
// listening at all, as opposed to answering badly.
func isConnectionError(err error) bool {
	var netErr *net.OpError
	if errors.As(err, &netErr) {
		return true
	}
	return strings.Contains(err.Error(), "connection refused")
}
