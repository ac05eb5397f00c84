package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Janay-Rawal/recipe-ai-agent/internal/infrastructure/config"
	"github.com/Janay-Rawal/recipe-ai-agent/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

// ClientTestSuite exercises the Ollama client against a stub HTTP server
type ClientTestSuite struct {
	suite.Suite
	ctx context.Context
}

func (suite *ClientTestSuite) SetupSuite() {
	suite.ctx = context.Background()
}

func (suite *ClientTestSuite) newClient(baseURL string) *Client {
	return NewClient(config.AIConfig{
		BaseURL: baseURL,
		Model:   "llama3.1:latest",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func (suite *ClientTestSuite) TestChat() {
	suite.Run("ValidResponse_ShouldReturnTrimmedContent", func() {
		// Arrange
		var captured ChatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(suite.T(), "/api/chat", r.URL.Path)
			require.Equal(suite.T(), http.MethodPost, r.Method)
			require.NoError(suite.T(), json.NewDecoder(r.Body).Decode(&captured))

			json.NewEncoder(w).Encode(ChatResponse{
				Model:   captured.Model,
				Message: ChatMessage{Role: "assistant", Content: "  ### Recipe 1: Tomato Rice\n"},
				Done:    true,
			})
		}))
		defer server.Close()

		// Act
		content, err := suite.newClient(server.URL).Chat(suite.ctx, "system text", "user text", outbound.AIOptions{
			Temperature: 0.4,
			NumPredict:  900,
		})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "### Recipe 1: Tomato Rice", content)

		assert.Equal(suite.T(), "llama3.1:latest", captured.Model)
		assert.False(suite.T(), captured.Stream)
		require.Len(suite.T(), captured.Messages, 2)
		assert.Equal(suite.T(), "system", captured.Messages[0].Role)
		assert.Equal(suite.T(), "system text", captured.Messages[0].Content)
		assert.Equal(suite.T(), "user", captured.Messages[1].Role)
		assert.Equal(suite.T(), 0.4, captured.Options["temperature"])
		assert.Equal(suite.T(), float64(900), captured.Options["num_predict"])
	})

	suite.Run("ModelOption_ShouldOverrideDefault", func() {
		// Arrange
		var captured ChatRequest
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(suite.T(), json.NewDecoder(r.Body).Decode(&captured))
			json.NewEncoder(w).Encode(ChatResponse{
				Message: ChatMessage{Role: "assistant", Content: "ok"},
				Done:    true,
			})
		}))
		defer server.Close()

		// Act
		_, err := suite.newClient(server.URL).Chat(suite.ctx, "s", "u", outbound.AIOptions{Model: "mistral:latest"})

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "mistral:latest", captured.Model)
	})

	suite.Run("MissingModel_ShouldHintAtPull", func() {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
		}))
		defer server.Close()

		// Act
		_, err := suite.newClient(server.URL).Chat(suite.ctx, "s", "u", outbound.AIOptions{})

		// Assert
		require.Error(suite.T(), err)
		assert.Contains(suite.T(), err.Error(), "ollama pull")
		assert.Contains(suite.T(), err.Error(), "llama3.1:latest")
	})

	suite.Run("ServerError_ShouldIncludeStatusAndBody", func() {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "out of memory", http.StatusInternalServerError)
		}))
		defer server.Close()

		// Act
		_, err := suite.newClient(server.URL).Chat(suite.ctx, "s", "u", outbound.AIOptions{})

		// Assert
		require.Error(suite.T(), err)
		assert.Contains(suite.T(), err.Error(), "500")
		assert.Contains(suite.T(), err.Error(), "out of memory")
	})

	suite.Run("EmptyContent_ShouldFail", func() {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(ChatResponse{
				Message: ChatMessage{Role: "assistant", Content: "   "},
				Done:    true,
			})
		}))
		defer server.Close()

		// Act
		_, err := suite.newClient(server.URL).Chat(suite.ctx, "s", "u", outbound.AIOptions{})

		// Assert
		require.Error(suite.T(), err)
		assert.Contains(suite.T(), err.Error(), "empty response")
	})

	suite.Run("UnreachableServer_ShouldHintAtServe", func() {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		baseURL := server.URL
		server.Close()

		// Act
		_, err := suite.newClient(baseURL).Chat(suite.ctx, "s", "u", outbound.AIOptions{})

		// Assert
		require.Error(suite.T(), err)
		assert.Contains(suite.T(), err.Error(), "Is Ollama running?")
	})
}

func (suite *ClientTestSuite) TestHealthCheck() {
	suite.Run("Reachable_ShouldPass", func() {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(suite.T(), "/api/tags", r.URL.Path)
			w.Write([]byte(`{"models":[]}`))
		}))
		defer server.Close()

		// Act & Assert
		assert.NoError(suite.T(), suite.newClient(server.URL).HealthCheck(suite.ctx))
	})

	suite.Run("ErrorStatus_ShouldFail", func() {
		// Arrange
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		// Act & Assert
		assert.Error(suite.T(), suite.newClient(server.URL).HealthCheck(suite.ctx))
	})
}

// TestClientTestSuite runs the test suite
func TestClientTestSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}
