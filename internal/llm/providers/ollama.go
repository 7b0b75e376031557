package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"linkharvest/internal/config"
	"linkharvest/pkg/models"
	"linkharvest/pkg/utils"
)

// OllamaProvider implements the oracle provider interface against an
// Ollama-compatible generate endpoint.
type OllamaProvider struct {
	baseURL     string
	model       string
	temperature float32
	client      *http.Client
	logger      *logrus.Logger
}

// generateRequest is the completion request the endpoint accepts.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Options generateOptions `json:"options"`
	Stream  bool            `json:"stream"`
}

type generateOptions struct {
	Temperature float32 `json:"temperature"`
}

// generateResponse is the subset of the endpoint's reply the provider
// reads.
type generateResponse struct {
	Response string `json:"response"`
}

// NewOllamaProvider creates a new Ollama provider instance
func NewOllamaProvider(cfg *config.Config) *OllamaProvider {
	return &OllamaProvider{
		baseURL:     strings.TrimRight(cfg.LLM.BaseURL, "/"),
		model:       cfg.LLM.Model,
		temperature: cfg.LLM.Temperature,
		client:      &http.Client{},
		logger:      utils.GetLogger(),
	}
}

// Classify sends the post text to the generate endpoint and parses the
// structured judgment out of the response.
func (op *OllamaProvider) Classify(ctx context.Context, postText string) (*models.Extraction, error) {
	payload, err := json.Marshal(generateRequest{
		Model:   op.model,
		Prompt:  buildClassificationPrompt(postText),
		Options: generateOptions{Temperature: op.temperature},
		Stream:  false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, op.baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := op.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("oracle request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("oracle returned status %d", resp.StatusCode)
	}

	var body generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode oracle response: %w", err)
	}

	op.logger.WithField("response_text", body.Response).Debug("Oracle response received")

	return parseExtraction(body.Response)
}

// IsHealthy checks if the endpoint is reachable
func (op *OllamaProvider) IsHealthy(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, op.baseURL+"/api/tags", nil)
	if err != nil {
		return err
	}

	resp, err := op.client.Do(req)
	if err != nil {
		return fmt.Errorf("ollama endpoint unreachable at %s: %w", op.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ollama endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

// GetProviderName returns the name of the provider
func (op *OllamaProvider) GetProviderName() string {
	return "ollama"
}
