package providers

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/sirupsen/logrus"

	"linkharvest/internal/config"
	"linkharvest/pkg/models"
	"linkharvest/pkg/utils"
)

// ClaudeProvider implements the oracle provider interface using Anthropic's Claude
type ClaudeProvider struct {
	client anthropic.Client
	config *config.Config
	logger *logrus.Logger
}

// NewClaudeProvider creates a new Claude provider instance
func NewClaudeProvider(cfg *config.Config) *ClaudeProvider {
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.LLM.APIKey),
	)

	return &ClaudeProvider{
		client: client,
		config: cfg,
		logger: utils.GetLogger(),
	}
}

// Classify sends the post text to Claude and parses the structured
// judgment out of the response.
func (cp *ClaudeProvider) Classify(ctx context.Context, postText string) (*models.Extraction, error) {
	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       cp.model(),
		MaxTokens:   1024,
		Temperature: anthropic.Float(float64(cp.config.LLM.Temperature)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: buildClassificationPrompt(postText)},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call Claude API: %w", err)
	}

	if len(response.Content) == 0 {
		return nil, fmt.Errorf("empty response from Claude")
	}

	var responseText string
	for _, content := range response.Content {
		textContent := content.AsText()
		responseText = textContent.Text
		break
	}
	if responseText == "" {
		return nil, fmt.Errorf("no text content in Claude response")
	}

	cp.logger.WithField("response_text", responseText).Debug("Claude response received")

	return parseExtraction(responseText)
}

// model resolves the configured model name, falling back to a sensible
// default when none is set or the generic default is in place.
func (cp *ClaudeProvider) model() anthropic.Model {
	// The "llama3" default belongs to the ollama provider.
	if cp.config.LLM.Model != "" && cp.config.LLM.Model != "llama3" {
		return anthropic.Model(cp.config.LLM.Model)
	}
	return anthropic.ModelClaude3_7SonnetLatest
}

// IsHealthy checks if the Claude provider is configured and available
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.LLM.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}

	_, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     cp.model(),
		MaxTokens: 10,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: "Hello"},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return fmt.Errorf("Claude API health check failed: %w", err)
	}

	return nil
}

// GetProviderName returns the name of the provider
func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}
