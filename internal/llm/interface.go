package llm

import (
	"context"

	"linkharvest/pkg/models"
)

// Provider defines the interface for classification oracle providers
type Provider interface {
	// Classify sends post text to the oracle and parses the structured
	// judgment out of its response.
	Classify(ctx context.Context, postText string) (*models.Extraction, error)

	// IsHealthy checks if the provider is configured and reachable
	IsHealthy(ctx context.Context) error

	// GetProviderName returns the name of the provider
	GetProviderName() string
}
