package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"linkharvest/internal/config"
	"linkharvest/pkg/models"
	"linkharvest/pkg/utils"
)

// maxAttempts bounds how many times the oracle is tried per post before
// the deterministic fallback takes over.
const maxAttempts = 2

// Manager manages the oracle provider and turns its fallible calls into a
// total classification function: Classify never fails, it degrades to the
// keyword fallback instead.
type Manager struct {
	config   *config.Config
	factory  *Factory
	provider Provider
	limiter  *rate.Limiter
	logger   *logrus.Logger
	mu       sync.RWMutex
	healthy  bool
}

// NewManager creates a new classification manager instance
func NewManager(cfg *config.Config) *Manager {
	return &Manager{
		config:  cfg,
		factory: NewFactory(cfg),
		limiter: rate.NewLimiter(rate.Limit(float64(cfg.LLM.RateLimit)/60.0), 5),
		logger:  utils.GetLogger(),
	}
}

// Start creates the configured provider and checks its health. An
// unhealthy or unconfigurable provider is not fatal; classification simply
// runs fallback-only.
func (m *Manager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.WithField("provider", m.config.LLM.Provider).Info("Starting classification manager")

	provider, err := m.factory.CreateProvider()
	if err != nil {
		return fmt.Errorf("failed to create LLM provider: %w", err)
	}
	m.provider = provider

	ctx, cancel := context.WithTimeout(context.Background(), m.config.LLM.Timeout)
	defer cancel()

	if err := m.provider.IsHealthy(ctx); err != nil {
		m.logger.WithError(err).Warn("Oracle health check failed, classification will use the keyword fallback only")
		m.healthy = false
	} else {
		m.healthy = true
		m.logger.WithField("provider", m.provider.GetProviderName()).Info("Classification manager started")
	}

	return nil
}

// Stop shuts down the manager
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.provider = nil
	m.healthy = false
}

// Classify produces a usable verdict for the post text. The oracle gets at
// most maxAttempts tries; any failure on the last one hands the text to
// the deterministic fallback.
func (m *Manager) Classify(ctx context.Context, postText string) models.Extraction {
	m.mu.RLock()
	provider := m.provider
	healthy := m.healthy
	m.mu.RUnlock()

	if provider != nil && healthy {
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			if err := m.limiter.Wait(ctx); err != nil {
				break
			}

			callCtx, cancel := context.WithTimeout(ctx, m.config.LLM.Timeout)
			extraction, err := provider.Classify(callCtx, postText)
			cancel()

			if err == nil {
				return *extraction
			}
			m.logger.WithFields(logrus.Fields{
				"attempt": attempt,
				"error":   err.Error(),
			}).Debug("Oracle classification attempt failed")
		}
	}

	return FallbackClassify(postText)
}

// IsHealthy reports whether the oracle provider is usable.
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && m.provider != nil
}

// GetProviderName returns the name of the current provider
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	return "none"
}
