package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"linkharvest/internal/browser"
	"linkharvest/internal/collector"
	"linkharvest/internal/config"
	"linkharvest/internal/llm"
	"linkharvest/internal/store"
	"linkharvest/pkg/models"
	"linkharvest/pkg/utils"
)

// classifyBatchSize is how many posts are classified between pacing
// pauses.
const classifyBatchSize = 5

// classifyPace spaces out batches of oracle calls.
var classifyPace = utils.PacePolicy{Min: 800 * time.Millisecond, Max: 1500 * time.Millisecond}

// Runner sequences a full harvest: authenticate, collect, classify,
// persist. Stages run strictly in that order, one post at a time.
type Runner struct {
	config *config.Config
	logger *logrus.Entry
	pace   utils.PacePolicy
}

// NewRunner creates a runner for one harvest run.
func NewRunner(cfg *config.Config) *Runner {
	return &Runner{
		config: cfg,
		logger: utils.GetLogger().WithField("run_id", utils.GenerateRunID()),
		pace:   classifyPace,
	}
}

// Run executes the harvest. The two failure classes that abort the run are
// authentication and the final table rewrite; both come back as
// *utils.RunError so the CLI can map them to exit codes.
func (r *Runner) Run(ctx context.Context) error {
	browserManager := browser.NewManager(r.config)
	if err := browserManager.Start(); err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	defer browserManager.Cleanup()

	interactive := !r.config.Browser.HeadlessMode
	if !browserManager.EnsureAuthenticated(ctx, interactive) {
		return utils.NewAuthError("not logged in: provide credentials via LINKEDIN_EMAIL/LINKEDIN_PASSWORD or create a session with the login command")
	}

	llmManager := llm.NewManager(r.config)
	if err := llmManager.Start(); err != nil {
		return err
	}
	defer llmManager.Stop()

	posts, err := collector.New(browserManager.Page(), r.config).
		Collect(ctx, r.config.Search.Query, r.config.Search.MaxPosts)
	if err != nil {
		return err
	}

	r.logger.WithField("raw_posts", len(posts)).Info("Collected raw posts, classifying")

	var kept []models.PostRecord
	for i, raw := range posts {
		// Fragments without text cannot be judged; skip them here rather
		// than in the collector, which counts them toward max_posts.
		if strings.TrimSpace(raw.PostText) == "" {
			continue
		}

		extraction := llmManager.Classify(ctx, raw.PostText)
		if extraction.Relevant() {
			kept = append(kept, buildRecord(raw, extraction))
		}

		if (i+1)%classifyBatchSize == 0 {
			r.pace.Pause()
		}
	}

	if len(kept) == 0 {
		r.logger.Info("No relevant posts found based on the criteria")
		return nil
	}

	added, err := store.MergeAndPersist(r.config.Storage.OutputPath, kept)
	if err != nil {
		return utils.NewPersistError(err)
	}

	r.logger.WithFields(logrus.Fields{
		"records":    len(kept),
		"rows_added": added,
		"output":     r.config.Storage.OutputPath,
	}).Info("Harvest complete")

	return nil
}

// RunLogin executes the standalone login flow: authenticate and persist
// the session state, nothing else.
func (r *Runner) RunLogin(ctx context.Context) error {
	browserManager := browser.NewManager(r.config)
	if err := browserManager.Start(); err != nil {
		return fmt.Errorf("failed to start browser session: %w", err)
	}
	defer browserManager.Cleanup()

	if err := browserManager.LoginOnly(ctx); err != nil {
		return utils.NewAuthError(err.Error())
	}
	return nil
}

// buildRecord folds one raw fragment and its classification into the unit
// of persistence.
func buildRecord(raw models.RawPost, extraction models.Extraction) models.PostRecord {
	return models.PostRecord{
		TimestampText:    raw.TimestampText,
		PostURL:          raw.PostURL,
		PosterName:       raw.PosterName,
		PosterProfileURL: raw.PosterProfileURL,
		PosterLinkedInID: utils.ExtractProfileID(raw.PosterProfileURL),
		RoleTitle:        extraction.RoleTitle,
		MinYears:         extraction.MinYears,
		MaxYears:         extraction.MaxYears,
		Skills:           extraction.Skills,
		Location:         extraction.Location,
		JobType:          extraction.JobType,
		Contact:          extraction.Contact,
		PostExcerpt:      utils.TruncateExcerpt(raw.PostText),
	}
}
