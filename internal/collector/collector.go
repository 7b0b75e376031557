package collector

import (
	"context"
	"time"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"

	"linkharvest/internal/config"
	"linkharvest/pkg/models"
	"linkharvest/pkg/utils"
)

// stagnationLimit is the number of consecutive scroll attempts without
// content-height growth after which the feed is treated as exhausted.
const stagnationLimit = 5

// Pacing between scroll attempts and after search navigation. These delays
// rate-shape the traversal against anti-automation detection.
var (
	scrollPace       = utils.PacePolicy{Min: 800 * time.Millisecond, Max: 1600 * time.Millisecond}
	searchSettlePace = utils.PacePolicy{Min: 1200 * time.Millisecond, Max: 2200 * time.Millisecond}
	tabSettlePace    = utils.PacePolicy{Min: 1000 * time.Millisecond, Max: 1800 * time.Millisecond}
)

// Collector drives the incremental scroll-based traversal of the search
// results feed and extracts deduplicated raw post fragments.
type Collector struct {
	page         feedPage
	pace         utils.PacePolicy
	selectorWait time.Duration
	logger       *logrus.Logger
}

// New creates a collector over a live browser page.
func New(page *rod.Page, cfg *config.Config) *Collector {
	return &Collector{
		page:         newRodFeedPage(page, cfg),
		pace:         scrollPace,
		selectorWait: cfg.Browser.SelectorTimeout,
		logger:       utils.GetLogger(),
	}
}

// Collect navigates to the search results for query and harvests up to
// maxPosts novel fragments. Collection ends early when the feed stops
// growing for stagnationLimit consecutive scrolls.
func (c *Collector) Collect(ctx context.Context, query string, maxPosts int) ([]models.RawPost, error) {
	if err := c.page.OpenSearch(ctx, query); err != nil {
		return nil, err
	}

	var collected []models.RawPost
	seen := make(map[string]struct{})

	lastHeight := 0
	stagnantScrolls := 0

	for len(collected) < maxPosts && stagnantScrolls < stagnationLimit {
		if err := ctx.Err(); err != nil {
			return collected, err
		}

		c.page.WaitForPosts(c.selectorWait)

		for _, html := range c.page.VisiblePosts() {
			if len(collected) >= maxPosts {
				break
			}
			post := extractPostFields(html)
			fingerprint := utils.Fingerprint(post.FieldMap())
			if _, dup := seen[fingerprint]; dup {
				continue
			}
			seen[fingerprint] = struct{}{}
			collected = append(collected, post)
		}

		c.page.Scroll()
		c.pace.Pause()

		// Stagnation heuristic: an unchanged content height means the feed
		// is exhausted or stopped loading. A failed probe counts as neither.
		if height, ok := c.page.ContentHeight(); ok {
			if height == lastHeight {
				stagnantScrolls++
			} else {
				stagnantScrolls = 0
				lastHeight = height
			}
		}
	}

	c.logger.WithFields(logrus.Fields{
		"query":     query,
		"collected": len(collected),
	}).Info("Post collection finished")

	return collected, nil
}
