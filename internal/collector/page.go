package collector

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod"
	"github.com/sirupsen/logrus"

	"linkharvest/internal/config"
	"linkharvest/pkg/utils"
)

const searchURLTmpl = "https://www.linkedin.com/search/results/content/?keywords=%s&origin=GLOBAL_SEARCH_HEADER"

// feedPage is the slice of browsing-engine behavior the collection loop
// depends on, kept narrow so the loop can run against a fake in tests.
type feedPage interface {
	// OpenSearch navigates to the search results surface for the query.
	OpenSearch(ctx context.Context, query string) error
	// WaitForPosts waits for at least one post-shaped element to appear.
	// Absence is tolerated, so the result only says whether one showed up.
	WaitForPosts(timeout time.Duration) bool
	// VisiblePosts returns the outer HTML of the currently visible post
	// elements, in DOM enumeration order.
	VisiblePosts() []string
	// Scroll advances the feed by one programmatic scroll step.
	Scroll()
	// ContentHeight probes the page's content height. ok is false when the
	// probe itself failed.
	ContentHeight() (height int, ok bool)
}

// rodFeedPage adapts a rod page to the feedPage interface.
type rodFeedPage struct {
	page   *rod.Page
	config *config.Config
	logger *logrus.Logger
}

func newRodFeedPage(page *rod.Page, cfg *config.Config) *rodFeedPage {
	return &rodFeedPage{
		page:   page,
		config: cfg,
		logger: utils.GetLogger(),
	}
}

func (p *rodFeedPage) OpenSearch(ctx context.Context, query string) error {
	target := fmt.Sprintf(searchURLTmpl, url.QueryEscape(query))

	navCtx, cancel := context.WithTimeout(ctx, p.config.Browser.SearchTimeout)
	defer cancel()

	err := rod.Try(func() {
		p.page.Context(navCtx).MustNavigate(target).MustWaitLoad()
	})
	if err != nil {
		return fmt.Errorf("failed to open search results for %q: %w", query, err)
	}
	searchSettlePace.Pause()

	// The Posts tab narrows results to the right content type; its absence
	// is not an error, the global results still contain posts.
	err = rod.Try(func() {
		p.page.Timeout(5 * time.Second).MustElementR("a", "^Posts$").MustClick()
	})
	if err != nil {
		p.logger.Debug("Posts tab not found, staying on global results")
	} else {
		tabSettlePace.Pause()
	}

	return nil
}

func (p *rodFeedPage) WaitForPosts(timeout time.Duration) bool {
	err := rod.Try(func() {
		p.page.Timeout(timeout).MustElement("article")
	})
	return err == nil
}

func (p *rodFeedPage) VisiblePosts() []string {
	elements, err := p.page.Elements("article")
	if err != nil {
		return nil
	}

	htmls := make([]string, 0, len(elements))
	for _, el := range elements {
		html, err := el.HTML()
		if err != nil {
			// The fragment still counts; its fields just come up empty.
			htmls = append(htmls, "")
			continue
		}
		htmls = append(htmls, html)
	}
	return htmls
}

func (p *rodFeedPage) Scroll() {
	if err := p.page.Mouse.Scroll(0, 2000, 1); err != nil {
		p.logger.WithError(err).Debug("Scroll failed")
	}
}

func (p *rodFeedPage) ContentHeight() (int, bool) {
	res, err := p.page.Eval(`() => document.body.scrollHeight`)
	if err != nil {
		return 0, false
	}
	return res.Value.Int(), true
}
