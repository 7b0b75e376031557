package collector

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"linkharvest/pkg/models"
	"linkharvest/pkg/utils"
)

// Selector cascades per field. The feed's DOM drifts between UI variants,
// so each field tries a prioritized list of candidates; the first matching
// non-empty result wins and a full miss leaves the field empty.
var (
	postTextSelectors = []string{
		"div[dir='ltr']",
		"span[dir='ltr']",
		"p",
	}
	posterLinkSelectors = []string{
		"a[href*='/in/']",
		"a[href*='linkedin.com/in/']",
	}
	posterNameSelectors = []string{
		"a[href*='/in/']",
		"span.feed-shared-actor__name",
	}
	postURLSelectors = []string{
		"a[href*='/posts/']",
		"a[href*='/activity/']",
		"a[href*='/feed/update/urn:']",
	}
	timestampSelectors = []string{
		"time",
		"span.update-components-actor__sub-description",
	}
)

// extractPostFields runs the selector cascades over one post element's
// HTML. Unparseable HTML yields an all-empty fragment, not an error.
func extractPostFields(html string) models.RawPost {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return models.RawPost{}
	}

	post := models.RawPost{
		PostText:         firstText(doc, postTextSelectors),
		PosterName:       firstText(doc, posterNameSelectors),
		PosterProfileURL: utils.EnsureFullURL(firstHref(doc, posterLinkSelectors)),
		PostURL:          utils.EnsureFullURL(firstHref(doc, postURLSelectors)),
		TimestampText:    firstText(doc, timestampSelectors),
	}

	// Last resort for the post body: the element's own text.
	if post.PostText == "" {
		post.PostText = utils.NormalizeWhitespace(doc.Text())
	}

	return post
}

// firstText returns the normalized text of the first selector candidate
// that matches a non-empty element.
func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := utils.NormalizeWhitespace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// firstHref returns the href of the first selector candidate that matches
// an element carrying one.
func firstHref(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if href, ok := doc.Find(selector).First().Attr("href"); ok && href != "" {
			return href
		}
	}
	return ""
}
