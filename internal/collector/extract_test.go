package collector

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPostFields(t *testing.T) {
	html := `<article>
		<a href="/in/jane-doe/"><span aria-hidden="true">Jane Doe</span></a>
		<span class="update-components-actor__sub-description">2d ago</span>
		<div dir="ltr">We are hiring a Data Analyst.
			Freshers welcome.</div>
		<a href="https://www.linkedin.com/posts/jane-doe_hiring-activity-123">open</a>
	</article>`

	post := extractPostFields(html)
	require.Equal(t, "We are hiring a Data Analyst. Freshers welcome.", post.PostText)
	require.Equal(t, "Jane Doe", post.PosterName)
	require.Equal(t, "https://www.linkedin.com/in/jane-doe/", post.PosterProfileURL)
	require.Equal(t, "https://www.linkedin.com/posts/jane-doe_hiring-activity-123", post.PostURL)
	require.Equal(t, "2d ago", post.TimestampText)
}

func TestExtractPostFieldsRelativeHrefs(t *testing.T) {
	html := `<article>
		<a href="/in/jane-doe/">Jane</a>
		<a href="/feed/update/urn:li:activity:123/">post</a>
	</article>`

	post := extractPostFields(html)
	require.Equal(t, "https://www.linkedin.com/in/jane-doe/", post.PosterProfileURL)
	require.Equal(t, "https://www.linkedin.com/feed/update/urn:li:activity:123/", post.PostURL)
}

func TestExtractPostFieldsTextFallback(t *testing.T) {
	// No dir attributes or paragraphs; the element's own text is the
	// last resort for the body.
	html := `<article><section>  Plain   body text  </section></article>`

	post := extractPostFields(html)
	require.Equal(t, "Plain body text", post.PostText)
}

func TestExtractPostFieldsTimestampCascade(t *testing.T) {
	withTime := `<article><time>3h</time><span class="update-components-actor__sub-description">ignored</span></article>`
	require.Equal(t, "3h", extractPostFields(withTime).TimestampText)

	withoutTime := `<article><span class="update-components-actor__sub-description">1w</span></article>`
	require.Equal(t, "1w", extractPostFields(withoutTime).TimestampText)
}

func TestExtractPostFieldsEmptyInput(t *testing.T) {
	post := extractPostFields("")
	require.Empty(t, post.PostText)
	require.Empty(t, post.PostURL)
	require.Empty(t, post.PosterProfileURL)
}
