package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractProfileID(t *testing.T) {
	tests := []struct {
		name       string
		profileURL string
		expected   string
	}{
		{
			name:       "personal profile",
			profileURL: "https://www.linkedin.com/in/jane-doe/",
			expected:   "jane-doe",
		},
		{
			name:       "company profile",
			profileURL: "https://www.linkedin.com/company/acme/",
			expected:   "acme",
		},
		{
			name:       "query string ignored",
			profileURL: "https://www.linkedin.com/in/jane-doe?miniProfileUrn=urn",
			expected:   "jane-doe",
		},
		{
			name:       "non-namespaced path uses first segment",
			profileURL: "https://example.com/janedoe/posts",
			expected:   "janedoe",
		},
		{
			name:       "namespace without id",
			profileURL: "https://www.linkedin.com/in/",
			expected:   "in",
		},
		{
			name:       "empty",
			profileURL: "",
			expected:   "",
		},
		{
			name:       "malformed escape",
			profileURL: "https://www.linkedin.com/in/%zz",
			expected:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, ExtractProfileID(tt.profileURL))
		})
	}
}

func TestTruncateExcerpt(t *testing.T) {
	short := "short post"
	require.Equal(t, short, TruncateExcerpt(short))

	exact := strings.Repeat("a", 500)
	require.Equal(t, exact, TruncateExcerpt(exact))

	long := strings.Repeat("b", 501)
	got := TruncateExcerpt(long)
	require.Len(t, []rune(got), 500)
	require.True(t, strings.HasSuffix(got, "..."))
	require.Equal(t, strings.Repeat("b", 497), got[:497])
}

func TestNormalizeWhitespace(t *testing.T) {
	require.Equal(t, "a b c", NormalizeWhitespace("  a \n\n b\tc "))
	require.Equal(t, "", NormalizeWhitespace(" \t\n "))
}

func TestEnsureFullURL(t *testing.T) {
	require.Equal(t, "", EnsureFullURL(""))
	require.Equal(t, "https://www.linkedin.com/in/jane", EnsureFullURL("/in/jane"))
	require.Equal(t, "https://example.com/x", EnsureFullURL("https://example.com/x"))
	require.Equal(t, "mailto:someone@example.com", EnsureFullURL("mailto:someone@example.com"))
}

func TestGenerateRunID(t *testing.T) {
	a := GenerateRunID()
	b := GenerateRunID()
	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}
