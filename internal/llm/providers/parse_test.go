package providers

import (
	"testing"

	"github.com/stretchr/testify/require"

	"linkharvest/pkg/models"
)

func TestParseExtraction(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		relevant bool
	}{
		{
			name:     "plain json",
			raw:      `{"verdict_relevant": true, "role_title": "Data Analyst"}`,
			relevant: true,
		},
		{
			name:     "json fenced",
			raw:      "```json\n{\"verdict_relevant\": true}\n```",
			relevant: true,
		},
		{
			name:     "bare fence",
			raw:      "```\n{\"verdict_relevant\": false}\n```",
			relevant: false,
		},
		{
			name:     "wrapped in prose",
			raw:      `Sure! Here is the analysis: {"verdict_relevant": false} Hope this helps.`,
			relevant: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseExtraction(tt.raw)
			require.NoError(t, err)
			require.Equal(t, tt.relevant, got.Relevant())
		})
	}
}

func TestParseExtractionFullPayload(t *testing.T) {
	raw := `{
		"role_title": "Data Analyst",
		"min_years_experience": 0,
		"max_years_experience": 2,
		"skills": ["SQL", "Tableau"],
		"location": "Bangalore",
		"job_type": "full-time",
		"contact": "hr@acme.test",
		"verdict_relevant": true
	}`

	got, err := parseExtraction(raw)
	require.NoError(t, err)
	require.Equal(t, "Data Analyst", got.RoleTitle)
	require.Equal(t, 0, *got.MinYears)
	require.Equal(t, 2, *got.MaxYears)
	require.Equal(t, models.SkillList{"SQL", "Tableau"}, got.Skills)
	require.Equal(t, "full-time", got.JobType)
}

func TestParseExtractionErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "no json at all", raw: "I could not analyze this post."},
		{name: "broken json", raw: `{"verdict_relevant": tru`},
		{name: "missing verdict", raw: `{"role_title": "Data Analyst"}`},
		{name: "invalid job type", raw: `{"verdict_relevant": true, "job_type": "gig"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseExtraction(tt.raw)
			require.Error(t, err)
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	require.Equal(t, `{"a": 1}`, stripCodeFences("```json\n{\"a\": 1}\n```"))
	require.Equal(t, `{"a": 1}`, stripCodeFences("```\n{\"a\": 1}\n```"))
	require.Equal(t, `{"a": 1}`, stripCodeFences(`{"a": 1}`))
}
