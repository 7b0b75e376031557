package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdentityKey(t *testing.T) {
	r := PostRecord{PostURL: "https://www.linkedin.com/posts/1", PostExcerpt: "hiring"}
	require.Equal(t, "https://www.linkedin.com/posts/1|hiring", r.IdentityKey())

	// Records differing only in excerpt are distinct.
	other := PostRecord{PostURL: r.PostURL, PostExcerpt: "different"}
	require.NotEqual(t, r.IdentityKey(), other.IdentityKey())
}

func TestRowMapCoversEveryColumn(t *testing.T) {
	row := PostRecord{}.RowMap()
	require.Len(t, row, len(ExpectedColumns))
	for _, col := range ExpectedColumns {
		_, ok := row[col]
		require.True(t, ok, "missing column %q", col)
	}
}

func TestRowMapValues(t *testing.T) {
	r := PostRecord{
		TimestampText:    "2d",
		PostURL:          "https://www.linkedin.com/posts/1",
		PosterName:       "Jane Doe",
		PosterProfileURL: "https://www.linkedin.com/in/jane-doe/",
		PosterLinkedInID: "jane-doe",
		RoleTitle:        "Data Analyst",
		MinYears:         Int(0),
		MaxYears:         Int(2),
		Skills:           SkillList{"SQL", "Excel"},
		Location:         "Remote",
		JobType:          "full-time",
		Contact:          "jobs@acme.test",
		PostExcerpt:      "hiring",
	}

	row := r.RowMap()
	require.Equal(t, "0", row["min_years_experience"])
	require.Equal(t, "2", row["max_years_experience"])
	require.Equal(t, "SQL, Excel", row["skills"])
	require.Equal(t, "jane-doe", row["poster_linkedin_id"])

	// Absent years map to empty cells.
	empty := PostRecord{}.RowMap()
	require.Equal(t, "", empty["min_years_experience"])
	require.Equal(t, "", empty["max_years_experience"])
}
