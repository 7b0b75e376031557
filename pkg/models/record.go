package models

import "strconv"

// ExpectedColumns is the fixed header row of the persisted workbook, in
// column order.
var ExpectedColumns = []string{
	"timestamp",
	"post_url",
	"poster_name",
	"poster_profile_url",
	"poster_linkedin_id",
	"role_title",
	"min_years_experience",
	"max_years_experience",
	"skills",
	"location",
	"job_type",
	"contact",
	"post_excerpt",
}

// PostRecord is the unit of persistence: the scraped post fields merged with
// the classification result. Records are never mutated after creation.
type PostRecord struct {
	TimestampText    string
	PostURL          string
	PosterName       string
	PosterProfileURL string
	PosterLinkedInID string
	RoleTitle        string
	MinYears         *int
	MaxYears         *int
	Skills           SkillList
	Location         string
	JobType          string
	Contact          string
	PostExcerpt      string
}

// IdentityKey is the field combination used to deduplicate records across
// runs. The pipe separator is not expected to occur in either field.
func (r PostRecord) IdentityKey() string {
	return r.PostURL + "|" + r.PostExcerpt
}

// RowMap returns the record as workbook cells keyed by column name.
// Absent values map to empty cells; skills are comma-joined.
func (r PostRecord) RowMap() map[string]string {
	return map[string]string{
		"timestamp":            r.TimestampText,
		"post_url":             r.PostURL,
		"poster_name":          r.PosterName,
		"poster_profile_url":   r.PosterProfileURL,
		"poster_linkedin_id":   r.PosterLinkedInID,
		"role_title":           r.RoleTitle,
		"min_years_experience": yearsCell(r.MinYears),
		"max_years_experience": yearsCell(r.MaxYears),
		"skills":               r.Skills.Joined(),
		"location":             r.Location,
		"job_type":             r.JobType,
		"contact":              r.Contact,
		"post_excerpt":         r.PostExcerpt,
	}
}

func yearsCell(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
