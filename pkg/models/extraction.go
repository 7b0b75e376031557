package models

import (
	"encoding/json"
	"strings"
)

// Extraction is the structured judgment produced by the classification step
// for a single post. VerdictRelevant is the only required field; everything
// else defaults to absent when the oracle is unsure.
type Extraction struct {
	RoleTitle       string    `json:"role_title"`
	MinYears        *int      `json:"min_years_experience"`
	MaxYears        *int      `json:"max_years_experience"`
	Skills          SkillList `json:"skills"`
	Location        string    `json:"location"`
	JobType         string    `json:"job_type" validate:"omitempty,oneof=full-time part-time intern contract"`
	Contact         string    `json:"contact"`
	VerdictRelevant *bool     `json:"verdict_relevant" validate:"required"`
}

// Relevant reports the oracle's verdict, treating an absent verdict as
// not relevant.
func (e Extraction) Relevant() bool {
	return e.VerdictRelevant != nil && *e.VerdictRelevant
}

// SkillList normalizes the skills field of an oracle response. The oracle is
// instructed to return an array but sometimes returns a comma-joined string
// or null; all three decode to a list of trimmed non-empty strings.
type SkillList []string

// UnmarshalJSON implements json.Unmarshaler.
func (s *SkillList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = SkillList{}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = cleanSkills(list)
		return nil
	}

	var joined string
	if err := json.Unmarshal(data, &joined); err != nil {
		return err
	}
	*s = cleanSkills(strings.Split(joined, ","))
	return nil
}

// Joined returns the skills as a comma-joined string for tabular output.
func (s SkillList) Joined() string {
	return strings.Join(s, ", ")
}

func cleanSkills(values []string) SkillList {
	out := SkillList{}
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Bool returns a pointer to b, for building Extraction literals.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for the optional experience bounds.
func Int(n int) *int { return &n }
