package llm

import (
	"strings"

	"linkharvest/pkg/models"
)

// canonicalRole is the label assigned when the fallback detects the target
// role by keyword.
const canonicalRole = "Data Analyst"

// Experience bounds assigned when the fallback detects a freshness signal.
const (
	fallbackMinYears = 0
	fallbackMaxYears = 2
)

// freshnessMarkers are the phrasings that signal an entry-level opening.
var freshnessMarkers = []string{
	"0-2",
	"0 to 2",
	"freshers",
	"fresher",
	"entry level",
	"junior",
}

// FallbackClassify is the deterministic keyword heuristic used when the
// oracle yields nothing. It is a pure function: fixed input text always
// produces the same Extraction.
func FallbackClassify(postText string) models.Extraction {
	text := strings.ToLower(postText)

	hasRole := strings.Contains(text, "data analyst")

	hasExperienceSignal := false
	for _, marker := range freshnessMarkers {
		if strings.Contains(text, marker) {
			hasExperienceSignal = true
			break
		}
	}

	extraction := models.Extraction{
		Skills:          models.SkillList{},
		VerdictRelevant: models.Bool(hasRole && hasExperienceSignal),
	}
	if hasRole {
		extraction.RoleTitle = canonicalRole
	}
	if hasExperienceSignal {
		extraction.MinYears = models.Int(fallbackMinYears)
		extraction.MaxYears = models.Int(fallbackMaxYears)
	}

	return extraction
}
