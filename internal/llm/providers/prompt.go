package providers

import "fmt"

// buildClassificationPrompt creates the instruction prompt shared by all
// oracle providers. The output-format directive is strict because the
// response is machine-parsed; salvage parsing handles the cases where the
// model ignores it anyway.
func buildClassificationPrompt(postText string) string {
	return fmt.Sprintf(`You extract hiring info from LinkedIn posts.
Return strictly minified JSON only, no code fences or prose.
Fields: role_title (string), min_years_experience (int), max_years_experience (int), skills (array of strings), location (string), job_type (full-time/part-time/intern/contract), contact (string), verdict_relevant (boolean: true only if role is Data Analyst or very close AND total experience required fits 0-2 years).
If unsure about a field, use null, except skills should be [].
Examples of relevant: 'Looking for a Data Analyst (freshers welcome)', 'Hiring Junior Data Analyst, 0-2 yrs'.
Examples of NOT relevant: 'Senior Data Scientist 5+ years', 'Business Analyst 3-5 years'.

Text: """%s"""
Respond with a single JSON object only.`, postText)
}
