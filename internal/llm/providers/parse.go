package providers

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"linkharvest/pkg/models"
)

var validate = validator.New()

// parseExtraction decodes a raw oracle response into a validated
// Extraction. The response text is cleaned of markdown fences first; if it
// still does not parse as JSON, the substring between the first '{' and the
// last '}' is tried, which salvages responses wrapped in prose.
func parseExtraction(raw string) (*models.Extraction, error) {
	raw = stripCodeFences(raw)

	var extraction models.Extraction
	if err := json.Unmarshal([]byte(raw), &extraction); err != nil {
		start := strings.Index(raw, "{")
		end := strings.LastIndex(raw, "}")
		if start == -1 || end <= start {
			return nil, fmt.Errorf("no JSON object in oracle response: %w", err)
		}
		if err := json.Unmarshal([]byte(raw[start:end+1]), &extraction); err != nil {
			return nil, fmt.Errorf("failed to parse salvaged JSON from oracle response: %w", err)
		}
	}

	if err := validate.Struct(&extraction); err != nil {
		return nil, fmt.Errorf("oracle response failed validation: %w", err)
	}

	return &extraction, nil
}

// stripCodeFences removes markdown code block wrappers if present
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		text = strings.TrimSuffix(text, "```")
		text = strings.TrimSpace(text)
	}
	return text
}
