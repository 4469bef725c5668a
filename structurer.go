package shopinsight

import (
	"context"
	"encoding/json"
	"strings"
)

// Structurer turns serialized insights into a cleaner JSON object using a
// language model.
type Structurer interface {
	// Structure sends raw to the model and returns its JSON object.
	// Output that is not a JSON object is returned as {"raw": text}.
	Structure(ctx context.Context, raw string) (map[string]any, error)
}

// TokenCounter measures how many model tokens a structuring input uses.
type TokenCounter interface {
	CountTokens(ctx context.Context, raw string) (int, error)
}

// StructurePrompt is the system instruction sent with every structuring request.
const StructurePrompt = "You are an expert data extractor. Given the following website data, " +
	"return ONLY a valid JSON object with all relevant fields, categories, and values. " +
	"Do not include any explanation or markdown, just the JSON."

// ParseStructured decodes model output as a JSON object.
// Anything else is wrapped as {"raw": text}.
func ParseStructured(text string) map[string]any {
	var obj map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(text)), &obj); err != nil || obj == nil {
		return map[string]any{"raw": text}
	}
	return obj
}

// InsightsToMap converts insights to a generic JSON object, the shape
// returned when no Structurer is configured.
func InsightsToMap(insights *BrandInsights) (map[string]any, error) {
	data, err := json.Marshal(insights)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	return obj, nil
}
