package llm

// ModelCost holds per-million-token pricing for a model in USD.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the pricing for a model ID, or nil if unknown.
// Friendly aliases such as "gemini-pro" resolve to their model ID first.
func LookupCost(modelID string) *ModelCost {
	for _, table := range []map[string]string{geminiModels, anthropicModels, openaiModels} {
		if id, ok := table[modelID]; ok {
			modelID = id
			break
		}
	}
	if c, ok := modelCosts[modelID]; ok {
		return &c
	}
	return nil
}

// EstimateCost returns the USD cost of usage on modelID and whether the
// model has a known price.
func EstimateCost(modelID string, usage Usage) (float64, bool) {
	c := LookupCost(modelID)
	if c == nil {
		return 0, false
	}
	return c.Cost(usage.InputTokens, usage.OutputTokens), true
}

// modelCosts covers the models the providers map to plus common overrides.
// Last updated: 2026-09-30.
var modelCosts = map[string]ModelCost{
	// Google (Gemini)
	"gemini-2.5-flash":       {0.3, 2.5},
	"gemini-2.5-flash-image": {0.3, 30},
	"gemini-2.5-flash-lite":  {0.1, 0.4},
	"gemini-2.5-pro":         {1.25, 10},
	"gemini-3-flash-preview": {0.5, 3},
	"gemini-3-pro-preview":   {2, 12},

	// OpenRouter routes Gemini under the google/ prefix.
	"google/gemini-2.5-flash": {0.3, 2.5},
	"google/gemini-2.5-pro":   {1.25, 10},

	// Anthropic
	"claude-haiku-4-5":           {1, 5},
	"claude-haiku-4-5-20251001":  {1, 5},
	"claude-opus-4-5":            {5, 25},
	"claude-opus-4-5-20251101":   {5, 25},
	"claude-sonnet-4-5":          {3, 15},
	"claude-sonnet-4-5-20250929": {3, 15},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
}
