package model

import ai "github.com/spetersoncode/gptrouter"

// ChatPricing contains pricing per million tokens (USD) for chat models.
// Fields are zero when a price is not published.
type ChatPricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// Known returns true if the model has published token prices.
func (p ChatPricing) Known() bool {
	return p.InputPerMillion > 0 || p.OutputPerMillion > 0
}

// ImagePricing contains image generation pricing (USD).
type ImagePricing struct {
	PerImage float64
}

// Cost returns the USD cost of n images.
func (p ImagePricing) Cost(n int) float64 {
	return float64(n) * p.PerImage
}

// CalculateCost estimates the USD cost of usage under pricing.
func CalculateCost(usage ai.Usage, pricing ChatPricing) float64 {
	input := float64(usage.PromptTokens) / 1_000_000 * pricing.InputPerMillion
	output := float64(usage.CompletionTokens) / 1_000_000 * pricing.OutputPerMillion
	return input + output
}
