package model

import ai "github.com/spetersoncode/gptrouter"

// ChatModel represents a text generation model behind the router.
type ChatModel struct {
	id       string
	provider ai.Provider
	pricing  ChatPricing
}

// String returns the router identifier for this model.
func (m ChatModel) String() string { return m.id }

// Provider returns which provider serves this model.
func (m ChatModel) Provider() ai.Provider { return m.provider }

// Pricing returns the pricing for this model.
func (m ChatModel) Pricing() ChatPricing { return m.pricing }

// Cost estimates the USD cost of a generation with this model.
func (m ChatModel) Cost(usage ai.Usage) float64 {
	return CalculateCost(usage, m.pricing)
}

// Request builds a generation request for this model.
func (m ChatModel) Request(messages ...ai.Message) ai.ModelGenerationRequest {
	return ai.NewModelRequest(m.provider, m.id, messages...)
}

// Anthropic Claude Models
var (
	Claude3Haiku    = ChatModel{id: "claude-3-haiku-20240307", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 0.25, OutputPerMillion: 1.25}}
	Claude3Sonnet   = ChatModel{id: "claude-3-sonnet-20240229", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}
	Claude3Opus     = ChatModel{id: "claude-3-opus-20240229", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 15.00, OutputPerMillion: 75.00}}
	Claude35Sonnet  = ChatModel{id: "claude-3-5-sonnet-20240620", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}
	ClaudeInstant12 = ChatModel{id: "claude-instant-1.2", provider: ai.ProviderAnthropic, pricing: ChatPricing{InputPerMillion: 0.80, OutputPerMillion: 2.40}}
)

// OpenAI GPT Models
var (
	GPT4o      = ChatModel{id: "gpt-4o", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 5.00, OutputPerMillion: 15.00}}
	GPT4oMini  = ChatModel{id: "gpt-4o-mini", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 0.15, OutputPerMillion: 0.60}}
	GPT4Turbo  = ChatModel{id: "gpt-4-turbo", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 10.00, OutputPerMillion: 30.00}}
	GPT35Turbo = ChatModel{id: "gpt-3.5-turbo", provider: ai.ProviderOpenAI, pricing: ChatPricing{InputPerMillion: 0.50, OutputPerMillion: 1.50}}
	AzureGPT35 = ChatModel{id: "gpt-35-turbo", provider: ai.ProviderAzureOpenAI, pricing: ChatPricing{InputPerMillion: 0.50, OutputPerMillion: 1.50}}
	AzureGPT4o = ChatModel{id: "gpt-4o", provider: ai.ProviderAzureOpenAI, pricing: ChatPricing{InputPerMillion: 5.00, OutputPerMillion: 15.00}}
)

// Cohere Command Models
var (
	CommandR     = ChatModel{id: "command-r", provider: ai.ProviderCohere, pricing: ChatPricing{InputPerMillion: 0.50, OutputPerMillion: 1.50}}
	CommandRPlus = ChatModel{id: "command-r-plus", provider: ai.ProviderCohere, pricing: ChatPricing{InputPerMillion: 3.00, OutputPerMillion: 15.00}}
	CommandLight = ChatModel{id: "command-light", provider: ai.ProviderCohere}
)

// Google Gemini Models
var (
	Gemini15Pro   = ChatModel{id: "gemini-1.5-pro", provider: ai.ProviderGoogle, pricing: ChatPricing{InputPerMillion: 3.50, OutputPerMillion: 10.50}}
	Gemini15Flash = ChatModel{id: "gemini-1.5-flash", provider: ai.ProviderGoogle, pricing: ChatPricing{InputPerMillion: 0.35, OutputPerMillion: 1.05}}
)

// ImageModel represents an image generation model behind the router.
type ImageModel struct {
	id      string
	vendor  ai.ImageVendor
	pricing ImagePricing
}

// String returns the router identifier for this model.
func (m ImageModel) String() string { return m.id }

// Vendor returns which image vendor serves this model.
func (m ImageModel) Vendor() ai.ImageVendor { return m.vendor }

// Pricing returns the pricing for this model.
func (m ImageModel) Pricing() ImagePricing { return m.pricing }

// Request builds an image generation request for this model.
func (m ImageModel) Request(prompt string) ai.ImageGenerationRequest {
	return ai.ImageGenerationRequest{
		Model:     m.id,
		Vendor:    m.vendor,
		Prompt:    prompt,
		NumImages: 1,
	}
}

// Image Models
var (
	DallE2       = ImageModel{id: "dall-e-2", vendor: ai.ImageVendorOpenAI, pricing: ImagePricing{PerImage: 0.02}}
	DallE3       = ImageModel{id: "dall-e-3", vendor: ai.ImageVendorOpenAI, pricing: ImagePricing{PerImage: 0.04}}
	StableDiffXL = ImageModel{id: "stable-diffusion-xl-1024-v1-0", vendor: ai.ImageVendorStability, pricing: ImagePricing{PerImage: 0.002}}
)
