package gptrouter

// Provider identifies an upstream provider the router can dispatch to.
type Provider string

// String returns the provider identifier.
func (p Provider) String() string { return string(p) }

// Providers known to the router.
const (
	ProviderOpenAI      Provider = "openai"
	ProviderAzureOpenAI Provider = "azure"
	ProviderAnthropic   Provider = "anthropic"
	ProviderCohere      Provider = "cohere"
	ProviderGoogle      Provider = "google-gemini"
	ProviderStability   Provider = "stability"
)

// ImageVendor identifies the backend used for image generation.
type ImageVendor string

// String returns the vendor identifier.
func (v ImageVendor) String() string { return string(v) }

// Image vendors known to the router.
const (
	ImageVendorOpenAI    ImageVendor = "openai"
	ImageVendorStability ImageVendor = "stability"
)
