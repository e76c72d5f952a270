package gptrouter

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single conversation turn sent to the router.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// PromptParams holds the generation parameters forwarded to the provider.
// Unset optional fields are left out of the request body.
type PromptParams struct {
	Messages    []Message      `json:"messages,omitempty"`
	Prompt      string         `json:"prompt,omitempty"`
	System      string         `json:"system,omitempty"`
	Temperature *float64       `json:"temperature,omitempty"`
	TopP        *float64       `json:"topP,omitempty"`
	MaxTokens   *int           `json:"maxTokens,omitempty"`
	Stop        []string       `json:"stop,omitempty"`
	Functions   []Function     `json:"functions,omitempty"`
	Extra       map[string]any `json:"extra,omitempty"`
}

// Function describes a callable function the model may choose to invoke.
type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Parameters  map[string]any `json:"parameters,omitempty"`
}

// ModelGenerationRequest asks the router to generate with one model.
// A generate call carries an ordered list of these; the router tries
// them in that order when falling back between providers.
type ModelGenerationRequest struct {
	Model        string       `json:"modelName"`
	Provider     Provider     `json:"providerName,omitempty"`
	Order        int          `json:"order,omitempty"`
	PromptParams PromptParams `json:"promptParams"`
}

// NewModelRequest builds a request for the given model and messages.
func NewModelRequest(provider Provider, model string, messages ...Message) ModelGenerationRequest {
	return ModelGenerationRequest{
		Model:        model,
		Provider:     provider,
		PromptParams: PromptParams{Messages: messages},
	}
}

// ImageGenerationRequest asks the router to generate images.
type ImageGenerationRequest struct {
	Model          string         `json:"model"`
	Vendor         ImageVendor    `json:"imageVendor"`
	Prompt         string         `json:"prompt"`
	NumImages      int            `json:"numImages,omitempty"`
	Width          int            `json:"width,omitempty"`
	Height         int            `json:"height,omitempty"`
	Size           string         `json:"size,omitempty"`
	Quality        string         `json:"quality,omitempty"`
	Style          string         `json:"style,omitempty"`
	ResponseFormat string         `json:"responseFormat,omitempty"`
	Extra          map[string]any `json:"extra,omitempty"`
}
