package gptrouter

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

// Usage reports token consumption for a generation.
type Usage struct {
	PromptTokens     int `json:"promptTokens"`
	CompletionTokens int `json:"completionTokens"`
	TotalTokens      int `json:"totalTokens"`
}

// FunctionCall is a function invocation requested by the model.
type FunctionCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
}

// Choice is one candidate completion.
type Choice struct {
	Index        int           `json:"index"`
	Text         string        `json:"text"`
	Role         Role          `json:"role,omitempty"`
	FinishReason string        `json:"finishReason,omitempty"`
	FunctionCall *FunctionCall `json:"functionCall,omitempty"`
}

// ResponseMeta carries router-side bookkeeping for a generation.
type ResponseMeta struct {
	Usage *Usage         `json:"usage,omitempty"`
	Extra map[string]any `json:"-"`
}

// UnmarshalJSON keeps unknown meta fields in Extra.
func (m *ResponseMeta) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if u, ok := raw["usage"]; ok && u != nil {
		b, err := json.Marshal(u)
		if err != nil {
			return err
		}
		m.Usage = &Usage{}
		if err := json.Unmarshal(b, m.Usage); err != nil {
			return err
		}
	}
	delete(raw, "usage")
	if len(raw) > 0 {
		m.Extra = raw
	}
	return nil
}

// GenerationResponse is the result of a unary generate call.
// Its fields are passed through from the router untouched.
type GenerationResponse struct {
	ID       string        `json:"id"`
	Choices  []Choice      `json:"choices"`
	Model    string        `json:"model"`
	Provider Provider      `json:"providerName,omitempty"`
	Meta     *ResponseMeta `json:"meta,omitempty"`
}

// Text returns the text of the first choice, or "" if there is none.
func (r *GenerationResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Text
}

// ChunkData is the incremental payload of one streamed frame. Keys that
// are not recognized, or that carry an unexpected type, are kept in Extra.
type ChunkData struct {
	Text         string         `json:"text,omitempty"`
	Role         Role           `json:"role,omitempty"`
	FinishReason string         `json:"finishReason,omitempty"`
	FunctionCall *FunctionCall  `json:"functionCall,omitempty"`
	Usage        *Usage         `json:"usage,omitempty"`
	Extra        map[string]any `json:"-"`
}

// ChunkedGenerationResponse is one decoded frame of a streamed generation.
// Raw always holds the frame as received; top-level keys other than
// event, data, provider and model are kept in Extra.
type ChunkedGenerationResponse struct {
	Event    string          `json:"event"`
	Data     ChunkData       `json:"data"`
	Provider Provider        `json:"provider,omitempty"`
	Model    string          `json:"model,omitempty"`
	Extra    map[string]any  `json:"-"`
	Raw      json.RawMessage `json:"-"`
}

// Text returns data.text, falling back to a top-level "text" key.
func (c *ChunkedGenerationResponse) Text() string {
	if c == nil {
		return ""
	}
	if c.Data.Text != "" {
		return c.Data.Text
	}
	s, _ := c.Extra["text"].(string)
	return s
}

// ImageGenerationResponse is a single generated image.
type ImageGenerationResponse struct {
	URL          string `json:"url,omitempty"`
	Base64       string `json:"base64,omitempty"`
	FinishReason string `json:"finishReason,omitempty"`
	Seed         int64  `json:"seed,omitempty"`
}

// DecodeGenerationResponse parses a unary generate body.
func DecodeGenerationResponse(body []byte) (*GenerationResponse, error) {
	var resp GenerationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Target: "GenerationResponse", Err: err}
	}
	return &resp, nil
}

// DecodeChunk parses the JSON payload of a single data frame. Any valid
// JSON decodes; fields that do not fit the typed shape are kept in Extra
// and Raw rather than rejected.
func DecodeChunk(data []byte) (*ChunkedGenerationResponse, error) {
	if !gjson.ValidBytes(data) {
		return nil, &DecodeError{Target: "ChunkedGenerationResponse", Err: fmt.Errorf("invalid JSON frame")}
	}
	chunk := &ChunkedGenerationResponse{Raw: append(json.RawMessage(nil), data...)}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return chunk, nil
	}
	root.ForEach(func(key, value gjson.Result) bool {
		switch {
		case key.Str == "data":
			chunk.Data = decodeChunkData(value)
		case key.Str == "event" && value.Type == gjson.String:
			chunk.Event = value.Str
		case key.Str == "provider" && value.Type == gjson.String:
			chunk.Provider = Provider(value.Str)
		case key.Str == "model" && value.Type == gjson.String:
			chunk.Model = value.Str
		default:
			chunk.Extra = setExtra(chunk.Extra, key.Str, value)
		}
		return true
	})
	return chunk, nil
}

// decodeChunkData reads the data member of a frame. A string is taken as
// the text.
func decodeChunkData(v gjson.Result) ChunkData {
	var d ChunkData
	if v.Type == gjson.String {
		d.Text = v.Str
		return d
	}
	if !v.IsObject() {
		return d
	}
	v.ForEach(func(key, value gjson.Result) bool {
		if !d.setKnown(key.Str, value) {
			d.Extra = setExtra(d.Extra, key.Str, value)
		}
		return true
	})
	return d
}

func (d *ChunkData) setKnown(key string, v gjson.Result) bool {
	switch key {
	case "text":
		if v.Type != gjson.String {
			return false
		}
		d.Text = v.Str
	case "role":
		if v.Type != gjson.String {
			return false
		}
		d.Role = Role(v.Str)
	case "finishReason":
		if v.Type != gjson.String {
			return false
		}
		d.FinishReason = v.Str
	case "functionCall":
		var fc FunctionCall
		if !v.IsObject() || json.Unmarshal([]byte(v.Raw), &fc) != nil {
			return false
		}
		d.FunctionCall = &fc
	case "usage":
		var u Usage
		if !v.IsObject() || json.Unmarshal([]byte(v.Raw), &u) != nil {
			return false
		}
		d.Usage = &u
	default:
		return false
	}
	return true
}

func setExtra(m map[string]any, key string, v gjson.Result) map[string]any {
	if m == nil {
		m = make(map[string]any)
	}
	m[key] = v.Value()
	return m
}

// DecodeImageResponses parses an image generation body. The router
// returns either {"response": [...]} or {"response": {"artifacts": [...]}}
// depending on the vendor; both yield the same list.
func DecodeImageResponses(body []byte) ([]ImageGenerationResponse, error) {
	if !gjson.ValidBytes(body) {
		return nil, &DecodeError{Target: "ImageGenerationResponse", Err: fmt.Errorf("invalid JSON body")}
	}
	list := gjson.GetBytes(body, "response")
	if list.IsObject() {
		list = list.Get("artifacts")
	}
	if !list.IsArray() {
		return nil, &DecodeError{
			Target: "ImageGenerationResponse",
			Err:    fmt.Errorf("expected a list of images, got %s", list.Type),
		}
	}
	images := make([]ImageGenerationResponse, 0, len(list.Array()))
	if err := json.Unmarshal([]byte(list.Raw), &images); err != nil {
		return nil, &DecodeError{Target: "ImageGenerationResponse", Err: err}
	}
	return images, nil
}
