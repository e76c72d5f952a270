package client

import (
	"context"
	"net/http"

	ai "github.com/spetersoncode/gptrouter"
)

// Generate sends the ordered model requests and returns the router's
// response. The router tries the requests in slice order.
func (c *Client) Generate(ctx context.Context, reqs []ai.ModelGenerationRequest, opts ...ai.Option) (*ai.GenerationResponse, error) {
	payload, err := c.generatePayload(reqs, false, opts)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, "generate", http.MethodPost, PathGenerate, payload)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	return ai.DecodeGenerationResponse(body)
}

// GenerateAsync runs Generate on its own goroutine.
func (c *Client) GenerateAsync(ctx context.Context, reqs []ai.ModelGenerationRequest, opts ...ai.Option) *Future[*ai.GenerationResponse] {
	return goFuture(func() (*ai.GenerationResponse, error) {
		return c.Generate(ctx, reqs, opts...)
	})
}

// GenerateStream is Generate with streaming enabled. The returned Stream
// yields chunks as the router produces them.
func (c *Client) GenerateStream(ctx context.Context, reqs []ai.ModelGenerationRequest, opts ...ai.Option) (*Stream, error) {
	payload, err := c.generatePayload(reqs, true, opts)
	if err != nil {
		return nil, err
	}
	return c.openStream(ctx, "generate_stream", http.MethodPost, PathGenerate, payload)
}

// GenerateStreamAsync is GenerateStream delivering chunks on a channel.
// See StreamEventsAsync.
func (c *Client) GenerateStreamAsync(ctx context.Context, reqs []ai.ModelGenerationRequest, opts ...ai.Option) (<-chan StreamEvent, error) {
	s, err := c.GenerateStream(ctx, reqs, opts...)
	if err != nil {
		return nil, err
	}
	return pipe(ctx, s), nil
}

// GenerateImages asks the router for images. Default metadata is not
// attached to image requests.
func (c *Client) GenerateImages(ctx context.Context, req ai.ImageGenerationRequest) ([]ai.ImageGenerationResponse, error) {
	body, err := c.call(ctx, "generate_image", http.MethodPost, PathGenerateImage, req)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return nil, nil
	}
	return ai.DecodeImageResponses(body)
}

// GenerateImagesAsync runs GenerateImages on its own goroutine.
func (c *Client) GenerateImagesAsync(ctx context.Context, req ai.ImageGenerationRequest) *Future[[]ai.ImageGenerationResponse] {
	return goFuture(func() ([]ai.ImageGenerationResponse, error) {
		return c.GenerateImages(ctx, req)
	})
}

// generatePayload builds the generate body: the stream flag, the requests
// in caller order and the merged metadata fields.
func (c *Client) generatePayload(reqs []ai.ModelGenerationRequest, stream bool, opts []ai.Option) (map[string]any, error) {
	if len(reqs) == 0 {
		return nil, ai.ErrEmptyInput
	}
	options := ai.ApplyOptions(opts...)

	data := make([]ai.ModelGenerationRequest, len(reqs))
	copy(data, reqs)

	return ai.MergeMetadata(map[string]any{
		"stream": stream,
		"data":   data,
	}, c.defaultMetadata, options.Metadata)
}
