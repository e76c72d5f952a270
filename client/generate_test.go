package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/gptrouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const generateBody = `{
	"id": "gen-1",
	"model": "gpt-4o-mini",
	"providerName": "openai",
	"choices": [{"index": 0, "text": "hello", "role": "assistant", "finishReason": "stop"}],
	"meta": {"usage": {"promptTokens": 3, "completionTokens": 1, "totalTokens": 4}, "latencyMs": 120}
}`

func TestGenerate(t *testing.T) {
	t.Run("decodes response", func(t *testing.T) {
		srv, got := newServer(t, jsonHandler(http.StatusOK, generateBody))
		c := New(Config{BaseURL: srv.URL, APIKey: "k"})

		resp, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("gpt-4o-mini", "hi")})
		require.NoError(t, err)
		assert.Equal(t, "gen-1", resp.ID)
		assert.Equal(t, "hello", resp.Text())
		assert.Equal(t, ai.ProviderOpenAI, resp.Provider)
		require.NotNil(t, resp.Meta)
		require.NotNil(t, resp.Meta.Usage)
		assert.Equal(t, 4, resp.Meta.Usage.TotalTokens)
		assert.Equal(t, float64(120), resp.Meta.Extra["latencyMs"])

		rec := <-got
		assert.Equal(t, "/api/v1/generate", rec.Path)
		assert.Equal(t, false, rec.Payload["stream"])
	})

	t.Run("preserves request order", func(t *testing.T) {
		srv, got := newServer(t, jsonHandler(http.StatusOK, generateBody))
		c := New(Config{BaseURL: srv.URL})

		reqs := []ai.ModelGenerationRequest{
			ai.NewModelRequest(ai.ProviderAnthropic, "A"),
			ai.NewModelRequest(ai.ProviderOpenAI, "B"),
			ai.NewModelRequest(ai.ProviderCohere, "C"),
		}
		_, err := c.Generate(context.Background(), reqs)
		require.NoError(t, err)

		data, ok := (<-got).Payload["data"].([]any)
		require.True(t, ok)
		require.Len(t, data, 3)
		for i, want := range []string{"A", "B", "C"} {
			item := data[i].(map[string]any)
			assert.Equal(t, want, item["modelName"])
		}
		first := data[0].(map[string]any)
		assert.Equal(t, "anthropic", first["providerName"])
		assert.NotContains(t, first, "order")
		assert.NotContains(t, first["promptParams"], "temperature")
	})

	t.Run("merges metadata with call-site precedence", func(t *testing.T) {
		srv, got := newServer(t, jsonHandler(http.StatusOK, generateBody))
		c := New(Config{
			BaseURL:         srv.URL,
			DefaultMetadata: ai.Metadata{ai.MetaTag: "a", ai.MetaCreatedByUserID: "u1"},
		})

		_, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("m", "hi")}, ai.WithTag("b"))
		require.NoError(t, err)

		payload := (<-got).Payload
		assert.Equal(t, "b", payload["tag"])
		assert.Equal(t, "u1", payload["createdByUserId"])
		assert.NotContains(t, payload, "historyId")
		assert.Equal(t, map[string]any{"tag": "b", "created_by_user_id": "u1"}, payload["metadata"])
	})

	t.Run("stringifies history id", func(t *testing.T) {
		srv, got := newServer(t, jsonHandler(http.StatusOK, generateBody))
		c := New(Config{BaseURL: srv.URL})
		id := uuid.New()

		_, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("m", "hi")},
			ai.WithCreatedByUserID("u1"), ai.WithHistoryID(id))
		require.NoError(t, err)

		payload := (<-got).Payload
		assert.Equal(t, id.String(), payload["historyId"])
		assert.NotContains(t, payload, "tag")
	})

	t.Run("no metadata leaves payload sparse", func(t *testing.T) {
		srv, got := newServer(t, jsonHandler(http.StatusOK, generateBody))
		c := New(Config{BaseURL: srv.URL})

		_, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("m", "hi")})
		require.NoError(t, err)

		payload := (<-got).Payload
		for _, key := range []string{"metadata", "tag", "createdByUserId", "historyId"} {
			assert.NotContains(t, payload, key)
		}
	})

	t.Run("metadata without user id fails before sending", func(t *testing.T) {
		srv, got := newServer(t, jsonHandler(http.StatusOK, generateBody))
		c := New(Config{BaseURL: srv.URL})

		_, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("m", "hi")}, ai.WithTag("t"))
		assert.ErrorIs(t, err, ai.ErrMissingCreatedByUserID)
		assert.Empty(t, got)
	})

	t.Run("empty request list", func(t *testing.T) {
		c := New(Config{BaseURL: "http://unused"})
		_, err := c.Generate(context.Background(), nil)
		assert.ErrorIs(t, err, ai.ErrEmptyInput)
	})

	t.Run("accepted returns nil response", func(t *testing.T) {
		srv, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusAccepted)
		})
		c := New(Config{BaseURL: srv.URL})

		resp, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("m", "hi")})
		require.NoError(t, err)
		assert.Nil(t, resp)
	})

	t.Run("shape mismatch is a decode error", func(t *testing.T) {
		srv, _ := newServer(t, jsonHandler(http.StatusOK, `{"choices": "nope"}`))
		c := New(Config{BaseURL: srv.URL})

		_, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("m", "hi")})
		var decodeErr *ai.DecodeError
		require.ErrorAs(t, err, &decodeErr)
		assert.Equal(t, "GenerationResponse", decodeErr.Target)
	})

	t.Run("classified error", func(t *testing.T) {
		srv, _ := newServer(t, jsonHandler(http.StatusUnauthorized, `{"message":"bad key"}`))
		c := New(Config{BaseURL: srv.URL})

		_, err := c.Generate(context.Background(), []ai.ModelGenerationRequest{userRequest("m", "hi")})
		assert.ErrorIs(t, err, ai.ErrUnauthorized)
		var apiErr *ai.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "bad key", apiErr.Message())
		assert.True(t, ai.IsPermanent(err))
	})
}

func TestGenerateAsync(t *testing.T) {
	srv, _ := newServer(t, jsonHandler(http.StatusOK, generateBody))
	c := New(Config{BaseURL: srv.URL})
	reqs := []ai.ModelGenerationRequest{userRequest("m", "hi")}

	sync, err := c.Generate(context.Background(), reqs)
	require.NoError(t, err)

	async, err := c.GenerateAsync(context.Background(), reqs).Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, sync, async)
}

func TestGenerateImages(t *testing.T) {
	shapes := map[string]string{
		"list":      `{"response": [{"url": "https://img/1.png", "seed": 7}]}`,
		"artifacts": `{"response": {"artifacts": [{"url": "https://img/1.png", "seed": 7}]}}`,
	}

	for name, body := range shapes {
		t.Run(name, func(t *testing.T) {
			srv, got := newServer(t, jsonHandler(http.StatusOK, body))
			c := New(Config{
				BaseURL:         srv.URL + "/api/",
				DefaultMetadata: ai.Metadata{ai.MetaCreatedByUserID: "u1"},
			})

			images, err := c.GenerateImages(context.Background(), ai.ImageGenerationRequest{
				Model:  "dall-e-3",
				Vendor: ai.ImageVendorOpenAI,
				Prompt: "a cat",
			})
			require.NoError(t, err)
			assert.Equal(t, []ai.ImageGenerationResponse{{URL: "https://img/1.png", Seed: 7}}, images)

			rec := <-got
			assert.Equal(t, "/api/v1/generate/generate-image", rec.Path)
			assert.Equal(t, "a cat", rec.Payload["prompt"])
			assert.Equal(t, "openai", rec.Payload["imageVendor"])
			assert.NotContains(t, rec.Payload, "metadata")
			assert.NotContains(t, rec.Payload, "createdByUserId")
		})
	}
}

func TestGenerateImagesAsync(t *testing.T) {
	srv, _ := newServer(t, jsonHandler(http.StatusOK, `{"response": [{"base64": "AAAA"}, {"base64": "BBBB"}]}`))
	c := New(Config{BaseURL: srv.URL})

	images, err := c.GenerateImagesAsync(context.Background(), ai.ImageGenerationRequest{Prompt: "x"}).Result()
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "BBBB", images[1].Base64)
}

func TestGenerateImagesError(t *testing.T) {
	srv, _ := newServer(t, jsonHandler(http.StatusServiceUnavailable, `{"message":"down"}`))
	c := New(Config{BaseURL: srv.URL})

	_, err := c.GenerateImages(context.Background(), ai.ImageGenerationRequest{Prompt: "x"})
	assert.ErrorIs(t, err, ai.ErrNotAvailable)
	assert.True(t, ai.IsTransient(err))
}
