// Package gptrouter provides the request and response types for the
// GPTRouter generation service.
//
// GPTRouter accepts an ordered list of per-model generation requests and
// dispatches them to upstream providers, falling back down the list when
// a provider fails. This package holds the wire types, the metadata merge
// rules and the error taxonomy; the HTTP client lives in
// [github.com/spetersoncode/gptrouter/client].
//
// # Basic Usage
//
//	c := client.New(client.Config{
//	    BaseURL: "https://gpt-router.example.com",
//	    APIKey:  os.Getenv("GPTROUTER_API_KEY"),
//	    DefaultMetadata: gptrouter.Metadata{
//	        gptrouter.MetaCreatedByUserID: "user-1",
//	    },
//	})
//
//	resp, err := c.Generate(ctx, []gptrouter.ModelGenerationRequest{
//	    gptrouter.NewModelRequest(gptrouter.ProviderAnthropic, model.Claude3Haiku.String(),
//	        gptrouter.Message{Role: gptrouter.RoleUser, Content: "Hello"}),
//	    gptrouter.NewModelRequest(gptrouter.ProviderOpenAI, model.GPT4oMini.String(),
//	        gptrouter.Message{Role: gptrouter.RoleUser, Content: "Hello"}),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Text())
//
// # Errors
//
// Non-success responses are returned as [*APIError] with an [ErrorKind]
// derived from the status code. Match kinds with errors.Is:
//
//	if errors.Is(err, gptrouter.ErrTooManyRequests) {
//	    // back off
//	}
//
// Transport timeouts are [*APITimeoutError] for unary calls and
// [*StreamTimeoutError] while a stream is being read. An explicit error
// frame inside a stream is a [*StreamingError].
//
// The client never retries. [CategorizedError] exposes Retryable and
// RetryAfter for callers that want to add their own policy.
package gptrouter
