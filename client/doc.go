// Package client provides the HTTP client for a GPTRouter service.
//
// The Client offers:
//
//   - Unary generation: Generate, GenerateImages, and the raw Call primitive
//   - Streaming generation over Server-Sent Events: GenerateStream and StreamEvents
//   - Async variants of each, returning a Future or a channel
//   - Event emission: Observable operations via channel
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
//	    model.GPT4oMini.Request(gptrouter.Message{Role: gptrouter.RoleUser, Content: "Hi"}),
//	}, gptrouter.WithTag("greeting"))
//
// # Streaming
//
//	s, err := c.GenerateStream(ctx, reqs)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for chunk, err := range s.All() {
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Print(chunk.Data.Text)
//	}
//
// Lines that are not JSON data frames are skipped. A frame with
// "event": "error" ends the stream with a *gptrouter.StreamingError.
//
// # Async
//
// Every blocking call has an Async variant that runs the same code on a
// goroutine:
//
//	f := c.GenerateAsync(ctx, reqs)
//	// ...
//	resp, err := f.Await(ctx)
//
// # Timeouts
//
// Config.Timeout (default 60s) bounds a whole unary request; exceeding it
// returns *gptrouter.APITimeoutError. For streams it bounds each wait for
// data instead, and exceeding it returns *gptrouter.StreamTimeoutError.
//
// # Events
//
// Observe operations via an event channel:
//
//	events := make(chan client.Event, 100)
//	c := client.New(client.Config{BaseURL: url, APIKey: key, Events: events})
//
//	go func() {
//	    for e := range events {
//	        fmt.Printf("[%s] %s took %v\n", e.Type, e.Operation, e.Duration)
//	    }
//	}()
package client
