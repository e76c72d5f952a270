// Package model provides identifiers for models reachable through the router.
//
// Each model knows its provider, so a [ChatModel] can build a
// [gptrouter.ModelGenerationRequest] directly:
//
//	reqs := []gptrouter.ModelGenerationRequest{
//	    model.Claude3Haiku.Request(msgs...),
//	    model.GPT4oMini.Request(msgs...),
//	}
//	resp, err := c.Generate(ctx, reqs)
//
// The order of the slice is the fallback order the router uses.
//
// # Pricing
//
// Chat models carry per-million-token prices for rough cost estimates:
//
//	cost := model.GPT4o.Cost(*resp.Meta.Usage)
package model
