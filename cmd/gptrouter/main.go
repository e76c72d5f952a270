// Command gptrouter sends requests to a GPTRouter service.
//
// Usage:
//
//	gptrouter generate [-model gpt-4o-mini] [-provider openai] [-fallback claude-3-haiku-20240307] <prompt>
//	gptrouter generate -model azure/gpt-4o <prompt>
//	gptrouter stream   [-model gpt-4o-mini] [-provider openai] <prompt>
//	gptrouter image    [-model dall-e-3] [-n 1] [-size 1024x1024] <prompt>
//
// Configuration is read from the environment (or a .env file):
// GPTROUTER_BASE_URL, GPTROUTER_API_KEY, GPTROUTER_TIMEOUT,
// GPTROUTER_USER_ID, GPTROUTER_TAG and GPTROUTER_LOG_LEVEL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	ai "github.com/spetersoncode/gptrouter"
	"github.com/spetersoncode/gptrouter/client"
	"github.com/spetersoncode/gptrouter/model"
)

var chatModels = map[string]model.ChatModel{}
var imageModels = map[string]model.ImageModel{}

// Chat models are registered as provider/id, and also as the bare id
// when no earlier model claimed it. AzureGPT4o shares its id with GPT4o,
// so it is only reachable as azure/gpt-4o.
func init() {
	for _, m := range []model.ChatModel{
		model.Claude3Haiku, model.Claude3Sonnet, model.Claude3Opus, model.Claude35Sonnet, model.ClaudeInstant12,
		model.GPT4o, model.GPT4oMini, model.GPT4Turbo, model.GPT35Turbo,
		model.AzureGPT35, model.AzureGPT4o,
		model.CommandR, model.CommandRPlus, model.CommandLight,
		model.Gemini15Pro, model.Gemini15Flash,
	} {
		chatModels[m.Provider().String()+"/"+m.String()] = m
		if _, taken := chatModels[m.String()]; !taken {
			chatModels[m.String()] = m
		}
	}
	for _, m := range []model.ImageModel{model.DallE2, model.DallE3, model.StableDiffXL} {
		imageModels[m.String()] = m
	}
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	if cmd == "help" || cmd == "-h" || cmd == "--help" {
		printUsage()
		return
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	c := client.New(client.Config{
		BaseURL:         cfg.BaseURL,
		APIKey:          cfg.APIKey,
		Timeout:         cfg.Timeout,
		DefaultMetadata: cfg.Metadata(),
	}, client.WithLogger(logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case "generate":
		err = runGenerate(ctx, c, os.Args[2:])
	case "stream":
		err = runStream(ctx, c, os.Args[2:])
	case "image":
		err = runImage(ctx, c, os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		logger.Error("request failed", "command", cmd, "error", err, "kind", string(ai.KindOf(err)), "transient", ai.IsTransient(err))
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: gptrouter <command> [flags] <prompt>

Commands:
  generate  Send a prompt and print the response
  stream    Send a prompt and print the response as it streams
  image     Generate images and print their URLs`)
}

// modelFlags registers the flags shared by generate and stream.
type modelFlags struct {
	model    *string
	provider *string
	fallback *string
	system   *string
}

func newModelFlags(fs *flag.FlagSet) modelFlags {
	return modelFlags{
		model:    fs.String("model", model.GPT4oMini.String(), "Model to request, as id or provider/id (e.g. azure/gpt-4o)"),
		provider: fs.String("provider", "", "Provider override (defaults to the model's provider)"),
		fallback: fs.String("fallback", "", "Comma-separated models (id or provider/id) to try in order if the first fails"),
		system:   fs.String("system", "", "System prompt"),
	}
}

// requests builds the ordered request list for prompt.
func (f modelFlags) requests(prompt string) ([]ai.ModelGenerationRequest, error) {
	var msgs []ai.Message
	if *f.system != "" {
		msgs = append(msgs, ai.Message{Role: ai.RoleSystem, Content: *f.system})
	}
	msgs = append(msgs, ai.Message{Role: ai.RoleUser, Content: prompt})

	ids := []string{*f.model}
	if *f.fallback != "" {
		ids = append(ids, strings.Split(*f.fallback, ",")...)
	}

	reqs := make([]ai.ModelGenerationRequest, 0, len(ids))
	for i, id := range ids {
		id = strings.TrimSpace(id)
		m, known := chatModels[id]
		provider := ai.Provider(*f.provider)
		switch {
		case i == 0 && provider != "":
			reqs = append(reqs, ai.NewModelRequest(provider, id, msgs...))
		case known:
			reqs = append(reqs, m.Request(msgs...))
		default:
			return nil, fmt.Errorf("unknown model %q: pass -provider for models outside the built-in list", id)
		}
	}
	return reqs, nil
}

func promptArg(fs *flag.FlagSet) (string, error) {
	prompt := strings.Join(fs.Args(), " ")
	if prompt == "" {
		return "", errors.New("a prompt is required")
	}
	return prompt, nil
}

func runGenerate(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	mf := newModelFlags(fs)
	fs.Parse(args)

	prompt, err := promptArg(fs)
	if err != nil {
		return err
	}
	reqs, err := mf.requests(prompt)
	if err != nil {
		return err
	}

	resp, err := c.Generate(ctx, reqs)
	if err != nil {
		return err
	}
	if resp == nil {
		fmt.Fprintln(os.Stderr, "[accepted, no content]")
		return nil
	}

	fmt.Println(resp.Text())
	if resp.Meta != nil && resp.Meta.Usage != nil {
		u := *resp.Meta.Usage
		fmt.Fprintf(os.Stderr, "[%s via %s, tokens: %d in, %d out", resp.Model, resp.Provider, u.PromptTokens, u.CompletionTokens)
		m, ok := chatModels[resp.Provider.String()+"/"+resp.Model]
		if !ok {
			m, ok = chatModels[resp.Model]
		}
		if ok && m.Pricing().Known() {
			fmt.Fprintf(os.Stderr, ", ~$%.6f", m.Cost(u))
		}
		fmt.Fprintln(os.Stderr, "]")
	}
	return nil
}

func runStream(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("stream", flag.ExitOnError)
	mf := newModelFlags(fs)
	fs.Parse(args)

	prompt, err := promptArg(fs)
	if err != nil {
		return err
	}
	reqs, err := mf.requests(prompt)
	if err != nil {
		return err
	}

	s, err := c.GenerateStream(ctx, reqs)
	if err != nil {
		return err
	}
	for chunk, err := range s.All() {
		if err != nil {
			fmt.Println()
			return err
		}
		fmt.Print(chunk.Text())
		if chunk.Data.Usage != nil {
			fmt.Fprintf(os.Stderr, "\n[tokens: %d in, %d out]", chunk.Data.Usage.PromptTokens, chunk.Data.Usage.CompletionTokens)
		}
	}
	fmt.Println()
	return nil
}

func runImage(ctx context.Context, c *client.Client, args []string) error {
	fs := flag.NewFlagSet("image", flag.ExitOnError)
	modelID := fs.String("model", model.DallE3.String(), "Image model")
	n := fs.Int("n", 1, "Number of images")
	size := fs.String("size", "", "Image size, e.g. 1024x1024")
	fs.Parse(args)

	prompt, err := promptArg(fs)
	if err != nil {
		return err
	}
	m, ok := imageModels[*modelID]
	if !ok {
		return fmt.Errorf("unknown image model %q", *modelID)
	}

	req := m.Request(prompt)
	req.NumImages = *n
	req.Size = *size

	images, err := c.GenerateImages(ctx, req)
	if err != nil {
		return err
	}
	for i, img := range images {
		switch {
		case img.URL != "":
			fmt.Printf("%d: %s\n", i+1, img.URL)
		default:
			fmt.Printf("%d: <base64, %d bytes>\n", i+1, len(img.Base64))
		}
	}
	fmt.Fprintf(os.Stderr, "[%d images, ~$%.4f]\n", len(images), m.Pricing().Cost(len(images)))
	return nil
}
