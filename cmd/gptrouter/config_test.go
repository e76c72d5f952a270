package main

import (
	"flag"
	"log/slog"
	"testing"
	"time"

	ai "github.com/spetersoncode/gptrouter"
	"github.com/spetersoncode/gptrouter/client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("GPTROUTER_BASE_URL", "http://router")
		t.Setenv("GPTROUTER_API_KEY", "k")
		t.Setenv("GPTROUTER_TIMEOUT", "")
		t.Setenv("GPTROUTER_USER_ID", "")
		t.Setenv("GPTROUTER_TAG", "")
		t.Setenv("GPTROUTER_LOG_LEVEL", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, client.DefaultTimeout, cfg.Timeout)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Nil(t, cfg.Metadata())
	})

	t.Run("reads overrides", func(t *testing.T) {
		t.Setenv("GPTROUTER_BASE_URL", "http://router")
		t.Setenv("GPTROUTER_API_KEY", "k")
		t.Setenv("GPTROUTER_TIMEOUT", "5s")
		t.Setenv("GPTROUTER_USER_ID", "u1")
		t.Setenv("GPTROUTER_TAG", "cli")
		t.Setenv("GPTROUTER_LOG_LEVEL", "debug")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, ai.Metadata{ai.MetaCreatedByUserID: "u1", ai.MetaTag: "cli"}, cfg.Metadata())

		level, err := cfg.Level()
		require.NoError(t, err)
		assert.Equal(t, slog.LevelDebug, level)
	})

	t.Run("missing base url", func(t *testing.T) {
		t.Setenv("GPTROUTER_BASE_URL", "")
		t.Setenv("GPTROUTER_API_KEY", "k")

		_, err := LoadConfig()
		assert.ErrorContains(t, err, "GPTROUTER_BASE_URL")
	})
}

func TestConfigValidate(t *testing.T) {
	valid := func() Config {
		return Config{BaseURL: "http://r", APIKey: "k", Timeout: time.Second, LogLevel: "warn"}
	}

	tests := []struct {
		name   string
		modify func(*Config)
		errMsg string
	}{
		{"valid", func(c *Config) {}, ""},
		{"missing key", func(c *Config) { c.APIKey = "" }, "GPTROUTER_API_KEY"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "GPTROUTER_TIMEOUT"},
		{"tag without user", func(c *Config) { c.Tag = "t" }, "GPTROUTER_USER_ID"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "unknown log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestModelFlagsRequests(t *testing.T) {
	parse := func(args ...string) modelFlags {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		mf := newModelFlags(fs)
		require.NoError(t, fs.Parse(args))
		return mf
	}

	t.Run("fallback order", func(t *testing.T) {
		reqs, err := parse("-model", "gpt-4o", "-fallback", "claude-3-haiku-20240307, command-r").requests("hi")
		require.NoError(t, err)
		require.Len(t, reqs, 3)
		assert.Equal(t, "gpt-4o", reqs[0].Model)
		assert.Equal(t, ai.ProviderAnthropic, reqs[1].Provider)
		assert.Equal(t, ai.ProviderCohere, reqs[2].Provider)
	})

	t.Run("provider override", func(t *testing.T) {
		reqs, err := parse("-model", "my-deploy", "-provider", "azure", "-system", "be brief").requests("hi")
		require.NoError(t, err)
		require.Len(t, reqs, 1)
		assert.Equal(t, ai.ProviderAzureOpenAI, reqs[0].Provider)
		assert.Equal(t, []ai.Message{
			{Role: ai.RoleSystem, Content: "be brief"},
			{Role: ai.RoleUser, Content: "hi"},
		}, reqs[0].PromptParams.Messages)
	})

	t.Run("azure models", func(t *testing.T) {
		reqs, err := parse("-model", "azure/gpt-4o", "-fallback", "gpt-35-turbo,gpt-4o").requests("hi")
		require.NoError(t, err)
		require.Len(t, reqs, 3)

		assert.Equal(t, "gpt-4o", reqs[0].Model)
		assert.Equal(t, ai.ProviderAzureOpenAI, reqs[0].Provider)
		assert.Equal(t, "gpt-35-turbo", reqs[1].Model)
		assert.Equal(t, ai.ProviderAzureOpenAI, reqs[1].Provider)
		assert.Equal(t, ai.ProviderOpenAI, reqs[2].Provider, "bare id keeps the first registered model")
	})

	t.Run("unknown model", func(t *testing.T) {
		_, err := parse("-model", "mystery").requests("hi")
		assert.ErrorContains(t, err, "mystery")
	})
}
