// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/expert-finder/internal/embed"
	"github.com/pdiddy/expert-finder/internal/gen"
	"github.com/pdiddy/expert-finder/pkg/types"
)

// newGenBackend builds the text-generation backend for a provider,
// pulling the API key from the loaded secrets.
func newGenBackend(ctx context.Context, provider, model string) (gen.Backend, error) {
	switch provider {
	case "qwen":
		key := loadedSecrets.Get("qwen-api-key")
		if key == "" {
			return nil, fmt.Errorf("qwen API key not found: add .secrets/qwen-api-key or set QWEN_API_KEY")
		}
		return &gen.QwenBackend{APIKey: key, Model: model, Client: http.DefaultClient}, nil
	case "gemini":
		key := loadedSecrets.Get("gemini-api-key")
		if key == "" {
			return nil, fmt.Errorf("gemini API key not found: add .secrets/gemini-api-key or set GEMINI_API_KEY")
		}
		return gen.NewGeminiBackend(ctx, key, model)
	}
	return nil, fmt.Errorf("unsupported generation provider %q: use qwen or gemini", provider)
}

// newEmbedEngine builds the embedding engine for a provider, pulling
// the API key from the loaded secrets.
func newEmbedEngine(ctx context.Context, provider, model string) (embed.Engine, error) {
	cfg := types.EmbedConfig{Provider: provider, Model: model}
	switch provider {
	case "genai":
		cfg.APIKey = loadedSecrets.Get("gemini-api-key")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("gemini API key not found: add .secrets/gemini-api-key or set GEMINI_API_KEY")
		}
	case "openai":
		cfg.APIKey = loadedSecrets.Get("qwen-api-key")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("qwen API key not found: add .secrets/qwen-api-key or set QWEN_API_KEY")
		}
	}
	return embed.NewEngine(ctx, cfg)
}
