package llm

import (
	"context"
	"fmt"
	"strings"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Generator produces a single JSON document for a structured generation request.
type Generator interface {
	GenerateJSON(ctx context.Context, req GenerateRequest) (string, error)
}

type GenerateRequest struct {
	SystemInstruction string
	Prompt            string
	Schema            *Schema
	Temperature       float32
}

// Schema is a provider neutral subset of JSON schema.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Ordering    []string           `json:"-"`
}

type ProviderConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

func New(provider Provider, cfg ProviderConfig) (Generator, error) {
	switch Provider(strings.ToLower(string(provider))) {
	case ProviderGemini, "":
		return NewGeminiClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	case ProviderOpenAI:
		return NewOpenAIClient(cfg.APIKey, cfg.Model, cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", provider)
	}
}
