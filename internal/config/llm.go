package config

import (
	"strings"

	"github.com/evandrarf/codetutor/internal/pkg/llm"
	"github.com/evandrarf/codetutor/internal/pkg/validate"
	"github.com/spf13/viper"
)

type LLMConfig struct {
	Provider    string             `mapstructure:"provider" validate:"required,oneof=gemini openai"`
	Temperature float32            `mapstructure:"temperature" validate:"gte=0,lte=2"`
	Gemini      llm.ProviderConfig `mapstructure:"gemini"`
	OpenAI      llm.ProviderConfig `mapstructure:"openai"`
}

// NewLLMConfig reads the llm section. API keys are not checked here: a
// missing key only shows up when an analysis is requested.
func NewLLMConfig(config *viper.Viper, validator *validate.Validator) (LLMConfig, error) {
	cfg := LLMConfig{
		Provider:    strings.ToLower(strings.TrimSpace(config.GetString("llm.provider"))),
		Temperature: float32(config.GetFloat64("llm.temperature")),
		Gemini: llm.ProviderConfig{
			APIKey:  config.GetString("llm.gemini.api_key"),
			Model:   config.GetString("llm.gemini.model"),
			BaseURL: config.GetString("llm.gemini.base_url"),
		},
		OpenAI: llm.ProviderConfig{
			APIKey:  config.GetString("llm.openai.api_key"),
			Model:   config.GetString("llm.openai.model"),
			BaseURL: config.GetString("llm.openai.base_url"),
		},
	}

	if err := validator.Struct(cfg); err != nil {
		return LLMConfig{}, err
	}
	return cfg, nil
}

func (c LLMConfig) Generator() (llm.Generator, error) {
	switch llm.Provider(c.Provider) {
	case llm.ProviderOpenAI:
		return llm.New(llm.ProviderOpenAI, c.OpenAI)
	default:
		return llm.New(llm.ProviderGemini, c.Gemini)
	}
}
