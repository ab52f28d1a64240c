package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

func NewViper() *viper.Viper {
	config := viper.New()

	if os.Getenv("ENV") == "production" {
		config.SetConfigName("config.prod")
	} else {
		config.SetConfigName("config")
	}

	config.SetConfigType("yaml")
	config.AddConfigPath(".")

	SetDefaults(config)
	config.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	config.AutomaticEnv()
	_ = config.BindEnv("llm.gemini.api_key", "LLM_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY")
	_ = config.BindEnv("llm.openai.api_key", "LLM_OPENAI_API_KEY", "OPENAI_API_KEY")

	if err := config.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	return config
}

func SetDefaults(config *viper.Viper) {
	config.SetDefault("app.name", "CodeTutor AI")
	config.SetDefault("api.listen", ":8080")
	config.SetDefault("api.prefork", false)
	config.SetDefault("api.cors.origins", "*")
	config.SetDefault("api.body_limit", 16*1024*1024)
	config.SetDefault("log.level", "info")
	config.SetDefault("log.format", "text")
	config.SetDefault("llm.provider", "gemini")
	config.SetDefault("llm.temperature", 0.3)
	config.SetDefault("llm.gemini.model", "gemini-2.5-flash")
	config.SetDefault("llm.openai.model", "gpt-4o-mini")
	config.SetDefault("session.ttl", "2h")
	config.SetDefault("session.sweep_interval", "5m")
	config.SetDefault("session.max_sessions", 10000)
}
