package config

import (
	"context"

	"github.com/evandrarf/codetutor/internal/delivery/http/handler"
	"github.com/evandrarf/codetutor/internal/delivery/http/middleware"
	"github.com/evandrarf/codetutor/internal/delivery/http/repository"
	"github.com/evandrarf/codetutor/internal/delivery/http/route"
	"github.com/evandrarf/codetutor/internal/delivery/http/usecase"
	"github.com/evandrarf/codetutor/internal/pkg/llm"
	"github.com/evandrarf/codetutor/internal/pkg/validate"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type BootstrapConfig struct {
	Ctx       context.Context
	Api       *fiber.App
	Config    *viper.Viper
	Log       *logrus.Logger
	Validator *validate.Validator
	// Generator overrides the provider built from config, mainly for tests.
	Generator llm.Generator
}

func Bootstrap(config *BootstrapConfig) (repository.SessionRepository, error) {
	llmConfig, err := NewLLMConfig(config.Config, config.Validator)
	if err != nil {
		return nil, err
	}

	generator := config.Generator
	if generator == nil {
		generator, err = llmConfig.Generator()
		if err != nil {
			return nil, err
		}
	}

	codeAnalysisUsecase := usecase.NewCodeAnalysisUsecase(usecase.CodeAnalysisConfig{
		Generator:   generator,
		Temperature: &llmConfig.Temperature,
		Log:         config.Log,
	})
	sessions := repository.NewSessionRepository(
		codeAnalysisUsecase,
		config.Config.GetDuration("session.ttl"),
		config.Config.GetInt("session.max_sessions"),
		config.Log,
	)

	ctx := config.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	sessions.StartSweeper(ctx, config.Config.GetDuration("session.sweep_interval"))

	mid := middleware.NewMiddleware(&middleware.MiddlewareConfig{
		Log:      config.Log,
		Config:   config.Config,
		Sessions: sessions,
	})

	pageHandler := handler.NewPageHandler(config.Log, config.Config.GetString("app.name"))
	codeAnalysisHandler := handler.NewCodeAnalysisHandler(config.Validator, config.Log, codeAnalysisUsecase)

	route.Setup(&route.RouteConfig{
		Api:                 config.Api,
		Middleware:          mid,
		PageHandler:         pageHandler,
		CodeAnalysisHandler: codeAnalysisHandler,
	})

	config.Log.WithField("provider", llmConfig.Provider).Info("code tutor bootstrapped")
	return sessions, nil
}
