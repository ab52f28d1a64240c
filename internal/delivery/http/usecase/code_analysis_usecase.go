package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/evandrarf/codetutor/internal/delivery/http/entity"
	"github.com/evandrarf/codetutor/internal/pkg/llm"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

const DefaultTemperature float32 = 0.3

type CodeAnalysisUsecase interface {
	Analyze(ctx context.Context, sourceText string) (*entity.AnalysisResponse, error)
}

type CodeAnalysisConfig struct {
	Generator llm.Generator
	// Temperature is sent as is, zero included. Nil means DefaultTemperature.
	Temperature *float32
	Log         *logrus.Logger
}

type codeAnalysisUsecase struct {
	cfg         CodeAnalysisConfig
	temperature float32
}

func NewCodeAnalysisUsecase(cfg CodeAnalysisConfig) CodeAnalysisUsecase {
	temperature := DefaultTemperature
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	if cfg.Log == nil {
		cfg.Log = logrus.StandardLogger()
	}
	return &codeAnalysisUsecase{cfg: cfg, temperature: temperature}
}

// Analyze makes exactly one call to the model. There is no retry and no
// timeout beyond what ctx carries.
func (u *codeAnalysisUsecase) Analyze(ctx context.Context, sourceText string) (*entity.AnalysisResponse, error) {
	if strings.TrimSpace(sourceText) == "" {
		return nil, newAnalysisError(KindEmptyInput, nil)
	}

	log := u.cfg.Log.WithField("snippet_len", len(sourceText))

	text, err := u.cfg.Generator.GenerateJSON(ctx, llm.GenerateRequest{
		SystemInstruction: systemInstruction,
		Prompt:            buildPrompt(sourceText),
		Schema:            analysisSchema,
		Temperature:       u.temperature,
	})
	if err != nil {
		log.WithError(err).Error("code analysis call failed")
		return nil, newAnalysisError(KindFailed, err)
	}

	result, err := parseAnalysis(text)
	if err != nil {
		log.WithError(err).WithField("payload_len", len(text)).Warn("code analysis returned unusable payload")
		return nil, err
	}

	log.WithField("language", result.Language).Info("code analysis completed")
	return result, nil
}

func parseAnalysis(text string) (*entity.AnalysisResponse, error) {
	clean := strings.TrimSpace(text)
	if clean == "" {
		return nil, newAnalysisError(KindEmptyResponse, nil)
	}

	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	if !gjson.Valid(clean) {
		return nil, newAnalysisError(KindMalformedResponse, fmt.Errorf("AI output is not valid json"))
	}
	parsed := gjson.Parse(clean)
	if !parsed.IsObject() {
		return nil, newAnalysisError(KindMalformedResponse, fmt.Errorf("AI output is not a json object"))
	}

	if missing := missingFields(parsed); len(missing) > 0 {
		return nil, newAnalysisError(KindMalformedResponse, fmt.Errorf("missing or mistyped fields: %s", strings.Join(missing, ", ")))
	}

	var result entity.AnalysisResponse
	if err := json.Unmarshal([]byte(clean), &result); err != nil {
		return nil, newAnalysisError(KindMalformedResponse, err)
	}
	if result.StudentSummary.KeyConcepts == nil {
		result.StudentSummary.KeyConcepts = []string{}
	}

	return &result, nil
}

// missingFields lists the required paths that are absent or carry the wrong JSON type.
func missingFields(doc gjson.Result) []string {
	var missing []string

	for _, field := range analysisFields {
		value := doc.Get(field)
		switch field {
		case "studentSummary":
			if !value.IsObject() {
				missing = append(missing, field)
			}
		default:
			if value.Type != gjson.String {
				missing = append(missing, field)
			}
		}
	}

	summary := doc.Get("studentSummary")
	if !summary.IsObject() {
		return missing
	}

	for _, field := range studentSummaryFields {
		value := summary.Get(field)
		path := "studentSummary." + field
		if field == "keyConcepts" {
			if !value.IsArray() {
				missing = append(missing, path)
				continue
			}
			for _, concept := range value.Array() {
				if concept.Type != gjson.String {
					missing = append(missing, path)
					break
				}
			}
			continue
		}
		if value.Type != gjson.String {
			missing = append(missing, path)
		}
	}

	return missing
}
