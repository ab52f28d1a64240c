package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/evandrarf/codetutor/internal/delivery/http/domain"
	"github.com/evandrarf/codetutor/internal/pkg/llm"
	"github.com/sirupsen/logrus"
)

const validPayload = `{
  "language": "Python",
  "purpose": "Prints a greeting",
  "stepByStep": "1. Calls print",
  "usage": "python hi.py",
  "critique": "None",
  "improvedCode": "print('hi')\n",
  "studentSummary": {
    "summaryText": "A tiny program.",
    "keyConcepts": ["functions", "strings"],
    "difficulty": "Beginner",
    "nextSteps": "Learn variables."
  }
}`

type fakeGenerator struct {
	mu    sync.Mutex
	text  string
	err   error
	calls []llm.GenerateRequest
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, req llm.GenerateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	return f.text, f.err
}

func (f *fakeGenerator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestUsecase(gen llm.Generator) CodeAnalysisUsecase {
	return NewCodeAnalysisUsecase(CodeAnalysisConfig{Generator: gen, Log: quietLogger()})
}

func TestAnalyze_WellFormedResponse(t *testing.T) {
	gen := &fakeGenerator{text: validPayload}
	result, err := newTestUsecase(gen).Analyze(context.Background(), "print('hi')")
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.Language != "Python" {
		t.Errorf("Expected language Python, got %q", result.Language)
	}
	if result.Purpose != "Prints a greeting" {
		t.Errorf("Expected purpose to round trip, got %q", result.Purpose)
	}
	if result.ImprovedCode != "print('hi')\n" {
		t.Errorf("Expected improved code verbatim, got %q", result.ImprovedCode)
	}
	concepts := result.StudentSummary.KeyConcepts
	if len(concepts) != 2 || concepts[0] != "functions" || concepts[1] != "strings" {
		t.Errorf("Expected ordered key concepts, got %v", concepts)
	}
	if result.StudentSummary.Difficulty != "Beginner" {
		t.Errorf("Expected difficulty Beginner, got %q", result.StudentSummary.Difficulty)
	}
}

func TestAnalyze_BuildsRequest(t *testing.T) {
	gen := &fakeGenerator{text: validPayload}
	snippet := "for i in range(3):\n    print(i)"
	if _, err := newTestUsecase(gen).Analyze(context.Background(), snippet); err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if gen.callCount() != 1 {
		t.Fatalf("Expected 1 call, got %d", gen.callCount())
	}
	req := gen.calls[0]
	if req.SystemInstruction != systemInstruction {
		t.Errorf("Unexpected system instruction %q", req.SystemInstruction)
	}
	if !strings.Contains(req.Prompt, "```\n"+snippet+"\n```") {
		t.Errorf("Expected snippet verbatim inside a fenced block, got %q", req.Prompt)
	}
	if req.Temperature != DefaultTemperature {
		t.Errorf("Expected temperature %v, got %v", DefaultTemperature, req.Temperature)
	}
	if req.Schema == nil || len(req.Schema.Required) != 7 {
		t.Fatalf("Expected schema with 7 required fields, got %+v", req.Schema)
	}
	summary := req.Schema.Properties["studentSummary"]
	if summary == nil || len(summary.Required) != 4 {
		t.Errorf("Expected studentSummary with 4 required fields, got %+v", summary)
	}
}

func TestAnalyze_Temperature(t *testing.T) {
	zero, low := float32(0), float32(0.1)
	tests := []struct {
		name        string
		temperature *float32
		want        float32
	}{
		{name: "unset uses default", temperature: nil, want: DefaultTemperature},
		{name: "zero is kept", temperature: &zero, want: 0},
		{name: "custom", temperature: &low, want: 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: validPayload}
			uc := NewCodeAnalysisUsecase(CodeAnalysisConfig{Generator: gen, Temperature: tt.temperature, Log: quietLogger()})
			if _, err := uc.Analyze(context.Background(), "x = 1"); err != nil {
				t.Fatalf("Analyze returned error: %v", err)
			}
			if gen.calls[0].Temperature != tt.want {
				t.Errorf("Expected temperature %v, got %v", tt.want, gen.calls[0].Temperature)
			}
		})
	}
}

func TestAnalyze_Failures(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		err     error
		wantErr error
	}{
		{name: "empty payload", text: "", wantErr: ErrEmptyResponse},
		{name: "whitespace payload", text: "  \n\t", wantErr: ErrEmptyResponse},
		{name: "invalid json", text: "{not json", wantErr: ErrMalformedResponse},
		{name: "json array", text: `[1,2]`, wantErr: ErrMalformedResponse},
		{name: "missing field", text: `{"language":"Go"}`, wantErr: ErrMalformedResponse},
		{name: "missing key concepts", text: strings.Replace(validPayload, `"keyConcepts": ["functions", "strings"],`, "", 1), wantErr: ErrMalformedResponse},
		{name: "mistyped key concepts", text: strings.Replace(validPayload, `["functions", "strings"]`, `"functions"`, 1), wantErr: ErrMalformedResponse},
		{name: "mistyped language", text: strings.Replace(validPayload, `"Python"`, `42`, 1), wantErr: ErrMalformedResponse},
		{name: "transport error", err: errors.New("dial tcp: connection refused"), wantErr: ErrAnalysisFailed},
		{name: "rate limited", err: errors.New("429 resource exhausted"), wantErr: ErrAnalysisFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{text: tt.text, err: tt.err}
			result, err := newTestUsecase(gen).Analyze(context.Background(), "print('hi')")
			if result != nil {
				t.Errorf("Expected no result, got %+v", result)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if UserMessage(err) != domain.CODE_ANALYSIS_GENERIC_FAILURE {
				t.Errorf("Expected generic user message, got %q", UserMessage(err))
			}
			// No retry: every failure costs exactly one call.
			if gen.callCount() != 1 {
				t.Errorf("Expected exactly 1 call, got %d", gen.callCount())
			}
		})
	}
}

func TestAnalyze_FailedKeepsCause(t *testing.T) {
	cause := errors.New("401 unauthenticated")
	_, err := newTestUsecase(&fakeGenerator{err: cause}).Analyze(context.Background(), "x")
	if !errors.Is(err, cause) {
		t.Errorf("Expected cause to be reachable via errors.Is, got %v", err)
	}
	var analysisErr *AnalysisError
	if !errors.As(err, &analysisErr) || analysisErr.Kind != KindFailed {
		t.Errorf("Expected AnalysisError of kind Failed, got %v", err)
	}
}

func TestAnalyze_EmptyInputMakesNoCall(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t "} {
		gen := &fakeGenerator{text: validPayload}
		_, err := newTestUsecase(gen).Analyze(context.Background(), input)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Analyze(%q): expected ErrEmptyInput, got %v", input, err)
		}
		if UserMessage(err) != domain.CODE_ANALYSIS_EMPTY_INPUT {
			t.Errorf("Analyze(%q): unexpected message %q", input, UserMessage(err))
		}
		if gen.callCount() != 0 {
			t.Errorf("Analyze(%q): expected no call, got %d", input, gen.callCount())
		}
	}
}

func TestParseAnalysis_EdgeCases(t *testing.T) {
	fenced := "```json\n" + validPayload + "\n```"
	result, err := parseAnalysis(fenced)
	if err != nil {
		t.Fatalf("Expected fenced payload to parse, got %v", err)
	}
	if result.Language != "Python" {
		t.Errorf("Expected Python, got %q", result.Language)
	}

	empty := strings.Replace(validPayload, `["functions", "strings"]`, `[]`, 1)
	result, err = parseAnalysis(empty)
	if err != nil {
		t.Fatalf("Expected empty key concepts to be accepted, got %v", err)
	}
	if result.StudentSummary.KeyConcepts == nil || len(result.StudentSummary.KeyConcepts) != 0 {
		t.Errorf("Expected non-nil empty key concepts, got %#v", result.StudentSummary.KeyConcepts)
	}

	blank := strings.Replace(validPayload, `"None"`, `""`, 1)
	if _, err := parseAnalysis(blank); err != nil {
		t.Errorf("Expected present-but-empty critique to be accepted, got %v", err)
	}
}

func TestMissingFields_ListsPaths(t *testing.T) {
	_, err := parseAnalysis(`{"language":"Go","studentSummary":{"difficulty":"Beginner"}}`)
	if err == nil {
		t.Fatal("Expected error")
	}
	for _, path := range []string{"purpose", "improvedCode", "studentSummary.keyConcepts", "studentSummary.nextSteps"} {
		if !strings.Contains(err.Error(), path) {
			t.Errorf("Expected %q in error %q", path, err.Error())
		}
	}
	if strings.Contains(err.Error(), "studentSummary.difficulty") {
		t.Errorf("difficulty is present and should not be listed: %q", err.Error())
	}
}

func TestUserMessage(t *testing.T) {
	if UserMessage(nil) != "" {
		t.Error("Expected empty message for nil error")
	}
	if UserMessage(errors.New("boom")) != domain.CODE_ANALYSIS_GENERIC_FAILURE {
		t.Error("Expected generic message for foreign error")
	}
	if UserMessage(newAnalysisError(KindEmptyInput, nil)) != domain.CODE_ANALYSIS_EMPTY_INPUT {
		t.Error("Expected empty input message")
	}
}
