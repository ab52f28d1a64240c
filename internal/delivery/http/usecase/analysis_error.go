package usecase

import (
	"errors"
	"fmt"

	"github.com/evandrarf/codetutor/internal/delivery/http/domain"
)

type ErrorKind int

const (
	KindEmptyInput ErrorKind = iota + 1
	KindEmptyResponse
	KindMalformedResponse
	KindFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindEmptyInput:
		return "empty_input"
	case KindEmptyResponse:
		return "empty_response"
	case KindMalformedResponse:
		return "malformed_response"
	case KindFailed:
		return "analysis_failed"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is. They match any AnalysisError of the same kind.
var (
	ErrEmptyInput        = &AnalysisError{Kind: KindEmptyInput}
	ErrEmptyResponse     = &AnalysisError{Kind: KindEmptyResponse}
	ErrMalformedResponse = &AnalysisError{Kind: KindMalformedResponse}
	ErrAnalysisFailed    = &AnalysisError{Kind: KindFailed}
)

type AnalysisError struct {
	Kind  ErrorKind
	Cause error
}

func newAnalysisError(kind ErrorKind, cause error) *AnalysisError {
	return &AnalysisError{Kind: kind, Cause: cause}
}

func (e *AnalysisError) Error() string {
	if e.Cause == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Cause)
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

func (e *AnalysisError) Is(target error) bool {
	t, ok := target.(*AnalysisError)
	return ok && t.Kind == e.Kind
}

// UserMessage collapses any analysis failure into the short text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var analysisErr *AnalysisError
	if errors.As(err, &analysisErr) && analysisErr.Kind == KindEmptyInput {
		return domain.CODE_ANALYSIS_EMPTY_INPUT
	}
	return domain.CODE_ANALYSIS_GENERIC_FAILURE
}
