package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/evandrarf/codetutor/internal/delivery/http/domain"
	"github.com/evandrarf/codetutor/internal/delivery/http/entity"
	"github.com/sirupsen/logrus"
)

// AllowedExtensions is the set of file types accepted by the upload form.
var AllowedExtensions = []string{
	".js", ".jsx", ".ts", ".tsx", ".py", ".java", ".c", ".cpp", ".cs",
	".html", ".css", ".json", ".txt", ".rb", ".php", ".go", ".rs", ".swift",
}

var (
	ErrSessionBusy     = errors.New("analysis in progress")
	ErrUnsupportedFile = errors.New("unsupported file type")
)

func IsAllowedFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// TutorSession owns the interaction state of one browser: the snippet, the
// in-flight flag, the last result and the last error. At most one analysis
// runs at a time and a running analysis cannot be cancelled.
type TutorSession struct {
	analyzer CodeAnalysisUsecase
	log      *logrus.Logger

	mu        sync.Mutex
	state     entity.SessionState
	startedAt time.Time
	done      chan struct{}
}

func NewTutorSession(analyzer CodeAnalysisUsecase, log *logrus.Logger) *TutorSession {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &TutorSession{
		analyzer: analyzer,
		log:      log,
	}
}

func (s *TutorSession) Snapshot() entity.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// AnalysisStartedAt reports when the current analysis started, zero when idle.
func (s *TutorSession) AnalysisStartedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsAnalyzing {
		return time.Time{}
	}
	return s.startedAt
}

func (s *TutorSession) SetText(text string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsAnalyzing {
		return false
	}
	s.state.SourceText = text
	return true
}

func (s *TutorSession) Clear() bool {
	return s.SetText("")
}

// LoadFile replaces the snippet with the file content. The last loaded file wins.
func (s *TutorSession) LoadFile(name string, content []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.IsAnalyzing {
		return ErrSessionBusy
	}
	if !IsAllowedFile(name) {
		s.state.LastError = fmt.Sprintf("%s: %s", domain.CODE_ANALYSIS_UNSUPPORTED_FILE, filepath.Ext(name))
		return ErrUnsupportedFile
	}
	s.state.SourceText = strings.ToValidUTF8(string(content), "�")
	return nil
}

// RequestAnalysis starts an analysis of the current snippet in the background.
// It reports whether a call was issued. The call outlives ctx cancellation.
func (s *TutorSession) RequestAnalysis(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.IsAnalyzing {
		return false
	}
	if strings.TrimSpace(s.state.SourceText) == "" {
		s.state.LastError = domain.CODE_ANALYSIS_EMPTY_INPUT
		return false
	}

	s.state.LastError = ""
	s.state.LastResult = nil
	s.state.IsAnalyzing = true
	s.startedAt = time.Now()
	done := make(chan struct{})
	s.done = done

	go s.run(context.WithoutCancel(ctx), s.state.SourceText, done)
	return true
}

func (s *TutorSession) run(ctx context.Context, sourceText string, done chan struct{}) {
	defer close(done)

	result, err := s.analyzer.Analyze(ctx, sourceText)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsAnalyzing = false
	if err != nil || result == nil {
		msg := UserMessage(err)
		if msg == "" {
			msg = domain.CODE_ANALYSIS_UNEXPECTED_FAILURE
		}
		s.log.WithError(err).Debug("tutor session analysis ended without result")
		s.state.LastError = msg
		s.state.LastResult = nil
		return
	}
	s.state.LastResult = result
}

// Wait blocks until no analysis is in flight or ctx is done.
func (s *TutorSession) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()

	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Reset returns to the empty state. It does not touch the in-flight flag.
func (s *TutorSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.SourceText = ""
	s.state.LastResult = nil
	s.state.LastError = ""
}
