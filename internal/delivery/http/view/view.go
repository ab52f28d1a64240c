package view

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/evandrarf/codetutor/internal/delivery/http/entity"
	"github.com/evandrarf/codetutor/internal/delivery/http/usecase"
	"github.com/evandrarf/codetutor/internal/pkg/mapper"
	"github.com/gofiber/template/html/v2"
)

//go:embed templates
var templatesFS embed.FS

type Name string

const (
	Progress Name = "progress"
	Result   Name = "result"
	Empty    Name = "empty"
)

const (
	TabExplanation = "explanation"
	TabImproved    = "improved"
)

const (
	StatusInterval  = 1500 * time.Millisecond
	CopyConfirmTime = 2000 * time.Millisecond
)

var StatusPhrases = []string{
	"Reading code...",
	"Identifying language...",
	"Analyzing logic...",
	"Checking for bugs...",
	"Generating improvements...",
	"Writing explanation...",
}

// NewEngine loads the embedded page templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// Select picks the main view. The error banner is independent of it.
func Select(state entity.SessionState) Name {
	switch {
	case state.IsAnalyzing:
		return Progress
	case state.LastResult != nil:
		return Result
	default:
		return Empty
	}
}

// StatusPhrase is the progress phrase shown after elapsed time. It carries no
// meaning about the real request progress.
func StatusPhrase(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	i := int(elapsed/StatusInterval) % len(StatusPhrases)
	return StatusPhrases[i]
}

func NormalizeTab(tab string) string {
	if strings.EqualFold(strings.TrimSpace(tab), TabImproved) {
		return TabImproved
	}
	return TabExplanation
}

type Page struct {
	AppName          string
	View             Name
	Tab              string
	SourceText       string
	Disabled         bool
	Error            string
	Result           *entity.ResultView
	StatusPhrase     string
	StatusPhrases    []string
	StatusIntervalMs int64
	CopyConfirmMs    int64
	Accept           string
}

func NewPage(appName string, state entity.SessionState, tab string, elapsed time.Duration) Page {
	page := Page{
		AppName:          appName,
		View:             Select(state),
		Tab:              NormalizeTab(tab),
		SourceText:       state.SourceText,
		Disabled:         state.IsAnalyzing,
		Error:            state.LastError,
		StatusPhrases:    StatusPhrases,
		StatusIntervalMs: StatusInterval.Milliseconds(),
		CopyConfirmMs:    CopyConfirmTime.Milliseconds(),
		Accept:           strings.Join(usecase.AllowedExtensions, ","),
	}

	switch page.View {
	case Progress:
		page.StatusPhrase = StatusPhrase(elapsed)
	case Result:
		page.Result = mapper.ToResultView(state.LastResult)
	}
	return page
}

func NewStatus(state entity.SessionState, elapsed time.Duration) entity.SessionStatus {
	status := entity.SessionStatus{
		SessionState: state,
		View:         string(Select(state)),
	}
	if state.IsAnalyzing {
		status.StatusPhrase = StatusPhrase(elapsed)
	}
	return status
}
