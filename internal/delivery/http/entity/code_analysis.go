package entity

type StudentSummary struct {
	SummaryText string   `json:"summaryText"`
	KeyConcepts []string `json:"keyConcepts"`
	Difficulty  string   `json:"difficulty"`
	NextSteps   string   `json:"nextSteps"`
}

// AnalysisResponse is the structured explanation returned by the model.
// Treat it as immutable once received.
type AnalysisResponse struct {
	Language       string         `json:"language"`
	Purpose        string         `json:"purpose"`
	StepByStep     string         `json:"stepByStep"`
	Usage          string         `json:"usage"`
	Critique       string         `json:"critique"`
	ImprovedCode   string         `json:"improvedCode"`
	StudentSummary StudentSummary `json:"studentSummary"`
}

// Request body for POST /api/analyze
type AnalyzeRequest struct {
	Code string `json:"code" form:"code"`
}

type SessionState struct {
	SourceText  string            `json:"sourceText"`
	IsAnalyzing bool              `json:"isAnalyzing"`
	LastResult  *AnalysisResponse `json:"lastResult,omitempty"`
	LastError   string            `json:"lastError,omitempty"`
}

// Response for GET /api/session
type SessionStatus struct {
	SessionState
	View         string `json:"view"`
	StatusPhrase string `json:"statusPhrase,omitempty"`
}

type ResultSection struct {
	Title string
	Icon  string
	Body  string
}

// ResultView is the render-ready form of an AnalysisResponse.
type ResultView struct {
	Language     string
	Difficulty   string
	Purpose      string
	Sections     []ResultSection
	SummaryText  string
	KeyConcepts  []string
	NextSteps    string
	ImprovedCode string
}
