package mapper

import (
	"github.com/evandrarf/codetutor/internal/delivery/http/entity"
)

// ToResultView orders the explanation tab sections for rendering.
func ToResultView(res *entity.AnalysisResponse) *entity.ResultView {
	if res == nil {
		return nil
	}

	concepts := res.StudentSummary.KeyConcepts
	if concepts == nil {
		concepts = []string{}
	}

	return &entity.ResultView{
		Language:   res.Language,
		Difficulty: res.StudentSummary.Difficulty,
		Purpose:    res.Purpose,
		Sections: []entity.ResultSection{
			{Title: "Step-by-Step Explanation", Icon: "📝", Body: res.StepByStep},
			{Title: "How to Use", Icon: "🚀", Body: res.Usage},
			{Title: "Critique & Improvements", Icon: "🔍", Body: res.Critique},
		},
		SummaryText:  res.StudentSummary.SummaryText,
		KeyConcepts:  concepts,
		NextSteps:    res.StudentSummary.NextSteps,
		ImprovedCode: res.ImprovedCode,
	}
}
