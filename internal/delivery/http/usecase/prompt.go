package usecase

import (
	"fmt"

	"github.com/evandrarf/codetutor/internal/pkg/llm"
)

const systemInstruction = "You are a helpful, encouraging, and precise coding tutor."

const codeFence = "```"

const defaultPromptTemplate = `You are CodeTutor AI, a world-class, beginner-friendly coding instructor.
Analyze the following code snippet strictly.

Goals:
1. Identify the language.
2. Explain it simply step-by-step.
3. Describe the purpose.
4. Explain usage.
5. Detect errors or improvements.
6. Provide an improved version (do not change logic unless necessary).
7. Provide a summary for students.

Code to analyze:
%s
%s
%s
`

func buildPrompt(sourceText string) string {
	return fmt.Sprintf(defaultPromptTemplate, codeFence, sourceText, codeFence)
}

var analysisFields = []string{"language", "stepByStep", "purpose", "usage", "critique", "improvedCode", "studentSummary"}

var studentSummaryFields = []string{"summaryText", "keyConcepts", "difficulty", "nextSteps"}

var analysisSchema = &llm.Schema{
	Type: "object",
	Properties: map[string]*llm.Schema{
		"language": {
			Type:        "string",
			Description: "The programming language detected.",
		},
		"stepByStep": {
			Type:        "string",
			Description: "A clear, simple step-by-step explanation of the logic. Use Markdown.",
		},
		"purpose": {
			Type:        "string",
			Description: "What the code does and what problem it solves.",
		},
		"usage": {
			Type:        "string",
			Description: "How to run the code, inputs/outputs, and dependencies. Use Markdown.",
		},
		"critique": {
			Type:        "string",
			Description: "Errors, bugs, security issues, or best practice improvements. Use Markdown.",
		},
		"improvedCode": {
			Type:        "string",
			Description: "The corrected or optimized version of the code.",
		},
		"studentSummary": {
			Type: "object",
			Properties: map[string]*llm.Schema{
				"summaryText": {Type: "string", Description: "A friendly summary for a student."},
				"keyConcepts": {
					Type:        "array",
					Items:       &llm.Schema{Type: "string"},
					Description: "List of key programming concepts used.",
				},
				"difficulty": {Type: "string", Description: "Estimated difficulty level (e.g., Beginner, Intermediate)."},
				"nextSteps":  {Type: "string", Description: "What the student should study next."},
			},
			Required: studentSummaryFields,
			Ordering: studentSummaryFields,
		},
	},
	Required: analysisFields,
	Ordering: analysisFields,
}
