package gateway

import (
	"fmt"

	"github.com/abhisek/smartstudy/internal/llm"
)

const ocrInstruction = "Perform OCR on this image. Extract all legible text precisely. " +
	"Return only the extracted text, no markdown code blocks."

const tutorPersona = "You are a helpful, encouraging, and patient AI homework tutor for a teenager. " +
	"Keep answers concise but clear. Use emojis occasionally."

const classifySystemPrompt = `You are an expert AI homework helper. Analyze the user's input.

LOGIC:
1. If 'forceQuizMode' is TRUE, ALWAYS generate a Quiz (mode: 'quiz').
2. If 'forceQuizMode' is FALSE:
   - Detect if the input is a SINGLE, specific question (e.g., "1+1", "What is mitochondria?", "Solve x^2=4").
   - If SINGLE question -> return mode: 'single_question'.
   - If MULTIPLE questions, notes, or a broad topic request -> return mode: 'quiz'.

OUTPUT FORMAT (JSON ONLY):

Option A (Single Question):
{
  "mode": "single_question",
  "data": {
    "question": "The canonical text of the question",
    "answer": "The final direct answer",
    "steps": ["Step 1 explanation", "Step 2 explanation", ...]
  }
}

Option B (Quiz):
{
  "mode": "quiz",
  "data": {
    "title": "Short topic title",
    "questions": [
      {
        "id": "q1",
        "type": "mcq" | "short_answer" | "true_false",
        "text": "Question text",
        "options": ["Option 1", "Option 2", "Option 3", "Option 4"], // Required for MCQ
        "correctAnswer": "Exact answer text",
        "explanation": "Why this is correct"
      }
    ]
  }
}`

// maxInputRunes caps the text sent for classification.
const maxInputRunes = 5000

// classifyUserMessage formats the classification request.
func classifyUserMessage(text string, forceQuiz bool) string {
	r := []rune(text)
	if len(r) > maxInputRunes {
		r = r[:maxInputRunes]
	}
	return fmt.Sprintf("forceQuizMode: %t\nInput: \"%s\"", forceQuiz, string(r))
}

var stringSchema = map[string]any{"type": "string"}

var stringArraySchema = map[string]any{"type": "array", "items": stringSchema}

// classifySchema is the structured output contract for ClassifyAndSolve.
var classifySchema = &llm.Schema{
	Name:        "classify-result",
	Description: "A direct solution to a single question, or a generated quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"mode": map[string]any{
				"type": "string",
				"enum": []any{string(ModeSingleQuestion), string(ModeQuiz)},
			},
			"data": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"question": stringSchema,
					"answer":   stringSchema,
					"steps":    stringArraySchema,
					"title":    stringSchema,
					"questions": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type": "object",
							"properties": map[string]any{
								"id":            stringSchema,
								"type":          stringSchema,
								"text":          stringSchema,
								"options":       stringArraySchema,
								"correctAnswer": stringSchema,
								"explanation":   stringSchema,
							},
						},
					},
				},
			},
		},
		"required": []any{"mode"},
	},
}
