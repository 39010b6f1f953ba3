package parser

import (
	"context"
	"encoding/json"
	"fmt"

	"itinera/internal/port"
)

const validatorMaxTextChars = 1000

const validatorSystemPrompt = `You are a data validation agent. Review the extracted data and verify its accuracy against the original document.

Check for:
1. Data consistency and correctness
2. Missing critical fields
3. Data format issues
4. Logical inconsistencies

Return a JSON response:
{
  "isValid": boolean,
  "confidence": 0.0-1.0,
  "validatedData": { refined data object },
  "issues": ["list of any issues found"],
  "refinements": { any data corrections made }
}`

type validation struct {
	IsValid       bool            `json:"isValid"`
	Confidence    *float64        `json:"confidence"`
	ValidatedData map[string]any  `json:"validatedData"`
	Issues        []string        `json:"issues"`
	Refinements   json.RawMessage `json:"refinements"`
}

// Validate cross-checks the extracted data against the source text via a
// second model pass. Whatever happens, the state comes back with a
// best-effort ValidatedData: the model's refinement when available, the
// untouched extraction otherwise.
func Validate(ctx context.Context, model port.LanguageModel, st State) State {
	if len(st.ExtractedData) == 0 {
		return st.withErrors("No data extracted to validate")
	}

	extractedJSON, err := json.MarshalIndent(st.ExtractedData, "", "  ")
	if err != nil {
		out := st.withErrors(fmt.Sprintf("Validation error: %v", err))
		out.ValidatedData = st.ExtractedData
		return out
	}

	prompt := fmt.Sprintf("Original document:\n%s\n\nExtracted data:\n%s\n\nValidate and refine this data.",
		truncate(st.RawText, validatorMaxTextChars), extractedJSON)

	content, err := model.Complete(ctx, port.CompletionRequest{
		System: validatorSystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		out := st.withErrors(fmt.Sprintf("Validation error: %v", err))
		out.ValidatedData = st.ExtractedData
		return out
	}

	var parsed validation
	if !decodeFirstObject(content, &parsed) {
		out := st.withErrors("Failed to parse validation response")
		out.ValidatedData = st.ExtractedData
		return out
	}

	out := st
	if len(parsed.Issues) > 0 {
		out = st.withErrors(parsed.Issues...)
	}
	if parsed.ValidatedData != nil {
		out.ValidatedData = parsed.ValidatedData
	} else {
		out.ValidatedData = st.ExtractedData
	}
	if parsed.Confidence != nil {
		out.Confidence = clampConfidence(*parsed.Confidence)
	}
	return out
}
