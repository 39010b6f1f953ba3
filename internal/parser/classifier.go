package parser

import (
	"context"
	"fmt"

	"itinera/internal/domain"
	"itinera/internal/port"
)

const classifierMaxTextChars = 2000

const classifierSystemPrompt = `You are a document classification agent. Your job is to analyze the given text and determine if it's a HOUSING document (hotel bookings, accommodation, Airbnb) or TRANSPORTATION document (flights, trains, buses, car rentals).

Return your response in JSON format:
{
  "documentType": "housing" | "transportation" | "unknown",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}`

type classification struct {
	DocumentType string  `json:"documentType"`
	Confidence   float64 `json:"confidence"`
	Reasoning    string  `json:"reasoning"`
}

// Classify determines the document type and an initial confidence from the
// raw text. Failures of any kind degrade to unknown/0 with an appended error;
// Classify never fails the run.
func Classify(ctx context.Context, model port.LanguageModel, st State) State {
	prompt := fmt.Sprintf("Classify this document:\n\n%s", truncate(st.RawText, classifierMaxTextChars))

	content, err := model.Complete(ctx, port.CompletionRequest{
		System: classifierSystemPrompt,
		Prompt: prompt,
	})
	if err != nil {
		out := st.withErrors(fmt.Sprintf("Classification error: %v", err))
		out.DocumentType = domain.DocumentTypeUnknown
		out.Confidence = 0
		return out
	}

	var parsed classification
	if !decodeFirstObject(content, &parsed) {
		out := st.withErrors("Failed to parse classification response")
		out.DocumentType = domain.DocumentTypeUnknown
		out.Confidence = 0
		return out
	}

	docType := domain.DocumentType(parsed.DocumentType)
	confidence := clampConfidence(parsed.Confidence)
	if !docType.Valid() {
		// Off-enum answer: the classification is worthless, so is its score.
		docType = domain.DocumentTypeUnknown
		confidence = 0
	}

	out := st
	if parsed.Reasoning != "" {
		out = st.withErrors(parsed.Reasoning)
	}
	out.DocumentType = docType
	out.Confidence = confidence
	return out
}
