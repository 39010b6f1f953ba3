package parser

import (
	"context"
	"fmt"
	"strings"

	"itinera/internal/domain"
	"itinera/internal/port"
	"itinera/internal/schema"
)

const extractorMaxTextChars = 4000

const extractorSystemPromptFmt = `You are a data extraction agent. Extract structured data from the document text.

Target document type: %s

Expected schema fields:
%s

Return your response in JSON format with the extracted fields. Only include fields that you can confidently extract from the text. Use null for missing fields. Never invent values.`

// Extract populates ExtractedData for a known document type. For unknown
// types it short-circuits without a model call. A schema validation failure
// keeps the raw extracted object (attempted work is not discarded) and
// records a soft error.
func Extract(ctx context.Context, model port.LanguageModel, st State) State {
	if st.DocumentType == domain.DocumentTypeUnknown {
		return st.withErrors("Cannot extract from unknown document type")
	}

	schemaMap := schema.ForDocumentType(st.DocumentType)
	system := fmt.Sprintf(extractorSystemPromptFmt,
		st.DocumentType, strings.Join(schema.FieldNames(schemaMap), "\n"))
	prompt := fmt.Sprintf("Extract data from this %s document:\n\n%s",
		st.DocumentType, truncate(st.RawText, extractorMaxTextChars))

	content, err := model.Complete(ctx, port.CompletionRequest{
		System: system,
		Prompt: prompt,
	})
	if err != nil {
		return st.withErrors(fmt.Sprintf("Extraction error: %v", err))
	}

	var extracted map[string]any
	if !decodeFirstObject(content, &extracted) {
		return st.withErrors("Failed to parse extraction response")
	}

	if err := schema.Validate(schemaMap, extracted); err != nil {
		out := st.withErrors(fmt.Sprintf("Validation error: %v", err))
		out.ExtractedData = extracted
		return out
	}

	out := st
	out.ExtractedData = schema.Conform(schemaMap, extracted)
	return out
}
