package parser_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"itinera/internal/parser"
	"itinera/mocks"
)

func extractedState() parser.State {
	st := housingState("Grand Palace booking, total EUR 540.50")
	st.ExtractedData = map[string]any{
		"propertyName": "Grand Palace",
		"totalAmount":  540.5,
	}
	return st
}

func TestValidate_EmptyExtractionShortCircuits(t *testing.T) {
	model := new(mocks.MockLanguageModel)

	st := parser.Validate(context.Background(), model, housingState("booking"))

	assert.Equal(t, []string{"No data extracted to validate"}, st.Errors)
	model.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestValidate_RefinedData(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"isValid": true, "confidence": 0.95, "validatedData": {"propertyName": "Grand Palace Hotel", "totalAmount": 540.5}, "issues": []}`, nil)

	st := parser.Validate(context.Background(), model, extractedState())

	assert.Empty(t, st.Errors)
	assert.Equal(t, 0.95, st.Confidence)
	assert.Equal(t, "Grand Palace Hotel", st.ValidatedData["propertyName"])
}

func TestValidate_IssuesAppended(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"isValid": false, "confidence": 0.4, "validatedData": {"propertyName": "Grand Palace"}, "issues": ["totalAmount missing from source", "currency unclear"]}`, nil)

	st := parser.Validate(context.Background(), model, extractedState())

	assert.Equal(t, []string{"totalAmount missing from source", "currency unclear"}, st.Errors)
	assert.Equal(t, 0.4, st.Confidence)
}

func TestValidate_MissingValidatedDataFallsBackToExtraction(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"isValid": true, "confidence": 0.9, "issues": []}`, nil)

	in := extractedState()
	st := parser.Validate(context.Background(), model, in)

	assert.Equal(t, in.ExtractedData, st.ValidatedData)
}

func TestValidate_MissingConfidenceKeepsPrior(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"isValid": true, "validatedData": {"propertyName": "Grand Palace"}}`, nil)

	st := parser.Validate(context.Background(), model, extractedState())

	assert.Equal(t, 0.9, st.Confidence)
}

func TestValidate_ModelErrorFallsBackToExtraction(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("rate limited"))

	in := extractedState()
	st := parser.Validate(context.Background(), model, in)

	assert.Len(t, st.Errors, 1)
	assert.Contains(t, st.Errors[0], "Validation error")
	assert.Equal(t, in.ExtractedData, st.ValidatedData)
}

func TestValidate_UnparseableResponseFallsBackToExtraction(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return("looks fine to me", nil)

	in := extractedState()
	st := parser.Validate(context.Background(), model, in)

	assert.Equal(t, []string{"Failed to parse validation response"}, st.Errors)
	assert.Equal(t, in.ExtractedData, st.ValidatedData)
}
