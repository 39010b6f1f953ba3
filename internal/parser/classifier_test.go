package parser_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"itinera/internal/domain"
	"itinera/internal/parser"
	"itinera/internal/port"
	"itinera/mocks"
)

func TestClassify_Housing(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"documentType": "housing", "confidence": 0.92, "reasoning": ""}`, nil)

	st := parser.Classify(context.Background(), model, parser.NewState("Hotel Grand Palace booking confirmation"))

	assert.Equal(t, domain.DocumentTypeHousing, st.DocumentType)
	assert.Equal(t, 0.92, st.Confidence)
	assert.Empty(t, st.Errors)
	model.AssertExpectations(t)
}

func TestClassify_ReasoningRecordedAsNote(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"documentType": "transportation", "confidence": 0.8, "reasoning": "mentions a flight number"}`, nil)

	st := parser.Classify(context.Background(), model, parser.NewState("Flight AA123 to Denver"))

	assert.Equal(t, domain.DocumentTypeTransportation, st.DocumentType)
	assert.Equal(t, []string{"mentions a flight number"}, st.Errors)
}

func TestClassify_ModelError(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return("", errors.New("connection refused"))

	st := parser.Classify(context.Background(), model, parser.NewState("some text"))

	assert.Equal(t, domain.DocumentTypeUnknown, st.DocumentType)
	assert.Equal(t, 0.0, st.Confidence)
	assert.Len(t, st.Errors, 1)
	assert.Contains(t, st.Errors[0], "Classification error")
}

func TestClassify_UnparseableResponse(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return("I think this is a hotel booking but I cannot say in JSON.", nil)

	st := parser.Classify(context.Background(), model, parser.NewState("some text"))

	assert.Equal(t, domain.DocumentTypeUnknown, st.DocumentType)
	assert.Equal(t, 0.0, st.Confidence)
	assert.Equal(t, []string{"Failed to parse classification response"}, st.Errors)
}

func TestClassify_InvalidTypeFallsBackToUnknown(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"documentType": "restaurant", "confidence": 0.7}`, nil)

	st := parser.Classify(context.Background(), model, parser.NewState("dinner receipt"))

	assert.Equal(t, domain.DocumentTypeUnknown, st.DocumentType)
	// An off-enum answer is a failed classification; its score is discarded.
	assert.Equal(t, 0.0, st.Confidence)
}

func TestClassify_TruncationKeepsPromptValidUTF8(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	var prompt string
	model.On("Complete", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			prompt = args.Get(1).(port.CompletionRequest).Prompt
		}).
		Return(`{"documentType": "housing", "confidence": 0.9}`, nil)

	// A two-byte rune straddling the 2000-byte truncation limit.
	raw := strings.Repeat("a", 1999) + "é" + strings.Repeat("b", 100)
	parser.Classify(context.Background(), model, parser.NewState(raw))

	assert.True(t, utf8.ValidString(prompt))
	assert.NotContains(t, prompt, "�")
}

func TestClassify_ConfidenceClamped(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return(`{"documentType": "housing", "confidence": 1.8}`, nil)

	st := parser.Classify(context.Background(), model, parser.NewState("booking"))

	assert.Equal(t, 1.0, st.Confidence)
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	model := new(mocks.MockLanguageModel)
	model.On("Complete", mock.Anything, mock.Anything).
		Return("garbage", nil)

	in := parser.NewState("some text")
	out := parser.Classify(context.Background(), model, in)

	assert.Empty(t, in.Errors)
	assert.Len(t, out.Errors, 1)
}
