package export_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"itinera/internal/domain"
	"itinera/internal/export"
)

func TestWriteXLSX(t *testing.T) {
	parsed, _ := json.Marshal(map[string]any{
		"vendorName":  "Grand Palace Hotel",
		"totalAmount": 540.5,
		"currency":    "EUR",
	})
	docs := []domain.ParsedDocument{
		{
			ID:           uuid.New(),
			DriveFileID:  "drive-1",
			DocumentType: domain.DocumentTypeHousing,
			ParsedData:   parsed,
			Confidence:   0.9,
			UpdatedAt:    time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			ID:           uuid.New(),
			DriveFileID:  "drive-2",
			DocumentType: domain.DocumentTypeUnknown,
			ParsedData:   json.RawMessage(`{}`),
			UpdatedAt:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		},
	}

	data, err := export.WriteXLSX(docs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Parsed Documents", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Drive File ID", header)

	vendor, _ := f.GetCellValue("Parsed Documents", "C2")
	assert.Equal(t, "Grand Palace Hotel", vendor)

	docType, _ := f.GetCellValue("Parsed Documents", "B3")
	assert.Equal(t, "unknown", docType)

	// Sparse extraction leaves cells blank rather than erroring.
	amount, _ := f.GetCellValue("Parsed Documents", "E3")
	assert.Equal(t, "", amount)
}

func TestWriteXLSX_Empty(t *testing.T) {
	data, err := export.WriteXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Parsed Documents")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
