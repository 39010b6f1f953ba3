package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/xuri/excelize/v2"

	"itinera/internal/domain"
)

const sheet = "Parsed Documents"

var headers = []string{
	"Drive File ID",
	"Document Type",
	"Vendor",
	"Document Date",
	"Total Amount",
	"Currency",
	"Confirmation Number",
	"Confidence",
	"Parsed At",
}

// WriteXLSX renders parsed documents into a spreadsheet and returns the file
// bytes. Field values come out of the parsed payload best-effort; a record
// with sparse extraction simply leaves cells blank.
func WriteXLSX(docs []domain.ParsedDocument) ([]byte, error) {
	f := excelize.NewFile()
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)
	_ = f.DeleteSheet("Sheet1")

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, d := range docs {
		var fields map[string]any
		if err := json.Unmarshal(d.ParsedData, &fields); err != nil {
			fields = map[string]any{}
		}

		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, d.DriveFileID)
		write(2, string(d.DocumentType))
		write(3, stringField(fields, "vendorName"))
		write(4, stringField(fields, "documentDate"))
		write(5, numberField(fields, "totalAmount"))
		write(6, stringField(fields, "currency"))
		write(7, stringField(fields, "confirmationNumber"))
		write(8, d.Confidence)
		write(9, d.UpdatedAt.Format("2006-01-02 15:04"))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 24)
	_ = f.SetColWidth(sheet, "B", "B", 16)
	_ = f.SetColWidth(sheet, "C", "C", 28)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func stringField(fields map[string]any, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}

func numberField(fields map[string]any, key string) any {
	if v, ok := fields[key].(float64); ok {
		return v
	}
	return ""
}
