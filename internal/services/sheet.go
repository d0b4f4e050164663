package services

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// extractSheet flattens every sheet of an .xlsx workbook into plain text:
// cells joined by tabs, rows by newlines, each sheet introduced by its name.
func extractSheet(content []byte, filename string) (*ProcessedInput, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, wrapErr(ErrFileProcessing, "failed to open spreadsheet %q: %v", filename, err)
	}
	defer wb.Close()

	var builder strings.Builder
	sheets := wb.GetSheetList()
	for _, sheet := range sheets {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, wrapErr(ErrFileProcessing, "failed to read sheet %q of %q: %v", sheet, filename, err)
		}
		builder.WriteString("# ")
		builder.WriteString(sheet)
		builder.WriteByte('\n')
		for _, row := range rows {
			builder.WriteString(strings.Join(row, "\t"))
			builder.WriteByte('\n')
		}
		builder.WriteByte('\n')
	}

	text := builder.String()
	if !hasSheetContent(text) {
		return nil, wrapErr(ErrFileProcessing, "no text content found in spreadsheet %q", filename)
	}

	return &ProcessedInput{
		Kind:     InputText,
		Text:     text,
		Filename: filename,
		Pages:    len(sheets),
	}, nil
}

// hasSheetContent ignores the sheet-name headers when deciding whether the
// workbook actually contained cell data.
func hasSheetContent(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "# ") {
			continue
		}
		return true
	}
	return false
}
