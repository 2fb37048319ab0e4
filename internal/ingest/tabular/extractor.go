// Package tabular turns raw upload bytes into ordered header-keyed records
// and maps human column headers onto the canonical field vocabulary each
// document kind operates on.
package tabular

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMissingSheet      = errors.New("worksheet not found")
)

// Record maps a header label to the raw cell text of one row.
type Record map[string]string

const gameStatsSheet = "game stats"

// Rows decodes a delimited-text or workbook upload into records in source
// order. The first line or row is the header; columns with a blank header
// label and cells past the header width are dropped; rows where every field
// is blank are discarded.
func Rows(data []byte, name string) ([]Record, error) {
	switch ext(name) {
	case ".csv":
		return csvRows(data)
	case ".xlsx":
		return workbookRows(data, "")
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}
}

// GameStatsRows decodes a game-stats workbook. Only workbook input is
// accepted and a tab matching "Game Stats" (case/space-insensitive) must
// exist.
func GameStatsRows(data []byte, name string) ([]Record, error) {
	if ext(name) != ".xlsx" {
		return nil, fmt.Errorf("%w: game stats require a workbook (.xlsx), got %s", ErrUnsupportedFormat, name)
	}
	return workbookRows(data, gameStatsSheet)
}

func csvRows(data []byte) ([]Record, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		if rec, ok := recordFromRow(header, fields); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

func workbookRows(data []byte, wantSheet string) ([]Record, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer book.Close()

	sheet := book.GetSheetName(book.GetActiveSheetIndex())
	if wantSheet != "" {
		sheet = ""
		for _, name := range book.GetSheetList() {
			if normalizeSheetName(name) == wantSheet {
				sheet = name
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("%w: no tab matching %q (case-insensitive)", ErrMissingSheet, wantSheet)
		}
	}

	rows, err := book.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := rows[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	var out []Record
	for _, row := range rows[1:] {
		if rec, ok := recordFromRow(header, row); ok {
			out = append(out, rec)
		}
	}
	return out, nil
}

// recordFromRow keys cells by header position and reports whether the row
// holds any non-blank value at all.
func recordFromRow(header, fields []string) (Record, bool) {
	rec := make(Record, len(header))
	blank := true
	for i, value := range fields {
		if i >= len(header) || header[i] == "" {
			continue
		}
		rec[header[i]] = value
		if strings.TrimSpace(value) != "" {
			blank = false
		}
	}
	if blank {
		return nil, false
	}
	return rec, true
}

func normalizeSheetName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func ext(name string) string {
	return strings.ToLower(path.Ext(name))
}
