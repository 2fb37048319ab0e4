package tabular

import (
	"errors"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestRowsCSV(t *testing.T) {
	t.Parallel()

	data := []byte("First Name,Last Name,No\nJohn,Smith,12\n,, \nJane,Doe,3\n")
	rows, err := Rows(data, "2025_South-Broward_Roster.csv")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows after blank filter, got %d", len(rows))
	}
	if rows[0]["First Name"] != "John" || rows[0]["No"] != "12" {
		t.Fatalf("unexpected first row: %v", rows[0])
	}
	if rows[1]["Last Name"] != "Doe" {
		t.Fatalf("unexpected second row: %v", rows[1])
	}
}

func TestRowsCSVRaggedRecords(t *testing.T) {
	t.Parallel()

	data := []byte("A,B\n1,2,3\n4\n")
	rows, err := Rows(data, "file.csv")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if _, ok := rows[0]["C"]; ok {
		t.Fatal("cell past header width should be dropped")
	}
	if rows[1]["A"] != "4" {
		t.Fatalf("short record mis-keyed: %v", rows[1])
	}
	if _, ok := rows[1]["B"]; ok {
		t.Fatal("missing trailing cell should stay absent")
	}
}

func TestRowsUnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, err := Rows([]byte("x"), "schedule/2025_Schedule.pdf"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestRowsWorkbookActiveSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, "Sheet1", [][]any{
		{"Week", "Date", "Home Team"},
		{1, "2025-08-22", "South Broward"},
		{"", "", ""},
	})
	rows, err := Rows(data, "2025_Fall_Schedule.xlsx")
	if err != nil {
		t.Fatalf("Rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0]["Home Team"] != "South Broward" {
		t.Fatalf("unexpected row: %v", rows[0])
	}
}

func TestGameStatsRowsSheetMatching(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, "GAME  STATS", [][]any{
		{"Play #", "Player #", "Action"},
		{1, 22, "Rush"},
	})
	rows, err := GameStatsRows(data, "42_South_Broward_GameStats.xlsx")
	if err != nil {
		t.Fatalf("GameStatsRows: %v", err)
	}
	if len(rows) != 1 || rows[0]["Action"] != "Rush" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}

func TestGameStatsRowsMissingSheet(t *testing.T) {
	t.Parallel()

	data := buildWorkbook(t, "Summary", [][]any{{"Play #"}, {1}})
	if _, err := GameStatsRows(data, "42_South_Broward_GameStats.xlsx"); !errors.Is(err, ErrMissingSheet) {
		t.Fatalf("expected ErrMissingSheet, got %v", err)
	}
}

func TestGameStatsRowsRejectsCSV(t *testing.T) {
	t.Parallel()

	if _, err := GameStatsRows([]byte("Play #\n1\n"), "42_South_Broward_GameStats.csv"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func buildWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	book := excelize.NewFile()
	defer book.Close()

	if sheet != "Sheet1" {
		if err := book.SetSheetName("Sheet1", sheet); err != nil {
			t.Fatalf("rename sheet: %v", err)
		}
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := book.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	buf, err := book.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}
