// Package xlsx checks routine workbooks locally before they are uploaded,
// so a mis-formatted time column is reported with its cell position instead
// of the backend's generic import failure.
package xlsx

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// timeColumns are the headers whose cells must hold HH:mm:ss values
var timeColumns = map[string]bool{
	"sta": true,
	"eta": true,
	"ata": true,
}

// ValidateRoutineSheet opens the workbook and checks every STA/ETA/ATA cell
// parses as HH:mm:ss. Empty cells pass; the backend owns row-level
// semantics such as required fields. A workbook without a recognizable
// header row passes untouched.
func ValidateRoutineSheet(file []byte) error {
	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil
	}

	// Map header names to column indexes from the first row.
	colIdx := make(map[int]string)
	for i, h := range rows[0] {
		name := strings.ToLower(strings.TrimSpace(h))
		if timeColumns[name] {
			colIdx[i] = strings.ToUpper(name)
		}
	}
	if len(colIdx) == 0 {
		return nil
	}

	for rowNum, row := range rows[1:] {
		for i, header := range colIdx {
			if i >= len(row) {
				continue
			}
			value := strings.TrimSpace(row[i])
			if value == "" {
				continue
			}
			if _, err := time.Parse("15:04:05", value); err != nil {
				cell, _ := excelize.CoordinatesToCellName(i+1, rowNum+2)
				return fmt.Errorf("cell %s: %s value %q is not in HH:mm:ss format", cell, header, value)
			}
		}
	}

	return nil
}

// SniffWorkbook reports the first sheet name and its row count, used to
// sanity-check a downloaded export without interpreting its contents
func SniffWorkbook(file []byte) (string, int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(file))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return "", 0, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return "", 0, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	return sheet, len(rows), nil
}
