package xlsx

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestValidateAcceptsWellFormedTimes(t *testing.T) {
	file := buildWorkbook(t, [][]string{
		{"Date", "SN", "Flight", "STA", "ETA", "ATA"},
		{"2024-07-01", "SN001", "WW100", "08:00:00", "08:15:00", "08:20:30"},
		{"2024-07-01", "SN002", "WW101", "", "", ""},
	})
	assert.NoError(t, ValidateRoutineSheet(file))
}

func TestValidateNamesOffendingCell(t *testing.T) {
	file := buildWorkbook(t, [][]string{
		{"Date", "SN", "Flight", "STA", "ETA", "ATA"},
		{"2024-07-01", "SN001", "WW100", "08:00:00", "08:15:00", "08:20:30"},
		{"2024-07-01", "SN002", "WW101", "08:00:00", "8:15", "09:00:00"},
	})
	err := ValidateRoutineSheet(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cell E3")
	assert.Contains(t, err.Error(), "ETA")
	assert.Contains(t, err.Error(), "HH:mm:ss")
}

func TestValidateHeaderMatchIsCaseInsensitive(t *testing.T) {
	file := buildWorkbook(t, [][]string{
		{"date", "sn", "flight", " sta ", "Eta", "ATA"},
		{"2024-07-01", "SN001", "WW100", "25:00:00", "", ""},
	})
	err := ValidateRoutineSheet(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cell D2")
}

func TestValidatePassesWithoutTimeHeaders(t *testing.T) {
	file := buildWorkbook(t, [][]string{
		{"Date", "SN", "Flight"},
		{"2024-07-01", "SN001", "not a time"},
	})
	assert.NoError(t, ValidateRoutineSheet(file))
}

func TestValidateEmptySheet(t *testing.T) {
	file := buildWorkbook(t, nil)
	assert.NoError(t, ValidateRoutineSheet(file))
}

func TestValidateRejectsGarbageBytes(t *testing.T) {
	err := ValidateRoutineSheet([]byte("not a workbook"))
	require.Error(t, err)
}

func TestSniffWorkbook(t *testing.T) {
	file := buildWorkbook(t, [][]string{
		{"Date", "SN", "Flight"},
		{"2024-07-01", "SN001", "WW100"},
	})
	sheet, rows, err := SniffWorkbook(file)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", sheet)
	assert.Equal(t, 2, rows)
}
