package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"staffroster-web/internal/infrastructure/config"
	apiRepo "staffroster-web/internal/interface/repository"
	"staffroster-web/pkg/logger"
	"staffroster-web/pkg/xlsx"
)

// Downloads the routine spreadsheet for one employee and writes it to disk,
// for operators who want the export without going through the web UI.
//
//	go run ./cmd/utils <employeeID> [output.xlsx]
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: export_roster <employeeID> [output.xlsx]")
		os.Exit(1)
	}
	employeeID := os.Args[1]
	output := "routine.xlsx"
	if len(os.Args) > 2 {
		output = os.Args[2]
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	rosterRepo := apiRepo.NewRosterAPIRepository(cfg.RosterAPIURL, cfg.RequestTimeout, logger.NewLogger())

	data, err := rosterRepo.ExportExcel(context.Background(), employeeID)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}

	sheet, rows, err := xlsx.SniffWorkbook(data)
	if err != nil {
		log.Fatalf("export is not a readable workbook: %v", err)
	}

	if err := os.WriteFile(output, data, 0o644); err != nil {
		log.Fatalf("failed to write %s: %v", output, err)
	}

	fmt.Printf("Wrote %s: sheet %q, %d rows, %d bytes\n", output, sheet, rows, len(data))
}
