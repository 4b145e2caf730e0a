package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/raidflow/raidflow/internal/model"
	"github.com/raidflow/raidflow/pkg/stats"
)

// XLSXConsumer writes one workbook per encounter under Root, with an
// overview sheet plus one sheet per statistic table. Like DirConsumer it
// writes through a temp file and renames into place.
type XLSXConsumer struct {
	Root string
}

// Name implements the pipeline consumer interface.
func (c *XLSXConsumer) Name() string { return "xlsx:" + c.Root }

// Consume writes the workbook for one encounter.
func (c *XLSXConsumer) Consume(ctx context.Context, enc *model.Encounter, actors model.ActorTable, tables []*stats.Table) error {
	if err := os.MkdirAll(c.Root, 0755); err != nil {
		return fmt.Errorf("failed to create output root: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeOverviewSheet(f, enc, actors); err != nil {
		return err
	}
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := writeTableSheet(f, table); err != nil {
			return err
		}
	}

	final := filepath.Join(c.Root, encounterDirName(enc)+".xlsx")
	tempPath := final + ".tmp"
	if err := f.SaveAs(tempPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	if err := os.Rename(tempPath, final); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to publish %s: %w", final, err)
	}
	return nil
}

func writeOverviewSheet(f *excelize.File, enc *model.Encounter, actors model.ActorTable) error {
	const sheet = "Overview"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name overview sheet: %w", err)
	}

	meta := newEncounterMeta(enc)
	rows := [][]interface{}{
		{"boss", meta.Boss},
		{"outcome", meta.Outcome},
		{"start_time", meta.StartTime},
		{"end_time", meta.EndTime},
		{"duration_seconds", meta.Duration},
	}
	for i, row := range rows {
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+1), &row); err != nil {
			return err
		}
	}

	// Participant roster starts after a blank row.
	base := len(rows) + 2
	header := []interface{}{"actor", "class", "owner"}
	if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", base), &header); err != nil {
		return err
	}
	for i, a := range sortedActors(actors) {
		row := []interface{}{a.ID, string(a.Class), a.OwnerID}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", base+1+i), &row); err != nil {
			return err
		}
	}
	return nil
}

func writeTableSheet(f *excelize.File, table *stats.Table) error {
	// Sheet names are capped at 31 characters by the format.
	sheet := table.Name()
	if len(sheet) > 31 {
		sheet = sheet[:31]
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to add sheet %s: %w", sheet, err)
	}

	header := columnHeader(table)
	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}

	for i, row := range table.Rows() {
		record := rowRecord(table, row)
		cells := make([]interface{}, len(record))
		for j, v := range record {
			cells[j] = v
		}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", i+2), &cells); err != nil {
			return err
		}
	}
	return nil
}
