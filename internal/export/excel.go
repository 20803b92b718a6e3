package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const traysSheet = "Trays"

var traysHeader = []any{
	"Name",
	"Type",
	"Purpose",
	"Width [mm]",
	"Height [mm]",
	"Length [mm]",
	"Cables on tray [pcs.]",
	"Available space [%]",
	"Supports [pcs.]",
	"Cables weight [kg/m]",
	"Total weight [kg]",
}

// ExportTraysExcel writes one table row per tray. Trays whose space is not
// evaluated show "N/A" as available space.
func ExportTraysExcel(path string, trays []TraySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", traysSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if err := f.SetSheetRow(traysSheet, "A1", &traysHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, t := range trays {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{
			t.Name,
			t.Type,
			t.Purpose,
			t.Width,
			t.Height,
			t.Length,
			t.Cables,
			t.FreeSpace,
			t.SupportsCount,
			t.CablesWeight,
			t.TotalWeight,
		}
		if err := f.SetSheetRow(traysSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write tray %s: %w", t.Name, err)
		}
	}

	last, err := excelize.CoordinatesToCellName(len(traysHeader), len(trays)+1)
	if err != nil {
		return err
	}
	if len(trays) > 0 {
		if err := f.AddTable(traysSheet, &excelize.Table{
			Range:     "A1:" + last,
			Name:      "TraysTable",
			StyleName: "TableStyleLight8",
		}); err != nil {
			return fmt.Errorf("failed to add table: %w", err)
		}
	}
	if err := f.SetColWidth(traysSheet, "A", "C", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(traysSheet, "D", "K", 16); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
