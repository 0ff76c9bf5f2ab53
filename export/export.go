// Package export writes the score card as an XLSX workbook.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/padraicbc/scorecard/scorecard"
)

// SheetName is the single sheet in an exported workbook.
const SheetName = "Score Card"

// Header is the first row of the sheet, in column order.
var Header = []any{"id", "contestant_name", "contestant_id", "total_tops", "total_penalty", "description"}

// Workbook builds a workbook holding snap. NULL columns become empty cells.
// The caller must Close the returned file.
func Workbook(snap scorecard.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, c := range snap {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			f.Close()
			return nil, err
		}
		row := []any{c.ID, cellValue(c.ContestantName), cellValue(c.ContestantID),
			cellValue(c.TotalTops), cellValue(c.TotalPenalty), cellValue(c.Description)}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write row %d: %w", i, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("freeze header: %w", err)
	}

	return f, nil
}

// Write streams the workbook for snap to w.
func Write(w io.Writer, snap scorecard.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteTo(w)
	return err
}

func cellValue[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}
