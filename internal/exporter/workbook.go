package exporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "nhlvis/internal/errors"
	"nhlvis/pkg/contracts/domain"
)

const maxSheetName = 31

// GapWorkbook collects the gap tables of one run into a single .xlsx file,
// one sheet per table
type GapWorkbook struct {
	file   *excelize.File
	sheets []string
}

// NewGapWorkbook creates an empty workbook
func NewGapWorkbook() *GapWorkbook {
	return &GapWorkbook{file: excelize.NewFile()}
}

// Sheets returns the sheet names added so far, in order
func (g *GapWorkbook) Sheets() []string {
	out := make([]string, len(g.sheets))
	copy(out, g.sheets)
	return out
}

// AddGapTable writes gt to a new sheet with a frozen header row
func (g *GapWorkbook) AddGapTable(name string, gt domain.GapTable) error {
	sheet := sanitizeSheetName(name)
	for _, existing := range g.sheets {
		if strings.EqualFold(existing, sheet) {
			return apperrors.NewAppValidationError(fmt.Sprintf("duplicate sheet %q", sheet))
		}
	}

	if len(g.sheets) == 0 {
		if err := g.file.SetSheetName(g.file.GetSheetName(0), sheet); err != nil {
			return apperrors.NewStorageError("rename sheet", err)
		}
	} else if _, err := g.file.NewSheet(sheet); err != nil {
		return apperrors.NewStorageError("create sheet", err).WithContext("sheet", sheet)
	}

	header := make([]interface{}, len(GapHeaders))
	for i, h := range GapHeaders {
		header[i] = h
	}
	if err := g.file.SetSheetRow(sheet, "A1", &header); err != nil {
		return apperrors.NewStorageError("write header", err).WithContext("sheet", sheet)
	}

	for i, r := range gt.Results {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("cell name", err)
		}
		row := []interface{}{
			string(r.Metric),
			gt.Team,
			scopeLabel(gt.Scope),
			cellValue(r.TeamValue),
			cellValue(r.LeagueValue),
			cellValue(r.Gap),
			r.TeamN,
			r.LeagueN,
		}
		if err := g.file.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.NewStorageError("write row", err).WithContext("sheet", sheet)
		}
	}

	if err := g.file.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return apperrors.NewStorageError("freeze header", err).WithContext("sheet", sheet)
	}

	g.sheets = append(g.sheets, sheet)
	return nil
}

// SaveAs writes the workbook to path
func (g *GapWorkbook) SaveAs(path string) error {
	if len(g.sheets) == 0 {
		return apperrors.NewEmptyDataError("workbook has no gap tables")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("create directory", err).WithContext("path", path)
	}
	g.file.SetActiveSheet(0)
	if err := g.file.SaveAs(path); err != nil {
		return apperrors.NewStorageError("save workbook", err).WithContext("path", path)
	}
	return nil
}

// Close releases the workbook
func (g *GapWorkbook) Close() error {
	return g.file.Close()
}

// sanitizeSheetName drops the extension and characters Excel rejects
func sanitizeSheetName(name string) string {
	name = strings.TrimSuffix(name, filepath.Ext(name))
	name = strings.Map(func(r rune) rune {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			return '_'
		}
		return r
	}, name)
	if len(name) > maxSheetName {
		name = name[:maxSheetName]
	}
	if name == "" {
		name = "gaps"
	}
	return name
}
