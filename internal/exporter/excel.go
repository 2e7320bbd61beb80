package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/xuri/excelize/v2"

	"formdcli/internal/scoring"
)

const targetsSheetName = "Targets"

// ExcelExporter writes the ranked target list as a styled XLSX workbook
type ExcelExporter struct {
	logger *slog.Logger
}

// NewExcelExporter creates an XLSX exporter
func NewExcelExporter(logger *slog.Logger) *ExcelExporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelExporter{logger: logger}
}

// ExportTargets writes targets to an XLSX workbook with a bold, frozen
// header row, typed numeric cells, and an auto filter. Missing amounts stay
// empty and indefinite amounts carry their label, matching the CSV output.
func (e *ExcelExporter) ExportTargets(ctx context.Context, targets []scoring.ScoredTarget, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName(f.GetSheetName(0), targetsSheetName)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	headers := targetHeaders()
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(targetsSheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header %q: %w", header, err)
		}
	}
	lastHeaderCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(targetsSheetName, "A1", lastHeaderCell, headerStyle); err != nil {
		return fmt.Errorf("failed to style header row: %w", err)
	}

	for i, target := range targets {
		row := i + 2
		if err := e.writeTargetRow(f, row, target); err != nil {
			return fmt.Errorf("failed to write target row %d: %w", i, err)
		}
	}

	if err := f.SetPanes(targetsSheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header row: %w", err)
	}
	if len(targets) > 0 {
		lastCell, _ := excelize.CoordinatesToCellName(len(headers), len(targets)+1)
		if err := f.AutoFilter(targetsSheetName, "A1:"+lastCell, nil); err != nil {
			return fmt.Errorf("failed to add auto filter: %w", err)
		}
	}
	if err := f.SetColWidth(targetsSheetName, "B", "B", 36); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	e.logger.InfoContext(ctx, "exported target workbook",
		"targets", len(targets),
		"path", outputPath,
	)
	return nil
}

// writeTargetRow writes one target with typed cells: numbers stay numbers
// so the workbook sorts and filters correctly.
func (e *ExcelExporter) writeTargetRow(f *excelize.File, row int, target scoring.ScoredTarget) error {
	values := []any{
		target.Rank,
		target.EntityName,
		target.State,
		target.Region,
		target.City,
		target.Sector,
		target.Classification.Subcategory,
		round2(target.Score.Total),
		round2(target.Score.ThesisFit),
		round2(target.Score.DealSize),
		round2(target.Score.Geography),
		round2(target.Score.Momentum),
		round2(target.Score.Quality),
		amountCell(target.TotalOfferingAmount),
		amountCell(target.TotalAmountSold),
		target.DealSizeCategory,
		target.TotalInvestors,
		target.NumRelatedPersons,
		target.HasPlacementAgent,
		target.IsFollowOn,
		target.IsActive,
		target.IsRecent,
		formatDate(target.FilingDate),
		target.FilingYear,
		target.Period.Label(),
		target.AccessionNumber,
	}

	for col, value := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(targetsSheetName, cell, value); err != nil {
			return err
		}
	}
	return nil
}

// amountCell converts an amount to a cell value: numeric when finite, the
// indefinite label for +Inf, empty when missing.
func amountCell(f float64) any {
	switch {
	case math.IsNaN(f) || math.IsInf(f, -1):
		return ""
	case math.IsInf(f, 1):
		return indefiniteLabel
	default:
		return f
	}
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
