package inventory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// Sheet names of the consolidated report
const (
	SheetCounts = "Contagem por OS"
	SheetMemory = "Média de Memória"
	SheetRaw    = "Dados Brutos"
)

// WriteXLSX writes the consolidated inventory report to path
func WriteXLSX(summary Summary, assets []Asset, path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	if err := fx.SetSheetName(fx.GetSheetName(0), SheetCounts); err != nil {
		return fmt.Errorf("renaming sheet: %w", err)
	}
	for _, name := range []string{SheetMemory, SheetRaw} {
		if _, err := fx.NewSheet(name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", name, err)
		}
	}

	headerStyle, err := fx.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	counts := make([][]interface{}, 0, len(summary.Counts))
	for _, c := range summary.Counts {
		counts = append(counts, []interface{}{c.OS, c.Total})
	}
	if err := writeSheet(fx, SheetCounts, headerStyle, []interface{}{"OS", "Total de Equipamentos"}, counts); err != nil {
		return err
	}

	memory := make([][]interface{}, 0, len(summary.Memory))
	for _, m := range summary.Memory {
		memory = append(memory, []interface{}{m.OS, m.MeanMemory})
	}
	if err := writeSheet(fx, SheetMemory, headerStyle, []interface{}{"OS", "Media Memória (GB)"}, memory); err != nil {
		return err
	}

	raw := make([][]interface{}, 0, len(assets))
	for _, a := range assets {
		raw = append(raw, []interface{}{a.ID, a.Location, a.OS, a.MemoryGB, a.CPUCores, a.Status})
	}
	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := writeSheet(fx, SheetRaw, headerStyle, header, raw); err != nil {
		return err
	}

	if err := fx.SaveAs(path); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}

func writeSheet(fx *excelize.File, sheet string, headerStyle int, header []interface{}, rows [][]interface{}) error {
	if err := fx.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := fx.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("styling %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := fx.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}
