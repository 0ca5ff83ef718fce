package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"limpeza/internal"
)

const (
	cleanSheetName    = "Dados_Limpos"
	rejectedSheetName = "Dados_Removidos"

	exportDateLayout = "02/01/2006"
)

// ExportWorkbook writes the clean and rejected tables to one workbook. The
// rejected sheet is omitted entirely when the ledger is empty.
func ExportWorkbook(clean []internal.CleanRecord, rejected []internal.RejectedRecord, outputPath string) error {
	f, err := BuildWorkbook(clean, rejected)
	if err != nil {
		return err
	}
	defer f.Close()

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

// BuildWorkbook assembles the output workbook in memory.
func BuildWorkbook(clean []internal.CleanRecord, rejected []internal.RejectedRecord) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), cleanSheetName); err != nil {
		return nil, err
	}

	cleanGrid := [][]any{{"Data", "Mes", "Ano", "SKU", "NomeProduto", "Investido", "Cliques", "Receita", "Conversões"}}
	for _, rec := range clean {
		cleanGrid = append(cleanGrid, []any{
			rec.Data.Format(exportDateLayout),
			rec.Mes, rec.Ano, rec.SKU, rec.NomeProduto,
			rec.Investido, rec.Cliques, rec.Receita, rec.Conversoes,
		})
	}
	if err := writeSheet(f, cleanSheetName, cleanGrid); err != nil {
		return nil, err
	}

	if len(rejected) > 0 {
		if _, err := f.NewSheet(rejectedSheetName); err != nil {
			return nil, err
		}
		rejectedGrid := [][]any{{"Data", "Ano", "Mês", "Objeto", "Investido", "Cliques", "Receita", "Conversões", "Motivo_Remocao"}}
		for _, rec := range rejected {
			rejectedGrid = append(rejectedGrid, []any{
				rec.Data, rec.Ano, rec.Mes, rec.Objeto,
				rec.Investido, rec.Cliques, rec.Receita, rec.Conversoes,
				string(rec.Motivo),
			})
		}
		if err := writeSheet(f, rejectedSheetName, rejectedGrid); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// writeSheet fills a sheet from a row grid and widens each column to its
// longest rendered cell plus padding, so the audit sheets open readable.
func writeSheet(f *excelize.File, sheet string, grid [][]any) error {
	widths := map[int]int{}

	for r, row := range grid {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
			if l := len([]rune(fmt.Sprint(value))); l > widths[c] {
				widths[c] = l
			}
		}
	}

	for c, width := range widths {
		col, err := excelize.ColumnNumberToName(c + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(width+2)); err != nil {
			return err
		}
	}
	return nil
}
