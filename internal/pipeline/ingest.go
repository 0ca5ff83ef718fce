package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"limpeza/internal"
	"limpeza/internal/config"
)

// LoadWorkbook reads the input workbook from disk. Any read or parse failure
// is a system fault: the run aborts, no partial output.
func LoadWorkbook(path string, cfg config.Config) ([]internal.RawRecord, []internal.CatalogRow, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read workbook: %w", err)
	}
	return ParseWorkbook(blob, cfg)
}

// ParseWorkbook extracts the transactional rows from the base sheet and the
// catalog rows from the SKU sheet. Cells are kept as raw text; repair and
// coercion happen downstream.
func ParseWorkbook(content []byte, cfg config.Config) ([]internal.RawRecord, []internal.CatalogRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(content))
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	raw, err := parseBaseSheet(f, cfg.BaseSheet)
	if err != nil {
		return nil, nil, err
	}
	catalogRows, err := parseSKUSheet(f, cfg.SKUSheet)
	if err != nil {
		return nil, nil, err
	}
	return raw, catalogRows, nil
}

func parseBaseSheet(f *excelize.File, sheet string) ([]internal.RawRecord, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: empty", sheet)
	}

	cols, err := headerIndex(rows[0], "Data", "Ano", "Mês", "Objeto", "Investido", "Cliques", "Receita", "Conversões")
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	out := make([]internal.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		cell := func(name string) string { return cellAt(row, cols[name]) }
		out = append(out, internal.RawRecord{
			LineNo:     i + 2,
			Data:       cell("Data"),
			Ano:        cell("Ano"),
			Mes:        cell("Mês"),
			Objeto:     cell("Objeto"),
			Investido:  cell("Investido"),
			Cliques:    cell("Cliques"),
			Receita:    cell("Receita"),
			Conversoes: cell("Conversões"),
		})
	}
	return out, nil
}

func parseSKUSheet(f *excelize.File, sheet string) ([]internal.CatalogRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q: empty", sheet)
	}

	cols, err := headerIndex(rows[0], "Nome", "SKU")
	if err != nil {
		return nil, fmt.Errorf("sheet %q: %w", sheet, err)
	}

	out := make([]internal.CatalogRow, 0, len(rows)-1)
	for _, row := range rows[1:] {
		out = append(out, internal.CatalogRow{
			Nome: cellAt(row, cols["Nome"]),
			SKU:  cellAt(row, cols["SKU"]),
		})
	}
	return out, nil
}

// headerIndex maps required column names to their positions in the header
// row. A missing required column is a contract violation with the source.
func headerIndex(header []string, required ...string) (map[string]int, error) {
	positions := map[string]int{}
	for i, cell := range header {
		positions[strings.TrimSpace(cell)] = i
	}

	out := map[string]int{}
	for _, name := range required {
		idx, ok := positions[name]
		if !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
		out[name] = idx
	}
	return out, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
