package pipeline

import (
	"time"

	"limpeza/internal"
	"limpeza/internal/util"
)

// Business range for plausible transaction years.
const (
	yearMin = 1990
	yearMax = 2030
)

// ValidateRange applies the sequential range checks to a resolved date and
// returns the reason for the first one that fails. A row fails at most one
// check because removal is immediate.
func ValidateRange(date internal.ResolvedDate) (internal.RemovalReason, bool) {
	if date.Year < yearMin || date.Year > yearMax {
		return internal.ReasonYearOutOfRange, false
	}
	if date.Month < 1 || date.Month > 12 {
		return internal.ReasonMonthOutOfRange, false
	}
	return "", true
}

// AssembleClean builds the output row for a record that survived every stage.
// Numeric fields coerce with a 0 default; the date is the first day of the
// resolved month.
func AssembleClean(raw internal.RawRecord, date internal.ResolvedDate, entry internal.CatalogEntry) internal.CleanRecord {
	return internal.CleanRecord{
		Data:        time.Date(date.Year, time.Month(date.Month), 1, 0, 0, 0, 0, time.UTC),
		Mes:         date.Month,
		Ano:         date.Year,
		SKU:         entry.SKU,
		NomeProduto: entry.Nome,
		Investido:   util.CoerceNumeric(raw.Investido),
		Cliques:     util.CoerceNumeric(raw.Cliques),
		Receita:     util.CoerceNumeric(raw.Receita),
		Conversoes:  util.CoerceNumeric(raw.Conversoes),
	}
}
