package pipeline

import (
	"math"
	"strconv"
	"strings"
	"time"

	"limpeza/internal"
	"limpeza/internal/util"
)

// Fixed repair values observed in the source data. "YY" is a placeholder the
// upstream system writes for 2022; "9999" marks a row whose year is known to
// be unrecoverable and must not fall through to numeric parsing.
const (
	yearPlaceholder      = "YY"
	yearPlaceholderValue = 2022
	yearInvalidToken     = "9999"
)

// Accepted layouts for the explicit date column, day-first. Ambiguous d/m
// order is resolved as day-first, matching the source locale.
var dateLayouts = []string{
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-1-2006",
	"02.01.2006",
	"2006-01-02",
	"02/01/2006 15:04:05",
	"2006-01-02 15:04:05",
}

var monthNames = map[string]int{
	"JANEIRO": 1, "FEVEREIRO": 2, "MARÇO": 3, "ABRIL": 4,
	"MAIO": 5, "JUNHO": 6, "JULHO": 7, "AGOSTO": 8,
	"SETEMBRO": 9, "OUTUBRO": 10, "NOVEMBRO": 11, "DEZEMBRO": 12,
	"JAN": 1, "FEV": 2, "MAR": 3, "ABR": 4, "MAI": 5, "JUN": 6,
	"JUL": 7, "AGO": 8, "SET": 9, "OUT": 10, "NOV": 11, "DEZ": 12,
}

// ResolveDate repairs a row's date by applying rules in strict priority order.
// Rule 1: a parseable explicit date column wins outright, whatever the other
// columns say. Rule 2: fall back to the Ano/Mês columns with the placeholder
// and two-digit corrections. Pure function of the row, no shared state.
func ResolveDate(raw internal.RawRecord) internal.ResolvedDate {
	if t, ok := parseExplicitDate(raw.Data); ok {
		return internal.ResolvedDate{
			Year:     t.Year(),
			Month:    int(t.Month()),
			Source:   internal.DateFromExplicit,
			Resolved: true,
		}
	}

	year, yearOK := resolveYear(util.StripFloatSuffix(raw.Ano))
	month, monthOK := resolveMonth(util.StripFloatSuffix(raw.Mes))
	if !yearOK || !monthOK {
		return internal.ResolvedDate{}
	}
	return internal.ResolvedDate{
		Year:     year,
		Month:    month,
		Source:   internal.DateFromColumns,
		Resolved: true,
	}
}

func parseExplicitDate(value string) (time.Time, bool) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func resolveYear(token string) (int, bool) {
	switch token {
	case yearPlaceholder:
		return yearPlaceholderValue, true
	case yearInvalidToken:
		return 0, false
	}

	parsed, err := strconv.ParseFloat(token, 64)
	if err != nil || math.IsNaN(parsed) {
		return 0, false
	}
	year := int(parsed)
	if year < 100 {
		year += 2000
	}
	return year, true
}

func resolveMonth(token string) (int, bool) {
	if parsed, err := strconv.ParseFloat(token, 64); err == nil && !math.IsNaN(parsed) {
		return int(parsed), true
	}
	if month, ok := monthNames[strings.ToUpper(token)]; ok {
		return month, true
	}
	return 0, false
}
