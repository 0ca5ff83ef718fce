package util

import (
	"regexp"
	"strconv"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Normalize produces the uppercase, trimmed key used for catalog lookups and
// fuzzy matching. Whitespace-only input collapses to the empty string, which is
// the marker the blank-object filter keys on.
func Normalize(input string) string {
	s := strings.ToUpper(strings.TrimSpace(input))
	s = reSpaces.ReplaceAllString(s, " ")
	return s
}

// StripFloatSuffix removes the trailing ".0" that numeric columns pick up when
// they pass through a spreadsheet as text ("2023.0" -> "2023").
func StripFloatSuffix(token string) string {
	return strings.TrimSuffix(strings.TrimSpace(token), ".0")
}

var (
	reThousandDots   = regexp.MustCompile(`^\d{1,3}(?:\.\d{3})+$`)
	reThousandCommas = regexp.MustCompile(`^\d{1,3}(?:,\d{3})+$`)
)

// CoerceNumeric parses a cell as a number, tolerating pt-BR texture: decimal
// commas, thousand separators and stray spaces. Anything unparseable coerces
// to 0. Defaulting instead of failing is the contract, not a fallback.
func CoerceNumeric(value string) float64 {
	compact := strings.ReplaceAll(strings.TrimSpace(value), "\u00A0", "")
	compact = strings.ReplaceAll(compact, " ", "")
	if compact == "" {
		return 0
	}

	switch {
	case reThousandDots.MatchString(compact):
		compact = strings.ReplaceAll(compact, ".", "")
	case reThousandCommas.MatchString(compact):
		compact = strings.ReplaceAll(compact, ",", "")
	case strings.Contains(compact, ",") && !strings.Contains(compact, "."):
		compact = strings.ReplaceAll(compact, ",", ".")
	}

	parsed, err := strconv.ParseFloat(compact, 64)
	if err != nil {
		return 0
	}
	return parsed
}
