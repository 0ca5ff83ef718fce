package internal

import "time"

// RemovalReason tags a rejected row with the first pipeline stage it failed.
type RemovalReason string

const (
	ReasonBlankObject     RemovalReason = "blank_object"
	ReasonNameNotMatched  RemovalReason = "name_not_matched"
	ReasonInvalidDate     RemovalReason = "invalid_date"
	ReasonYearOutOfRange  RemovalReason = "year_out_of_range"
	ReasonMonthOutOfRange RemovalReason = "month_out_of_range"
)

// RawRecord is one row of the transactional source table, cell text untouched.
type RawRecord struct {
	LineNo     int
	Data       string
	Ano        string
	Mes        string
	Objeto     string
	Investido  string
	Cliques    string
	Receita    string
	Conversoes string
}

// CatalogRow is one row of the catalog source table before vetting.
type CatalogRow struct {
	Nome string
	SKU  string
}

// CatalogEntry is a vetted catalog product, keyed externally by normalized name.
type CatalogEntry struct {
	Nome string
	SKU  string
}

// MatchResult is the reconciliation outcome for one distinct normalized descriptor.
type MatchResult struct {
	Input   string
	Matched string
	Score   int
	OK      bool
}

// DateSource records which resolution rule produced a ResolvedDate.
type DateSource string

const (
	DateFromExplicit DateSource = "explicit"
	DateFromColumns  DateSource = "columns"
)

// ResolvedDate is a repaired (year, month) pair. Resolved is false when neither
// the explicit date nor the year/month fallback yielded a usable pair.
type ResolvedDate struct {
	Year     int
	Month    int
	Source   DateSource
	Resolved bool
}

// CleanRecord is a fully validated output row.
type CleanRecord struct {
	Data        time.Time
	Mes         int
	Ano         int
	SKU         string
	NomeProduto string
	Investido   float64
	Cliques     float64
	Receita     float64
	Conversoes  float64
}

// RejectedRecord keeps every original cell of a removed row plus the reason,
// so the absence of any row from the clean output can be audited.
type RejectedRecord struct {
	RawRecord
	Motivo RemovalReason
}

// RunStats carries checkpoint counts for reporting. Never used for control flow.
type RunStats struct {
	RunID         string
	TotalRows     int
	ValidBaseline int
	CleanCount    int
	RejectedCount int
	ReasonCounts  map[RemovalReason]int
}
