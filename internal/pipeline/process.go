package pipeline

import (
	"log/slog"

	"github.com/google/uuid"

	"limpeza/internal"
	"limpeza/internal/catalog"
	"limpeza/internal/config"
	"limpeza/internal/util"
)

// Cleaner runs the full reconciliation pipeline over one in-memory batch.
type Cleaner struct {
	cfg    config.Config
	logger *slog.Logger
}

func NewCleaner(cfg config.Config, logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{cfg: cfg, logger: logger}
}

// Result is the outcome of one batch run. Every input row lands in exactly
// one of Clean or Rejected.
type Result struct {
	Clean    []internal.CleanRecord
	Rejected []internal.RejectedRecord
	Stats    internal.RunStats
}

type stagedRow struct {
	raw   internal.RawRecord
	norm  string
	entry internal.CatalogEntry
	date  internal.ResolvedDate
}

// Run sequences the stages: blank filter, catalog build, name reconciliation
// over distinct descriptors, date resolution, range validation, assembly.
// Rejections are appended to the ledger stage by stage, so a row exits at the
// first stage it fails and its reason reflects that stage alone. Only system
// faults (an unusable catalog) return an error; bad rows never do.
func (c *Cleaner) Run(raw []internal.RawRecord, catalogRows []internal.CatalogRow) (Result, error) {
	res := Result{Stats: internal.RunStats{
		RunID:        uuid.NewString(),
		TotalRows:    len(raw),
		ReasonCounts: map[internal.RemovalReason]int{},
	}}

	// Stage 1: rows without a usable descriptor are unrecoverable.
	rows := make([]stagedRow, 0, len(raw))
	for _, record := range raw {
		norm := util.Normalize(record.Objeto)
		if norm == "" {
			c.reject(&res, record, internal.ReasonBlankObject)
			continue
		}
		rows = append(rows, stagedRow{raw: record, norm: norm})
	}
	res.Stats.ValidBaseline = len(rows)

	cat, err := catalog.Build(catalogRows)
	if err != nil {
		return Result{}, err
	}

	// Stage 2: reconcile each distinct descriptor once, then apply per row.
	reconciler := NewReconciler(c.cfg, cat)
	reconciler.Precompute(distinctNorms(rows))

	matched := rows[:0]
	for _, row := range rows {
		match := reconciler.Reconcile(row.norm)
		if !match.OK {
			c.reject(&res, row.raw, internal.ReasonNameNotMatched)
			continue
		}
		entry, ok := cat.Lookup(match.Matched)
		if !ok {
			// Cache only holds names taken from the catalog itself.
			c.reject(&res, row.raw, internal.ReasonNameNotMatched)
			continue
		}
		row.entry = entry
		matched = append(matched, row)
	}

	// Stage 3: hierarchical date repair.
	dated := matched[:0]
	for _, row := range matched {
		row.date = ResolveDate(row.raw)
		if !row.date.Resolved {
			c.reject(&res, row.raw, internal.ReasonInvalidDate)
			continue
		}
		dated = append(dated, row)
	}

	// Stage 4: business range validation, one reason per row.
	valid := dated[:0]
	for _, row := range dated {
		if reason, ok := ValidateRange(row.date); !ok {
			c.reject(&res, row.raw, reason)
			continue
		}
		valid = append(valid, row)
	}

	for _, row := range valid {
		res.Clean = append(res.Clean, AssembleClean(row.raw, row.date, row.entry))
	}

	res.Stats.CleanCount = len(res.Clean)
	res.Stats.RejectedCount = len(res.Rejected)

	c.logger.Info("pipeline run complete",
		"runId", res.Stats.RunID,
		"total", res.Stats.TotalRows,
		"validBaseline", res.Stats.ValidBaseline,
		"clean", res.Stats.CleanCount,
		"rejected", res.Stats.RejectedCount,
	)

	return res, nil
}

func (c *Cleaner) reject(res *Result, raw internal.RawRecord, reason internal.RemovalReason) {
	res.Rejected = append(res.Rejected, internal.RejectedRecord{RawRecord: raw, Motivo: reason})
	res.Stats.ReasonCounts[reason]++
	c.logger.Debug("row rejected", "line", raw.LineNo, "reason", string(reason))
}

// distinctNorms returns each distinct normalized descriptor in first-appearance
// order, so the match cache is populated deterministically.
func distinctNorms(rows []stagedRow) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(rows))
	for _, row := range rows {
		if _, ok := seen[row.norm]; ok {
			continue
		}
		seen[row.norm] = struct{}{}
		out = append(out, row.norm)
	}
	return out
}
