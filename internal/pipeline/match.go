package pipeline

import (
	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"limpeza/internal"
	"limpeza/internal/catalog"
	"limpeza/internal/config"
)

// Reconciler fuzzy-matches normalized product descriptors against the catalog.
// Matching runs once per distinct descriptor and the result is cached, so two
// rows carrying byte-identical descriptors always get the same disposition.
type Reconciler struct {
	cfg    config.Config
	cat    *catalog.Catalog
	cache  map[string]internal.MatchResult
	scorer func(a, b string) int
}

func NewReconciler(cfg config.Config, cat *catalog.Catalog) *Reconciler {
	return &Reconciler{
		cfg:    cfg,
		cat:    cat,
		cache:  map[string]internal.MatchResult{},
		scorer: func(a, b string) int { return fuzzy.WRatio(a, b) },
	}
}

// Precompute populates the cache for every distinct descriptor up front, so
// the per-row stage is pure cache reads.
func (r *Reconciler) Precompute(distinct []string) {
	for _, norm := range distinct {
		if _, ok := r.cache[norm]; !ok {
			r.cache[norm] = r.match(norm)
		}
	}
}

// Reconcile returns the cached disposition for a normalized descriptor,
// computing and caching it on first sight.
func (r *Reconciler) Reconcile(norm string) internal.MatchResult {
	if res, ok := r.cache[norm]; ok {
		return res
	}
	res := r.match(norm)
	r.cache[norm] = res
	return res
}

func (r *Reconciler) match(norm string) internal.MatchResult {
	result := internal.MatchResult{Input: norm}

	bestName := ""
	bestScore := -1
	for _, candidate := range r.cat.NormalizedNames() {
		score := r.scorer(norm, candidate)
		if score > bestScore {
			bestScore = score
			bestName = candidate
		}
	}
	if bestScore < 0 {
		return result
	}

	result.Score = bestScore
	if bestScore >= r.threshold(norm) {
		result.Matched = bestName
		result.OK = true
	}
	return result
}

func (r *Reconciler) threshold(norm string) int {
	if len([]rune(norm)) <= r.cfg.MatchShortLen {
		return r.cfg.MatchShortThreshold
	}
	return r.cfg.MatchLongThreshold
}
