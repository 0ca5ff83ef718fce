package catalog

import (
	"fmt"
	"sort"
	"strings"

	"limpeza/internal"
	"limpeza/internal/util"
)

// Catalog is the immutable, deduplicated set of canonical products, keyed by
// normalized name. Built once per run from the catalog source sheet.
type Catalog struct {
	byNorm map[string]internal.CatalogEntry
	names  []string
}

// Build vets the source rows and constructs the catalog. Rows with a blank name
// or SKU are dropped. When two rows normalize to the same key the first one
// wins; later duplicates are discarded without a ledger entry (the catalog is
// assumed pre-vetted). A catalog with zero usable entries is a hard failure.
func Build(rows []internal.CatalogRow) (*Catalog, error) {
	c := &Catalog{byNorm: map[string]internal.CatalogEntry{}}

	for _, row := range rows {
		if strings.TrimSpace(row.Nome) == "" || strings.TrimSpace(row.SKU) == "" {
			continue
		}
		norm := util.Normalize(row.Nome)
		if _, exists := c.byNorm[norm]; exists {
			continue
		}
		c.byNorm[norm] = internal.CatalogEntry{Nome: row.Nome, SKU: row.SKU}
		c.names = append(c.names, norm)
	}

	if len(c.byNorm) == 0 {
		return nil, fmt.Errorf("catalog: no usable entries in %d source rows", len(rows))
	}

	sort.Strings(c.names)
	return c, nil
}

func (c *Catalog) Lookup(norm string) (internal.CatalogEntry, bool) {
	entry, ok := c.byNorm[norm]
	return entry, ok
}

// NormalizedNames returns the search space for the reconciler, sorted so that
// candidate iteration order is deterministic across runs.
func (c *Catalog) NormalizedNames() []string {
	return c.names
}

func (c *Catalog) Len() int {
	return len(c.byNorm)
}
