package pipeline

import (
	"testing"

	"limpeza/internal"
	"limpeza/internal/config"
)

func runPipeline(t *testing.T, raw []internal.RawRecord, cat []internal.CatalogRow) Result {
	t.Helper()
	cfg, _ := config.Load()
	res, err := NewCleaner(cfg, nil).Run(raw, cat)
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestRunEndToEnd(t *testing.T) {
	raw := []internal.RawRecord{
		{LineNo: 2, Objeto: "Caderno Espiral", Ano: "23", Mes: "5", Investido: "100"},
		{LineNo: 3, Objeto: "  "},
		{LineNo: 4, Objeto: "Cadernoo Espiral", Ano: "9999", Mes: "MAIO"},
	}
	cat := []internal.CatalogRow{{Nome: "CADERNO ESPIRAL", SKU: "SKU1"}}

	res := runPipeline(t, raw, cat)

	if len(res.Clean) != 1 {
		t.Fatalf("clean = %d, want 1", len(res.Clean))
	}
	clean := res.Clean[0]
	if clean.SKU != "SKU1" || clean.Ano != 2023 || clean.Mes != 5 || clean.Investido != 100 {
		t.Fatalf("unexpected clean row: %+v", clean)
	}
	if clean.NomeProduto != "CADERNO ESPIRAL" {
		t.Fatalf("product name = %q", clean.NomeProduto)
	}

	if len(res.Rejected) != 2 {
		t.Fatalf("rejected = %d, want 2", len(res.Rejected))
	}
	// Ledger keeps stage order: blank filter fires before date resolution.
	if res.Rejected[0].Motivo != internal.ReasonBlankObject || res.Rejected[0].LineNo != 3 {
		t.Fatalf("unexpected first ledger entry: %+v", res.Rejected[0])
	}
	if res.Rejected[1].Motivo != internal.ReasonInvalidDate || res.Rejected[1].LineNo != 4 {
		t.Fatalf("unexpected second ledger entry: %+v", res.Rejected[1])
	}

	stats := res.Stats
	if stats.TotalRows != 3 || stats.ValidBaseline != 2 || stats.CleanCount != 1 || stats.RejectedCount != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.RunID == "" {
		t.Fatal("run id must be set")
	}
}

func TestRunPartitionCompleteness(t *testing.T) {
	raw := []internal.RawRecord{
		{LineNo: 2, Objeto: "Caderno Espiral", Ano: "2023", Mes: "5"},
		{LineNo: 3, Objeto: ""},
		{LineNo: 4, Objeto: "QQQQWWWWZZZZ", Ano: "2023", Mes: "5"},
		{LineNo: 5, Objeto: "Caderno Espiral", Ano: "1980", Mes: "5"},
		{LineNo: 6, Objeto: "Caderno Espiral", Ano: "2023", Mes: "13"},
		{LineNo: 7, Objeto: "Caderno Espiral", Ano: "bad", Mes: "bad"},
	}
	cat := []internal.CatalogRow{{Nome: "CADERNO ESPIRAL", SKU: "SKU1"}}

	res := runPipeline(t, raw, cat)

	if got := len(res.Clean) + len(res.Rejected); got != len(raw) {
		t.Fatalf("clean+rejected = %d, want %d", got, len(raw))
	}

	seen := map[int]int{}
	for _, rec := range res.Rejected {
		seen[rec.LineNo]++
	}
	for line, n := range seen {
		if n != 1 {
			t.Fatalf("line %d appears %d times in the ledger", line, n)
		}
	}

	want := map[internal.RemovalReason]int{
		internal.ReasonBlankObject:     1,
		internal.ReasonNameNotMatched:  1,
		internal.ReasonInvalidDate:     1,
		internal.ReasonYearOutOfRange:  1,
		internal.ReasonMonthOutOfRange: 1,
	}
	for reason, count := range want {
		if res.Stats.ReasonCounts[reason] != count {
			t.Fatalf("reason %s count = %d, want %d", reason, res.Stats.ReasonCounts[reason], count)
		}
	}
}

func TestRunRangeValidation(t *testing.T) {
	cases := []struct {
		name   string
		ano    string
		mes    string
		reason internal.RemovalReason
	}{
		{name: "year below range", ano: "1989", mes: "5", reason: internal.ReasonYearOutOfRange},
		{name: "year above range", ano: "2031", mes: "5", reason: internal.ReasonYearOutOfRange},
		{name: "month zero", ano: "2023", mes: "0", reason: internal.ReasonMonthOutOfRange},
		{name: "month thirteen", ano: "2023", mes: "13", reason: internal.ReasonMonthOutOfRange},
	}
	cat := []internal.CatalogRow{{Nome: "CADERNO ESPIRAL", SKU: "SKU1"}}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := []internal.RawRecord{{LineNo: 2, Objeto: "Caderno Espiral", Ano: tc.ano, Mes: tc.mes}}
			res := runPipeline(t, raw, cat)
			if len(res.Rejected) != 1 || res.Rejected[0].Motivo != tc.reason {
				t.Fatalf("want single %s rejection, got %+v", tc.reason, res.Rejected)
			}
		})
	}

	// Boundary years stay clean.
	for _, ano := range []string{"1990", "2030"} {
		raw := []internal.RawRecord{{LineNo: 2, Objeto: "Caderno Espiral", Ano: ano, Mes: "1"}}
		res := runPipeline(t, raw, cat)
		if len(res.Clean) != 1 {
			t.Fatalf("year %s should pass validation: %+v", ano, res.Rejected)
		}
	}
}

func TestRunNumericDefaulting(t *testing.T) {
	raw := []internal.RawRecord{{
		LineNo: 2, Objeto: "Caderno Espiral", Ano: "2023", Mes: "5",
		Investido: "N/A", Cliques: "", Receita: "10,5", Conversoes: "x",
	}}
	cat := []internal.CatalogRow{{Nome: "CADERNO ESPIRAL", SKU: "SKU1"}}

	res := runPipeline(t, raw, cat)
	if len(res.Clean) != 1 {
		t.Fatalf("uncoercible numerics must not reject the row: %+v", res.Rejected)
	}
	clean := res.Clean[0]
	if clean.Investido != 0 || clean.Cliques != 0 || clean.Conversoes != 0 {
		t.Fatalf("uncoercible fields must default to 0: %+v", clean)
	}
	if clean.Receita != 10.5 {
		t.Fatalf("receita = %v, want 10.5", clean.Receita)
	}
}

func TestRunIdenticalDescriptorsSameDisposition(t *testing.T) {
	raw := []internal.RawRecord{
		{LineNo: 2, Objeto: "Cadernoo Espiral", Ano: "2023", Mes: "5"},
		{LineNo: 3, Objeto: "Cadernoo Espiral", Ano: "2024", Mes: "6"},
	}
	cat := []internal.CatalogRow{{Nome: "CADERNO ESPIRAL", SKU: "SKU1"}}

	res := runPipeline(t, raw, cat)
	if len(res.Clean) != 2 {
		t.Fatalf("identical descriptors must resolve identically: clean=%d rejected=%+v", len(res.Clean), res.Rejected)
	}
	if res.Clean[0].SKU != res.Clean[1].SKU {
		t.Fatalf("dispositions diverged: %+v", res.Clean)
	}
}

func TestRunUnusableCatalogIsSystemFault(t *testing.T) {
	cfg, _ := config.Load()
	raw := []internal.RawRecord{{LineNo: 2, Objeto: "Caderno", Ano: "2023", Mes: "5"}}
	if _, err := NewCleaner(cfg, nil).Run(raw, []internal.CatalogRow{{Nome: "", SKU: ""}}); err == nil {
		t.Fatal("catalog with no usable entries must abort the run")
	}
}
