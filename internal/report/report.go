// Package report renders the post-run analysis over the clean and rejected
// tables. Reporting only reads pipeline output; it never feeds back into it.
package report

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"limpeza/internal"
)

const topN = 5

type productTotal struct {
	Name  string
	Value float64
}

// Write prints the analysis report: product performance rankings followed by
// data-quality diagnostics.
func Write(w io.Writer, clean []internal.CleanRecord, rejected []internal.RejectedRecord, stats internal.RunStats) {
	fmt.Fprintf(w, "--- RELATÓRIO DE ANÁLISE (run %s) ---\n", stats.RunID)

	fmt.Fprintf(w, "\n1. Top %d produtos por receita mensal:\n", topN)
	writeMonthlyRanking(w, revenueByMonth(clean), false)

	fmt.Fprintf(w, "\n2. Top %d produtos com menos cliques (receita e cliques > 0):\n", topN)
	writeMonthlyRanking(w, clicksByMonthActive(clean), true)

	fmt.Fprintf(w, "\n3. Top %d produtos por receita média por registro:\n", topN)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, pt := range meanRevenue(clean) {
		fmt.Fprintf(tw, "  %s\tR$ %.2f\n", pt.Name, pt.Value)
	}
	tw.Flush()

	writeRemoved(w, rejected)
	writeQuality(w, stats)
}

func writeRemoved(w io.Writer, rejected []internal.RejectedRecord) {
	if len(rejected) == 0 {
		fmt.Fprintln(w, "\n--- NENHUM DADO REMOVIDO DURANTE A LIMPEZA ---")
		return
	}

	fmt.Fprintln(w, "\n--- DADOS REMOVIDOS ---")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  linha\tData\tMês\tAno\tObjeto\tMotivo_Remocao")
	for _, rec := range rejected {
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\n",
			rec.LineNo, rec.Data, rec.Mes, rec.Ano, rec.Objeto, rec.Motivo)
	}
	tw.Flush()
}

func writeMonthlyRanking(w io.Writer, byMonth map[int][]productTotal, ascending bool) {
	for _, month := range sortedMonths(byMonth) {
		fmt.Fprintf(w, "\n  Mês %d:\n", month)
		totals := byMonth[month]
		if ascending {
			sort.Slice(totals, func(i, j int) bool {
				if totals[i].Value != totals[j].Value {
					return totals[i].Value < totals[j].Value
				}
				return totals[i].Name < totals[j].Name
			})
		} else {
			sort.Slice(totals, func(i, j int) bool {
				if totals[i].Value != totals[j].Value {
					return totals[i].Value > totals[j].Value
				}
				return totals[i].Name < totals[j].Name
			})
		}
		if len(totals) > topN {
			totals = totals[:topN]
		}
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, pt := range totals {
			fmt.Fprintf(tw, "    %s\t%.2f\n", pt.Name, pt.Value)
		}
		tw.Flush()
	}
}

func writeQuality(w io.Writer, stats internal.RunStats) {
	fmt.Fprintf(w, "\n4. Diagnóstico de qualidade dos dados:\n")
	if stats.ValidBaseline == 0 {
		fmt.Fprintln(w, "  Nenhum dado válido encontrado para análise.")
		return
	}

	pct := float64(stats.RejectedCount) / float64(stats.ValidBaseline) * 100
	fmt.Fprintf(w, "  Linhas no arquivo bruto: %d\n", stats.TotalRows)
	fmt.Fprintf(w, "  Registros válidos (sem linhas fantasma): %d\n", stats.ValidBaseline)
	fmt.Fprintf(w, "  Registros limpos: %d\n", stats.CleanCount)
	fmt.Fprintf(w, "  Registros rejeitados: %d (%.1f%% da base válida)\n", stats.RejectedCount, pct)

	if len(stats.ReasonCounts) == 0 {
		return
	}
	fmt.Fprintln(w, "  Distribuição de motivos:")
	for _, reason := range sortedReasons(stats.ReasonCounts) {
		fmt.Fprintf(w, "    %s: %d\n", reason, stats.ReasonCounts[reason])
	}
}

func revenueByMonth(clean []internal.CleanRecord) map[int][]productTotal {
	acc := map[int]map[string]float64{}
	for _, rec := range clean {
		if acc[rec.Mes] == nil {
			acc[rec.Mes] = map[string]float64{}
		}
		acc[rec.Mes][rec.NomeProduto] += rec.Receita
	}
	return flatten(acc)
}

func clicksByMonthActive(clean []internal.CleanRecord) map[int][]productTotal {
	acc := map[int]map[string]float64{}
	for _, rec := range clean {
		if rec.Receita <= 0 || rec.Cliques <= 0 {
			continue
		}
		if acc[rec.Mes] == nil {
			acc[rec.Mes] = map[string]float64{}
		}
		acc[rec.Mes][rec.NomeProduto] += rec.Cliques
	}
	return flatten(acc)
}

// meanRevenue ranks products by average revenue per record, descending.
func meanRevenue(clean []internal.CleanRecord) []productTotal {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, rec := range clean {
		sums[rec.NomeProduto] += rec.Receita
		counts[rec.NomeProduto]++
	}

	out := make([]productTotal, 0, len(sums))
	for name, sum := range sums {
		out = append(out, productTotal{Name: name, Value: sum / float64(counts[name])})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}

func flatten(acc map[int]map[string]float64) map[int][]productTotal {
	out := map[int][]productTotal{}
	for month, products := range acc {
		for name, value := range products {
			out[month] = append(out[month], productTotal{Name: name, Value: value})
		}
	}
	return out
}

func sortedMonths(byMonth map[int][]productTotal) []int {
	months := make([]int, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Ints(months)
	return months
}

func sortedReasons(counts map[internal.RemovalReason]int) []internal.RemovalReason {
	reasons := make([]internal.RemovalReason, 0, len(counts))
	for r := range counts {
		reasons = append(reasons, r)
	}
	sort.Slice(reasons, func(i, j int) bool { return reasons[i] < reasons[j] })
	return reasons
}
