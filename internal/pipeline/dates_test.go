package pipeline

import (
	"testing"

	"limpeza/internal"
)

func TestResolveDateExplicitWins(t *testing.T) {
	// The explicit column beats contradictory Ano/Mês, even the invalid marker.
	raw := internal.RawRecord{Data: "15/03/2023", Ano: "9999", Mes: "12"}
	got := ResolveDate(raw)
	if !got.Resolved || got.Year != 2023 || got.Month != 3 {
		t.Fatalf("unexpected resolution: %+v", got)
	}
	if got.Source != internal.DateFromExplicit {
		t.Fatalf("source = %q, want explicit", got.Source)
	}
}

func TestResolveDateDayFirst(t *testing.T) {
	got := ResolveDate(internal.RawRecord{Data: "05/03/2023"})
	if !got.Resolved || got.Month != 3 {
		t.Fatalf("ambiguous d/m must resolve day-first: %+v", got)
	}
}

func TestResolveDateColumnFallback(t *testing.T) {
	cases := []struct {
		name      string
		raw       internal.RawRecord
		wantOK    bool
		wantYear  int
		wantMonth int
	}{
		{
			name:      "placeholder year and month name",
			raw:       internal.RawRecord{Ano: "YY", Mes: "MAR"},
			wantOK:    true,
			wantYear:  2022,
			wantMonth: 3,
		},
		{
			name:      "full month name",
			raw:       internal.RawRecord{Ano: "2021", Mes: "dezembro"},
			wantOK:    true,
			wantYear:  2021,
			wantMonth: 12,
		},
		{
			name:      "two digit year",
			raw:       internal.RawRecord{Ano: "23", Mes: "5"},
			wantOK:    true,
			wantYear:  2023,
			wantMonth: 5,
		},
		{
			name:      "float artifact columns",
			raw:       internal.RawRecord{Ano: "2023.0", Mes: "5.0"},
			wantOK:    true,
			wantYear:  2023,
			wantMonth: 5,
		},
		{
			name:   "invalid year marker forces unresolved",
			raw:    internal.RawRecord{Ano: "9999", Mes: "MAIO"},
			wantOK: false,
		},
		{
			name:   "unusable month",
			raw:    internal.RawRecord{Ano: "2023", Mes: "SOON"},
			wantOK: false,
		},
		{
			name:   "both columns blank",
			raw:    internal.RawRecord{},
			wantOK: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveDate(tc.raw)
			if got.Resolved != tc.wantOK {
				t.Fatalf("resolved=%v want %v (%+v)", got.Resolved, tc.wantOK, got)
			}
			if !tc.wantOK {
				return
			}
			if got.Year != tc.wantYear || got.Month != tc.wantMonth {
				t.Fatalf("got (%d,%d) want (%d,%d)", got.Year, got.Month, tc.wantYear, tc.wantMonth)
			}
			if got.Source != internal.DateFromColumns {
				t.Fatalf("source = %q, want columns", got.Source)
			}
		})
	}
}

func TestResolveDateUnparseableExplicitFallsThrough(t *testing.T) {
	got := ResolveDate(internal.RawRecord{Data: "not a date", Ano: "2020", Mes: "2"})
	if !got.Resolved || got.Year != 2020 || got.Month != 2 {
		t.Fatalf("unexpected resolution: %+v", got)
	}
	if got.Source != internal.DateFromColumns {
		t.Fatalf("source = %q, want columns", got.Source)
	}
}
