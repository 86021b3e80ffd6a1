package analysis

import (
	"testing"
	"time"

	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"
	"flip-mcp/internal/stats"
)

func fixtureSales() []comps.ComparableSale {
	return []comps.ComparableSale{
		{ID: "a", Sqft: 1000, SalesPrice: 200000, PricePerSqft: 200, DaysAgo: 10, DaysOnMarket: 12},
		{ID: "b", Sqft: 1000, SalesPrice: 220000, PricePerSqft: 220, DaysAgo: 40, DaysOnMarket: 20},
		{ID: "c", Sqft: 1000, SalesPrice: 150000, PricePerSqft: 150, DaysAgo: 100, DaysOnMarket: 40},
	}
}

func TestWorkspace_DerivesArv(t *testing.T) {
	w := New(comps.Subject{Sqft: 1500}, fixtureSales(), calculator.DefaultInputs())

	if got := w.Arv(); got != calculator.AutoArv(300000) {
		t.Errorf("Arv() = %+v, want auto 300000", got)
	}
}

func TestWorkspace_RecomputesOnChange(t *testing.T) {
	w := New(comps.Subject{Sqft: 1000}, fixtureSales(), calculator.DefaultInputs())

	w2, ok := w.ToggleExcluded("c")
	if !ok {
		t.Fatal("expected comp c to exist")
	}
	if got := w2.Arv().Value; got != 210000 {
		t.Errorf("ARV after excluding c = %v, want 210000", got)
	}
	if w.Arv().Value != 200000 {
		t.Errorf("original workspace changed: %v", w.Arv().Value)
	}

	w3 := w2.WithStatMode(stats.StatAverage)
	if got := w3.Arv().Value; got != 210000 {
		t.Errorf("average ARV = %v, want 210000", got)
	}

	w4 := w.WithStatMode(stats.StatAverage)
	if got := w4.Arv().Value; got != 190000 {
		t.Errorf("average ARV over all comps = %v, want 190000", got)
	}

	w5 := w.WithSubject(comps.Subject{Sqft: 2000})
	if got := w5.Arv().Value; got != 400000 {
		t.Errorf("ARV after subject change = %v, want 400000", got)
	}

	if _, ok := w.ToggleExcluded("missing"); ok {
		t.Error("toggling an unknown id should report false")
	}
}

func TestWorkspace_ManualArvSurvivesRecompute(t *testing.T) {
	w := New(comps.Subject{Sqft: 1000}, fixtureSales(), calculator.DefaultInputs()).
		OverrideArv(275000)

	w, _ = w.ToggleExcluded("a")
	w = w.WithStatMode(stats.StatAverage).WithComps(nil)

	if got := w.Arv(); got != calculator.ManualArv(275000) {
		t.Errorf("manual ARV replaced: %+v", got)
	}

	w = w.WithComps(fixtureSales()).ResetArv()
	if got := w.Arv(); got != calculator.AutoArv(190000) {
		t.Errorf("ResetArv() = %+v, want auto 190000", got)
	}
}

func TestWorkspace_BuildReport(t *testing.T) {
	w := New(comps.Subject{Sqft: 1000}, fixtureSales(), calculator.DefaultInputs()).
		WithBucketMode(stats.BucketCumulative)

	r := w.Build()

	if r.Aggregate.Count != 3 {
		t.Errorf("aggregate count = %d, want 3", r.Aggregate.Count)
	}
	if len(r.Buckets) != len(stats.TimeThresholds) {
		t.Fatalf("expected %d buckets, got %d", len(stats.TimeThresholds), len(r.Buckets))
	}
	if r.Buckets[4].Stats.Count != 3 {
		t.Errorf("0–180 cumulative bucket count = %d, want 3", r.Buckets[4].Stats.Count)
	}
	if r.Arv != 200000 || r.DerivedArv != 200000 || r.ArvIsManual {
		t.Errorf("unexpected ARV fields: %v %v %v", r.Arv, r.DerivedArv, r.ArvIsManual)
	}
	if r.Offer != calculator.CalculateMaxOffer(w.Inputs()) {
		t.Error("report offer differs from a direct solver call")
	}
}

func TestWorkspace_Warnings(t *testing.T) {
	r := New(comps.Subject{}, nil, calculator.DefaultInputs()).Build()
	if len(r.Warnings) < 2 {
		t.Errorf("expected warnings for no comps and no sqft, got %v", r.Warnings)
	}
}

func TestDeal_Workspace(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	d := Deal{
		Subject: comps.Subject{Sqft: 1200, Bedrooms: 3, Bathrooms: 2},
		Comps: []comps.ComparableSale{
			{ID: "x", Sqft: 1000, SalesPrice: 250000, PricePerSqft: 999, DateSold: "2025-06-20", Bedrooms: 3, Bathrooms: 2},
			{ID: "y", Sqft: 1250, SalesPrice: 250000, DateSold: "2025-03-01", Bedrooms: 3, Bathrooms: 2},
		},
		StatMode: "average",
		Exclude:  []string{"y"},
	}

	w, err := d.Workspace(calculator.DefaultInputs(), now)
	if err != nil {
		t.Fatalf("Workspace() error: %v", err)
	}

	sales := w.Comps()
	if sales[0].PricePerSqft != 250 {
		t.Errorf("price per sqft not re-derived: %v", sales[0].PricePerSqft)
	}
	if sales[0].DaysAgo != 10 {
		t.Errorf("days ago = %d, want 10", sales[0].DaysAgo)
	}
	if got := w.Arv().Value; got != 300000 {
		t.Errorf("ARV = %v, want 300000", got)
	}

	d.StatMode = "mode"
	if _, err := d.Workspace(calculator.DefaultInputs(), now); err == nil {
		t.Error("expected error for bad stat mode")
	}

	d.StatMode = ""
	d.Comps[0].Sqft = 0
	if _, err := d.Workspace(calculator.DefaultInputs(), now); err == nil {
		t.Error("expected error for zero sqft comp")
	}
}

func TestDeal_ExcludeKeepsRecordFlags(t *testing.T) {
	now := time.Date(2025, 6, 30, 12, 0, 0, 0, time.UTC)
	d := Deal{
		Subject: comps.Subject{Sqft: 1000},
		Comps: []comps.ComparableSale{
			{ID: "a", Sqft: 1000, SalesPrice: 100000, DaysAgo: 10, Excluded: true},
			{ID: "b", Sqft: 1000, SalesPrice: 200000, DaysAgo: 20},
			{ID: "c", Sqft: 1000, SalesPrice: 300000, DaysAgo: 30},
		},
		Exclude: []string{"c"},
	}

	w, err := d.Workspace(calculator.DefaultInputs(), now)
	if err != nil {
		t.Fatalf("Workspace() error: %v", err)
	}

	r := w.Build()
	if r.Aggregate.Count != 1 {
		t.Errorf("active count = %d, want 1", r.Aggregate.Count)
	}
	if r.Arv != 200000 {
		t.Errorf("ARV = %v, want 200000", r.Arv)
	}
	for _, c := range r.Comps {
		if want := c.ID != "b"; c.Excluded != want {
			t.Errorf("comp %s excluded = %v, want %v", c.ID, c.Excluded, want)
		}
	}
}
