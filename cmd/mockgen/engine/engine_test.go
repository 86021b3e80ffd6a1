package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"flip-mcp/internal/comps"
	"flip-mcp/internal/stats"
)

var now = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func TestGenerate_Scenarios(t *testing.T) {
	subject := comps.Subject{Sqft: 1500, Bedrooms: 3, Bathrooms: 2}
	steady, err := Generate(GeneratorConfig{Scenario: "steady", Subject: subject, Count: 24, Seed: 3, Now: now})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("rising discounts older sales", func(t *testing.T) {
		rising, err := Generate(GeneratorConfig{Scenario: "rising", Subject: subject, Count: 24, Seed: 3, Now: now})
		if err != nil {
			t.Fatal(err)
		}
		for i := range rising {
			if rising[i].SalesPrice > steady[i].SalesPrice {
				t.Errorf("%s: rising price %v above steady %v", rising[i].ID, rising[i].SalesPrice, steady[i].SalesPrice)
			}
			if rising[i].PricePerSqft != comps.PricePerSqft(rising[i].SalesPrice, rising[i].Sqft) {
				t.Errorf("%s: price per sqft not rederived", rising[i].ID)
			}
		}
	})

	t.Run("outliers move the average more than the median", func(t *testing.T) {
		outliers, err := Generate(GeneratorConfig{Scenario: "outliers", Subject: subject, Count: 24, Seed: 3, Now: now})
		if err != nil {
			t.Fatal(err)
		}
		base := stats.ComputeAggregateStatistics(steady)
		got := stats.ComputeAggregateStatistics(outliers)
		if got.AveragePricePerSqft == base.AveragePricePerSqft {
			t.Error("expected outliers to change the average price per sqft")
		}
	})

	t.Run("unknown", func(t *testing.T) {
		if _, err := Generate(GeneratorConfig{Scenario: "chaos"}); err == nil {
			t.Error("expected error for unknown scenario")
		}
	})
}

func TestSave(t *testing.T) {
	dir := t.TempDir()
	subject := comps.Subject{Address: "1 Main St", Sqft: 1500}
	sales, err := Generate(GeneratorConfig{Subject: subject, Count: 5, Seed: 1, Now: now})
	if err != nil {
		t.Fatal(err)
	}
	if err := Save(dir, "demo", subject, sales); err != nil {
		t.Fatalf("Save: %v", err)
	}

	store := comps.NewStore()
	if err := store.Load(dir, "demo"); err != nil {
		t.Fatal(err)
	}
	if store.Count("demo") != 5 {
		t.Errorf("stored %d sales, want 5", store.Count("demo"))
	}

	ds, err := comps.ReadFile(filepath.Join(dir, "demo.deal.json"))
	if err != nil {
		t.Fatal(err)
	}
	if ds.Subject == nil || ds.Subject.Address != "1 Main St" || len(ds.Comps) != 5 {
		t.Errorf("unexpected deal file: %+v", ds)
	}
	if _, err := os.Stat(filepath.Join(dir, "demo.jsonl.tmp")); !os.IsNotExist(err) {
		t.Error("temp file left behind")
	}
}
