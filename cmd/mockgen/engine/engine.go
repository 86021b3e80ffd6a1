package engine

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"flip-mcp/internal/comps"
)

type GeneratorConfig struct {
	Scenario string // "steady", "rising" or "outliers"
	Subject  comps.Subject
	Count    int
	Seed     int64
	Now      time.Time
}

// Scenarios lists the supported scenario names.
var Scenarios = []string{"steady", "rising", "outliers"}

func Generate(cfg GeneratorConfig) ([]comps.ComparableSale, error) {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}

	sales := comps.GenerateSynthetic(comps.GeneratorConfig{
		Subject: cfg.Subject,
		Count:   cfg.Count,
		Seed:    cfg.Seed,
		Now:     cfg.Now,
	})

	switch cfg.Scenario {
	case "", "steady":
	case "rising":
		// Appreciation of ~1% per month: older sales are discounted.
		for i := range sales {
			months := float64(sales[i].DaysAgo) / 30
			reprice(&sales[i], sales[i].SalesPrice*math.Pow(0.99, months))
		}
	case "outliers":
		rng := rand.New(rand.NewSource(cfg.Seed + 1))
		n := len(sales) / 6
		if n == 0 {
			n = 1
		}
		for i := 0; i < n && i < len(sales); i++ {
			idx := rng.Intn(len(sales))
			factor := 0.45
			if rng.Float64() > 0.5 {
				factor = 1.9
			}
			reprice(&sales[idx], sales[idx].SalesPrice*factor)
		}
	default:
		return nil, fmt.Errorf("unknown scenario %q", cfg.Scenario)
	}
	return sales, nil
}

func reprice(c *comps.ComparableSale, price float64) {
	c.SalesPrice = math.Round(price)
	c.PricePerSqft = comps.PricePerSqft(c.SalesPrice, c.Sqft)
}

// Save stores the sales as the named JSONL set and writes a companion deal file
// (<name>.deal.json) with the subject, ready for the analyze and batch commands.
func Save(outDir, name string, subject comps.Subject, sales []comps.ComparableSale) error {
	store := comps.NewStore()
	store.Append(name, sales)
	if err := store.Save(outDir, name); err != nil {
		return err
	}

	data, err := json.MarshalIndent(comps.Dataset{Subject: &subject, Comps: store.Get(name)}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode deal file: %w", err)
	}
	dealPath := filepath.Join(outDir, name+".deal.json")
	if err := os.WriteFile(dealPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write deal file: %w", err)
	}
	return nil
}
