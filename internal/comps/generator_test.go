package comps

import (
	"testing"
	"time"
)

func TestGenerateSynthetic(t *testing.T) {
	now := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	cfg := GeneratorConfig{
		Subject: Subject{Sqft: 1600, Bedrooms: 3, Bathrooms: 2},
		Seed:    7,
		Now:     now,
	}

	sales := GenerateSynthetic(cfg)
	if len(sales) != 12 {
		t.Fatalf("expected 12 comps by default, got %d", len(sales))
	}

	for _, c := range sales {
		if c.Sqft < 1300 || c.Sqft > 1900 {
			t.Errorf("%s: sqft %v outside ±300 of subject", c.ID, c.Sqft)
		}
		if c.PricePerSqft != PricePerSqft(c.SalesPrice, c.Sqft) {
			t.Errorf("%s: price per sqft %v is not derived", c.ID, c.PricePerSqft)
		}
		if c.DaysAgo < 1 || c.DaysAgo > MaxTimePeriodDays {
			t.Errorf("%s: days ago %d outside 1..180", c.ID, c.DaysAgo)
		}
		if c.DaysOnMarket < 5 || c.DaysOnMarket > 64 {
			t.Errorf("%s: DOM %d outside 5..64", c.ID, c.DaysOnMarket)
		}
		sold, err := c.SoldOn()
		if err != nil {
			t.Fatalf("%s: %v", c.ID, err)
		}
		if DaysAgo(sold, now) != c.DaysAgo {
			t.Errorf("%s: dateSold %s inconsistent with daysAgo %d", c.ID, c.DateSold, c.DaysAgo)
		}
		if c.Bedrooms < 1 || c.Bathrooms < 1 {
			t.Errorf("%s: rooms below 1", c.ID)
		}
	}

	again := GenerateSynthetic(cfg)
	for i := range sales {
		if sales[i] != again[i] {
			t.Fatalf("same seed produced different comps at %d", i)
		}
	}
}
