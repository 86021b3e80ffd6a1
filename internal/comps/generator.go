package comps

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// GeneratorConfig controls synthetic comp generation.
type GeneratorConfig struct {
	Subject Subject
	Count   int
	Seed    int64
	Now     time.Time
}

var streets = []string{
	"Oak St", "Maple Ave", "Cedar Ln", "Pine Dr", "Elm St",
	"Birch Rd", "Walnut Ave", "Cherry Ln", "Ash Dr", "Spruce St",
	"Willow Way", "Poplar Ct", "Hickory Blvd", "Sycamore Dr", "Magnolia Ln",
}

// GenerateSynthetic produces plausible sales scattered around the subject.
// Used for demos and as fallback data when no real comps are available.
func GenerateSynthetic(cfg GeneratorConfig) []ComparableSale {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	if cfg.Count <= 0 {
		cfg.Count = 12
	}
	baseSqft := cfg.Subject.Sqft
	if baseSqft <= 0 {
		baseSqft = 1500
	}
	baseBeds := cfg.Subject.Bedrooms
	if baseBeds <= 0 {
		baseBeds = 3
	}
	baseBaths := cfg.Subject.Bathrooms
	if baseBaths <= 0 {
		baseBaths = 2
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	sales := make([]ComparableSale, 0, cfg.Count)

	for i := 0; i < cfg.Count; i++ {
		sqft := baseSqft + math.Floor((rng.Float64()-0.5)*600)
		if sqft < 400 {
			sqft = 400
		}
		ppsf := 150 + rng.Float64()*80
		price := math.Round(sqft * ppsf)
		daysAgo := rng.Intn(MaxTimePeriodDays) + 1
		sold := cfg.Now.AddDate(0, 0, -daysAgo)

		beds := baseBeds
		if rng.Float64() > 0.7 {
			if rng.Float64() > 0.5 {
				beds++
			} else {
				beds--
			}
		}
		baths := baseBaths
		if rng.Float64() > 0.7 {
			if rng.Float64() > 0.5 {
				baths += 0.5
			} else {
				baths -= 0.5
			}
		}

		sales = append(sales, ComparableSale{
			ID:           fmt.Sprintf("mock-%d", i),
			Address:      fmt.Sprintf("%d %s", 100+rng.Intn(900), streets[i%len(streets)]),
			Bedrooms:     math.Max(1, beds),
			Bathrooms:    math.Max(1, baths),
			Sqft:         sqft,
			DaysOnMarket: rng.Intn(60) + 5,
			SalesPrice:   price,
			PricePerSqft: PricePerSqft(price, sqft),
			DateSold:     sold.Format(DateLayout),
			DaysAgo:      daysAgo,
		})
	}
	return sales
}
