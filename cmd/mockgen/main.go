package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"flip-mcp/cmd/mockgen/engine"
	"flip-mcp/internal/comps"
)

func main() {
	scenario := flag.String("scenario", "steady", "Scenario to generate: "+strings.Join(engine.Scenarios, ", "))
	outDir := flag.String("out", "./comps", "Output directory for mock files")
	name := flag.String("name", "mock", "Comps set name")
	count := flag.Int("count", 12, "Number of sales to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "Random seed")
	sqft := flag.Float64("sqft", 1500, "Subject living area")
	beds := flag.Float64("beds", 3, "Subject bedrooms")
	baths := flag.Float64("baths", 2, "Subject bathrooms")
	address := flag.String("address", "123 Main St", "Subject address")
	flag.Parse()

	subject := comps.Subject{
		Address:   *address,
		Bedrooms:  *beds,
		Bathrooms: *baths,
		Sqft:      *sqft,
		HomeType:  comps.SingleFamily,
	}

	fmt.Printf("Generating scenario '%s' (Count: %d, Seed: %d) to %s...\n", *scenario, *count, *seed, *outDir)

	sales, err := engine.Generate(engine.GeneratorConfig{
		Scenario: *scenario,
		Subject:  subject,
		Count:    *count,
		Seed:     *seed,
		Now:      time.Now(),
	})
	if err != nil {
		fmt.Printf("Failed to generate mock data: %v\n", err)
		os.Exit(1)
	}

	if err := engine.Save(*outDir, *name, subject, sales); err != nil {
		fmt.Printf("Failed to save mock data: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Done.")
}
