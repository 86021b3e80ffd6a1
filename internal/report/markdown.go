// Package report renders a deal analysis as Markdown.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/visuals"

	"github.com/pkg/browser"
)

// Options controls rendering.
type Options struct {
	Title  string
	Charts bool
}

// Render builds the Markdown document for r.
func Render(r analysis.Report, opts Options) string {
	var sb strings.Builder

	title := opts.Title
	if title == "" {
		title = r.Subject.Address
	}
	if title == "" {
		title = "Flip Analysis"
	}
	fmt.Fprintf(&sb, "# %s\n\n", title)

	writeSubject(&sb, r)
	writeAggregate(&sb, r)
	writeBuckets(&sb, r, opts.Charts)
	writeOffer(&sb, r, opts.Charts)

	if len(r.Warnings) > 0 {
		sb.WriteString("## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&sb, "- %s\n", w)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeSubject(sb *strings.Builder, r analysis.Report) {
	s := r.Subject
	sb.WriteString("## Subject\n\n")
	fmt.Fprintf(sb, "| Beds | Baths | Sqft | Year | Type |\n|---|---|---|---|---|\n")
	year := "-"
	if s.YearBuilt > 0 {
		year = fmt.Sprintf("%d", s.YearBuilt)
	}
	homeType := string(s.HomeType)
	if homeType == "" {
		homeType = "-"
	}
	fmt.Fprintf(sb, "| %g | %g | %g | %s | %s |\n\n", s.Bedrooms, s.Bathrooms, s.Sqft, year, homeType)
}

func writeAggregate(sb *strings.Builder, r analysis.Report) {
	a := r.Aggregate
	fmt.Fprintf(sb, "## Comparable Sales (%d active of %d)\n\n", a.Count, len(r.Comps))
	sb.WriteString("| Metric | Median | Average |\n|---|---|---|\n")
	fmt.Fprintf(sb, "| Days on market | %.0f | %.1f |\n", a.MedianDaysOnMarket, a.AverageDaysOnMarket)
	fmt.Fprintf(sb, "| Sale price | %s | %s |\n", Currency(a.MedianPrice), Currency(a.AveragePrice))
	fmt.Fprintf(sb, "| Price / sqft | %s | %s |\n\n", Cents(a.MedianPricePerSqft), Cents(a.AveragePricePerSqft))

	if len(r.Comps) == 0 {
		return
	}
	sb.WriteString("| ID | Address | Bd/Ba | Sqft | Price | $/sqft | DOM | Sold | Status |\n|---|---|---|---|---|---|---|---|---|\n")
	for _, c := range r.Comps {
		status := "active"
		if c.Excluded {
			status = "excluded"
		}
		fmt.Fprintf(sb, "| %s | %s | %g/%g | %g | %s | %s | %d | %s (%dd) | %s |\n",
			c.ID, c.Address, c.Bedrooms, c.Bathrooms, c.Sqft, Currency(c.SalesPrice), Cents(c.PricePerSqft),
			c.DaysOnMarket, c.DateSold, c.DaysAgo, status)
	}
	sb.WriteString("\n")
}

func writeBuckets(sb *strings.Builder, r analysis.Report, charts bool) {
	fmt.Fprintf(sb, "## Time Buckets (%s)\n\n", r.BucketMode)
	sb.WriteString("| Window | Count | Median price | Median $/sqft | Avg $/sqft | Median DOM |\n|---|---|---|---|---|---|\n")
	for _, b := range r.Buckets {
		fmt.Fprintf(sb, "| %s | %d | %s | %s | %s | %.0f |\n",
			b.Label, b.Stats.Count, Currency(b.Stats.MedianPrice), Cents(b.Stats.MedianPricePerSqft),
			Cents(b.Stats.AveragePricePerSqft), b.Stats.MedianDaysOnMarket)
	}
	sb.WriteString("\n")

	if charts {
		if chart := visuals.GenerateBucketChart(r.Buckets); chart != "" {
			sb.WriteString(chart)
			sb.WriteString("\n\n")
		}
	}
}

func writeOffer(sb *strings.Builder, r analysis.Report, charts bool) {
	b := r.Offer.Breakdown
	source := "derived from comps, " + string(r.StatMode) + " $/sqft"
	if r.ArvIsManual {
		source = fmt.Sprintf("manual override; comps suggest %s", Currency(r.DerivedArv))
	}

	sb.WriteString("## Max Offer\n\n")
	fmt.Fprintf(sb, "**%s**\n\n", Currency(r.Offer.MaxOffer))
	fmt.Fprintf(sb, "ARV %s (%s)\n\n", Currency(r.Arv), source)
	sb.WriteString("| Component | Amount |\n|---|---|\n")
	rows := []struct {
		label string
		value float64
	}{
		{fmt.Sprintf("Closing costs at sale (%s)", Percent(r.Inputs.ClosingCostsSalePct)), b.ClosingCostsAtSale},
		{fmt.Sprintf("Agent fees (%s)", Percent(r.Inputs.AgentFeesPct)), b.AgentFees},
		{"Desired profit", b.DesiredProfit},
		{"Repair costs", b.RepairCosts},
		{fmt.Sprintf("Holding costs (%d mo)", r.Inputs.HoldTimeMonths), b.HoldingCosts},
		{fmt.Sprintf("Loan interest (%s/yr)", Percent(r.Inputs.LoanInterestRate)), b.LoanInterest},
		{fmt.Sprintf("Points (%s)", Percent(r.Inputs.PointsPct)), b.Points},
		{fmt.Sprintf("Closing costs at buy (%s)", Percent(r.Inputs.ClosingCostsBuyPct)), b.ClosingCostsAtBuy},
		{"Max offer", r.Offer.MaxOffer},
	}
	for _, row := range rows {
		fmt.Fprintf(sb, "| %s | %s |\n", row.label, Cents(row.value))
	}
	fmt.Fprintf(sb, "| **Total (= ARV)** | **%s** |\n\n", Cents(b.Total(r.Offer.MaxOffer)))

	if charts {
		if chart := visuals.GenerateCostBreakdownChart(r.Offer); chart != "" {
			sb.WriteString(chart)
			sb.WriteString("\n\n")
		}
	}
}

// Write renders r into dir/<name>.md and returns the file path.
func Write(dir, name string, r analysis.Report, opts Options) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(dir, name+".md")
	if err := os.WriteFile(path, []byte(Render(r, opts)), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}

// Open shows a written report in the user's default viewer.
func Open(path string) error {
	if err := browser.OpenFile(path); err != nil {
		return fmt.Errorf("open report %s: %w", path, err)
	}
	return nil
}
