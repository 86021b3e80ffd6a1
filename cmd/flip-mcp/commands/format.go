package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/report"
	"flip-mcp/internal/simulation"
)

// printJSON writes v as indented JSON.
func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printAnalysis prints a deal report in text format.
func printAnalysis(out io.Writer, r analysis.Report) error {
	if r.Subject.Address != "" {
		fmt.Fprintf(out, "Subject:  %s\n", r.Subject.Address)
	}
	fmt.Fprintf(out, "Sqft:     %g\n", r.Subject.Sqft)
	fmt.Fprintf(out, "Comps:    %d active of %d (%s, %s buckets)\n\n", r.Aggregate.Count, len(r.Comps), r.StatMode, r.BucketMode)

	a := r.Aggregate
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEDIAN\tAVERAGE")
	fmt.Fprintln(w, "------\t------\t-------")
	fmt.Fprintf(w, "Days on market\t%.0f\t%.1f\n", a.MedianDaysOnMarket, a.AverageDaysOnMarket)
	fmt.Fprintf(w, "Sale price\t%s\t%s\n", report.Currency(a.MedianPrice), report.Currency(a.AveragePrice))
	fmt.Fprintf(w, "Price/sqft\t%s\t%s\n", report.Cents(a.MedianPricePerSqft), report.Cents(a.AveragePricePerSqft))
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing statistics table: %w", err)
	}
	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WINDOW\tCOMPS\tMEDIAN $/SQFT\tAVG $/SQFT\tMEDIAN PRICE")
	fmt.Fprintln(w, "------\t-----\t-------------\t----------\t------------")
	for _, b := range r.Buckets {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", b.Label, b.Stats.Count,
			report.Cents(b.Stats.MedianPricePerSqft), report.Cents(b.Stats.AveragePricePerSqft), report.Currency(b.Stats.MedianPrice))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing bucket table: %w", err)
	}
	fmt.Fprintln(out)

	source := "derived"
	if r.ArvIsManual {
		source = "manual, comps suggest " + report.Currency(r.DerivedArv)
	}
	fmt.Fprintf(out, "ARV:        %s (%s)\n", report.Cents(r.Arv), source)
	fmt.Fprintf(out, "Max offer:  %s\n\n", report.Cents(r.Offer.MaxOffer))

	b := r.Offer.Breakdown
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	rows := []struct {
		label string
		value float64
	}{
		{"Closing costs (sale)", b.ClosingCostsAtSale},
		{"Agent fees", b.AgentFees},
		{"Desired profit", b.DesiredProfit},
		{"Repairs", b.RepairCosts},
		{"Holding", b.HoldingCosts},
		{"Loan interest", b.LoanInterest},
		{"Points", b.Points},
		{"Closing costs (buy)", b.ClosingCostsAtBuy},
		{"Max offer", r.Offer.MaxOffer},
		{"Total", b.Total(r.Offer.MaxOffer)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t\n", row.label, report.Cents(row.value))
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing breakdown table: %w", err)
	}

	for _, warning := range r.Warnings {
		fmt.Fprintf(out, "\nWARNING: %s", warning)
	}
	if len(r.Warnings) > 0 {
		fmt.Fprintln(out)
	}
	return nil
}

// printSimulation prints the resampled ARV and offer ranges.
func printSimulation(out io.Writer, res simulation.Result) error {
	fmt.Fprintf(out, "\nResampled %d times over %d comps\n", res.Trials, res.Comps)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tP10\tP50\tP90")
	fmt.Fprintf(w, "ARV\t%s\t%s\t%s\n", report.Currency(res.Arv.P10), report.Currency(res.Arv.P50), report.Currency(res.Arv.P90))
	fmt.Fprintf(w, "Max offer\t%s\t%s\t%s\n", report.Currency(res.MaxOffer.P10), report.Currency(res.MaxOffer.P50), report.Currency(res.MaxOffer.P90))
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing simulation table: %w", err)
	}
	if res.NoDeal > 0 {
		fmt.Fprintf(out, "No deal in %s of trials\n", report.Percent(res.NoDeal*100))
	}
	for _, warning := range res.Warnings {
		fmt.Fprintf(out, "WARNING: %s\n", warning)
	}
	return nil
}

// truncate shortens s to max characters, adding "..." if truncated.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
