package mcp

import (
	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	sdk.AddTool(s.server, &sdk.Tool{
		Name: "compute_aggregate_statistics",
		Description: "Summarize a set of comparable sales: median and average days on market, sale price and price per square foot, over the comps that are not excluded. " +
			"Pass the comps inline or name a stored set with 'set'. Price per square foot is always recomputed from salesPrice / sqft.",
	}, s.handleAggregateStatistics)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "build_time_buckets",
		Description: "Split comps into five sale-age windows (0-30, 31-60, 61-90, 91-120, 121-180 days) with statistics per window. " +
			"'exclusive' (default) puts each sale in exactly one window; 'cumulative' makes every window start at day 0. " +
			"Use this to check whether prices are trending before trusting a single ARV figure.",
	}, s.handleTimeBuckets)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "compute_arv",
		Description: "Estimate the After-Repair Value of the subject as central price per square foot of the active comps times subject_sqft. " +
			"Returns 0 when there are no active comps or the subject size is unknown. Mode is 'median' (default) or 'average'.",
	}, s.handleComputeArv)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "calculate_max_offer",
		Description: "Solve for the highest purchase price that still leaves the desired profit after sale costs, agent fees, holding costs, repairs, loan interest, points and buy-side closing costs. " +
			"Percentages are whole numbers (5 means 5%). Omitted assumptions use the configured defaults. " +
			"The returned breakdown plus maxOffer always adds up to the ARV. A negative maxOffer means the deal does not work at this ARV.",
	}, s.handleMaxOffer)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "analyze_deal",
		Description: "Run the full analysis for a subject property: optional similarity filters, exclusions, aggregate statistics, time buckets, derived ARV and the max offer. " +
			"Set arv_override to pin the ARV; comp changes then no longer move it. " +
			"Mermaid charts of the buckets and the cost split are appended when charts are enabled. " +
			"Report warnings (few comps, unknown size) to the user verbatim.",
	}, s.handleAnalyzeDeal)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "simulate_offer_range",
		Description: "Resample the active comps with replacement (Monte-Carlo bootstrap) to show how sensitive the ARV and the max offer are to which comps happen to be in the set. " +
			"Returns P10/P50/P90 of both and the share of trials where the deal does not work. " +
			"A wide range means more comps are needed before committing to an offer. " +
			"STRICT GUARDRAIL: present these as a sensitivity range of the comp set, NOT as a probability forecast of the sale price.",
	}, s.handleSimulateOffer)

	sdk.AddTool(s.server, &sdk.Tool{
		Name:        "load_comps",
		Description: "Load a stored comps set by name from the data directory and return its sales with summary statistics.",
	}, s.handleLoadComps)

	sdk.AddTool(s.server, &sdk.Tool{
		Name: "generate_comps",
		Description: "Generate plausible synthetic comps around a subject for demos when no real sales are available. " +
			"NEVER present synthetic comps as market data. Pass save_as to store them for later tools.",
	}, s.handleGenerateComps)
}
