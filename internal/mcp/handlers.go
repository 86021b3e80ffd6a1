package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"
	"flip-mcp/internal/simulation"
	"flip-mcp/internal/stats"
	"flip-mcp/internal/visuals"
)

// CompsInput names the comps a tool works on: inline sales or a stored set.
type CompsInput struct {
	Comps []comps.ComparableSale `json:"comps,omitempty" jsonschema:"comparable sales; ignored when set is given"`
	Set   string                 `json:"set,omitempty" jsonschema:"name of a stored comps set"`
}

type BucketsInput struct {
	Comps []comps.ComparableSale `json:"comps,omitempty" jsonschema:"comparable sales; ignored when set is given"`
	Set   string                 `json:"set,omitempty" jsonschema:"name of a stored comps set"`
	Mode  string                 `json:"mode,omitempty" jsonschema:"exclusive (default) or cumulative"`
}

type BucketsOutput struct {
	Mode    stats.BucketMode   `json:"mode"`
	Buckets []stats.TimeBucket `json:"buckets"`
	Chart   string             `json:"chart,omitempty"`
}

type ArvInput struct {
	Comps       []comps.ComparableSale `json:"comps,omitempty" jsonschema:"comparable sales; ignored when set is given"`
	Set         string                 `json:"set,omitempty" jsonschema:"name of a stored comps set"`
	SubjectSqft float64                `json:"subject_sqft" jsonschema:"living area of the subject in square feet"`
	Mode        string                 `json:"mode,omitempty" jsonschema:"median (default) or average"`
}

type ArvOutput struct {
	Arv          float64        `json:"arv"`
	Mode         stats.StatMode `json:"mode"`
	PricePerSqft float64        `json:"price_per_sqft"`
	ActiveComps  int            `json:"active_comps"`
}

type MaxOfferInput struct {
	Arv    *float64           `json:"arv,omitempty" jsonschema:"after-repair value; overrides inputs.arv"`
	Inputs *calculator.Params `json:"inputs,omitempty" jsonschema:"complete set of assumptions; omitted means the configured defaults"`
}

type MaxOfferOutput struct {
	Inputs    calculator.Params    `json:"inputs"`
	MaxOffer  float64              `json:"maxOffer"`
	Breakdown calculator.Breakdown `json:"breakdown"`
}

type AnalyzeInput struct {
	Subject     comps.Subject          `json:"subject" jsonschema:"property being evaluated; sqft drives the ARV"`
	Comps       []comps.ComparableSale `json:"comps,omitempty" jsonschema:"comparable sales; ignored when set is given"`
	Set         string                 `json:"set,omitempty" jsonschema:"name of a stored comps set"`
	StatMode    string                 `json:"stat_mode,omitempty" jsonschema:"median or average; defaults to the server setting"`
	BucketMode  string                 `json:"bucket_mode,omitempty" jsonschema:"exclusive or cumulative; defaults to the server setting"`
	Exclude     []string               `json:"exclude,omitempty" jsonschema:"ids of comps to leave out"`
	Filters     *comps.Filters         `json:"filters,omitempty" jsonschema:"similarity filters applied against the subject before analysis"`
	Inputs      *calculator.Params     `json:"inputs,omitempty" jsonschema:"complete set of cost assumptions; omitted means the configured defaults"`
	ArvOverride *float64               `json:"arv_override,omitempty" jsonschema:"manual ARV that replaces the comp-derived one"`
}

// AnalyzeOutput is the deal report plus any rendered Mermaid charts.
type AnalyzeOutput struct {
	Report analysis.Report `json:"report"`
	Charts []string        `json:"charts,omitempty"`
}

type SimulateInput struct {
	Comps       []comps.ComparableSale `json:"comps,omitempty" jsonschema:"comparable sales; ignored when set is given"`
	Set         string                 `json:"set,omitempty" jsonschema:"name of a stored comps set"`
	SubjectSqft float64                `json:"subject_sqft" jsonschema:"living area of the subject in square feet"`
	Mode        string                 `json:"mode,omitempty" jsonschema:"median (default) or average"`
	Inputs      *calculator.Params     `json:"inputs,omitempty" jsonschema:"complete set of cost assumptions; the arv field is ignored"`
	Trials      int                    `json:"trials,omitempty" jsonschema:"number of resamples, default 10000, at most 100000"`
	Seed        int64                  `json:"seed,omitempty" jsonschema:"random seed for reproducible output"`
}

type LoadCompsInput struct {
	Name string `json:"name" jsonschema:"name of the stored set (file name without .jsonl)"`
}

type CompSetOutput struct {
	Name  string                    `json:"name"`
	Count int                       `json:"count"`
	Stats stats.AggregateStatistics `json:"stats"`
	Comps []comps.ComparableSale    `json:"comps"`
}

type GenerateInput struct {
	Subject comps.Subject `json:"subject" jsonschema:"property the comps should resemble"`
	Count   int           `json:"count,omitempty" jsonschema:"number of sales, default 12"`
	Seed    int64         `json:"seed,omitempty" jsonschema:"random seed for reproducible output"`
	SaveAs  string        `json:"save_as,omitempty" jsonschema:"store the comps under this set name"`
}

func (s *Server) handleAggregateStatistics(ctx context.Context, req *sdk.CallToolRequest, in CompsInput) (*sdk.CallToolResult, stats.AggregateStatistics, error) {
	sales, err := s.resolveComps(in.Set, in.Comps)
	if err != nil {
		return nil, stats.AggregateStatistics{}, err
	}
	out := stats.ComputeAggregateStatistics(sales)
	return s.jsonResult(out), out, nil
}

func (s *Server) handleTimeBuckets(ctx context.Context, req *sdk.CallToolRequest, in BucketsInput) (*sdk.CallToolResult, BucketsOutput, error) {
	mode := s.cfg.BucketMode
	if in.Mode != "" {
		var err error
		if mode, err = stats.ParseBucketMode(in.Mode); err != nil {
			return nil, BucketsOutput{}, err
		}
	}
	sales, err := s.resolveComps(in.Set, in.Comps)
	if err != nil {
		return nil, BucketsOutput{}, err
	}

	out := BucketsOutput{Mode: mode, Buckets: stats.BuildTimeBuckets(sales, mode)}
	if s.cfg.EnableMermaidCharts {
		out.Chart = visuals.GenerateBucketChart(out.Buckets)
	}
	return s.jsonResult(out), out, nil
}

func (s *Server) handleComputeArv(ctx context.Context, req *sdk.CallToolRequest, in ArvInput) (*sdk.CallToolResult, ArvOutput, error) {
	mode := s.cfg.StatMode
	if in.Mode != "" {
		var err error
		if mode, err = stats.ParseStatMode(in.Mode); err != nil {
			return nil, ArvOutput{}, err
		}
	}
	if in.SubjectSqft < 0 {
		return nil, ArvOutput{}, fmt.Errorf("subject_sqft must not be negative, got %v", in.SubjectSqft)
	}
	sales, err := s.resolveComps(in.Set, in.Comps)
	if err != nil {
		return nil, ArvOutput{}, err
	}

	agg := stats.ComputeAggregateStatistics(sales)
	out := ArvOutput{
		Arv:          stats.ComputeArv(sales, in.SubjectSqft, mode),
		Mode:         mode,
		PricePerSqft: agg.PricePerSqft(mode),
		ActiveComps:  agg.Count,
	}
	return s.jsonResult(out), out, nil
}

func (s *Server) handleMaxOffer(ctx context.Context, req *sdk.CallToolRequest, in MaxOfferInput) (*sdk.CallToolResult, MaxOfferOutput, error) {
	params := calculator.ParamsFrom(s.cfg.Defaults)
	if in.Inputs != nil {
		params = *in.Inputs
	}
	if in.Arv != nil {
		params.Arv = *in.Arv
	}
	inputs := params.Inputs()
	if err := inputs.Validate(); err != nil {
		return nil, MaxOfferOutput{}, err
	}

	res := calculator.CalculateMaxOffer(inputs)
	out := MaxOfferOutput{Inputs: params, MaxOffer: res.MaxOffer, Breakdown: res.Breakdown}
	log.Debug().Float64("arv", params.Arv).Float64("max_offer", out.MaxOffer).Msg("Solved max offer")
	return s.jsonResult(out), out, nil
}

func (s *Server) handleAnalyzeDeal(ctx context.Context, req *sdk.CallToolRequest, in AnalyzeInput) (*sdk.CallToolResult, AnalyzeOutput, error) {
	sales, err := s.resolveComps(in.Set, in.Comps)
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}

	deal := analysis.Deal{
		Subject:    in.Subject,
		Comps:      sales,
		StatMode:   in.StatMode,
		BucketMode: in.BucketMode,
		Exclude:    in.Exclude,
		Filters:    in.Filters,
		Inputs:     in.Inputs,
	}.WithModeDefaults(s.cfg.StatMode, s.cfg.BucketMode)

	w, err := deal.Workspace(s.cfg.Defaults, s.now())
	if err != nil {
		return nil, AnalyzeOutput{}, err
	}
	if in.ArvOverride != nil {
		w = w.OverrideArv(*in.ArvOverride)
	}

	report := w.Build()
	out := AnalyzeOutput{Report: report}
	if s.cfg.EnableMermaidCharts {
		for _, chart := range []string{
			visuals.GenerateBucketChart(report.Buckets),
			visuals.GenerateCostBreakdownChart(report.Offer),
		} {
			if chart != "" {
				out.Charts = append(out.Charts, chart)
			}
		}
	}

	log.Info().
		Int("comps", len(report.Comps)).
		Int("active", report.Aggregate.Count).
		Float64("arv", report.Arv).
		Float64("max_offer", report.Offer.MaxOffer).
		Msg("Analyzed deal")

	res := s.jsonResult(out)
	for _, chart := range out.Charts {
		res.Content = append(res.Content, &sdk.TextContent{Text: chart})
	}
	return res, out, nil
}

func (s *Server) handleSimulateOffer(ctx context.Context, req *sdk.CallToolRequest, in SimulateInput) (*sdk.CallToolResult, simulation.Result, error) {
	if in.Trials < 0 || in.Trials > 100000 {
		return nil, simulation.Result{}, fmt.Errorf("trials must be between 1 and 100000, got %d", in.Trials)
	}
	mode := s.cfg.StatMode
	if in.Mode != "" {
		var err error
		if mode, err = stats.ParseStatMode(in.Mode); err != nil {
			return nil, simulation.Result{}, err
		}
	}
	inputs := s.cfg.Defaults
	if in.Inputs != nil {
		inputs = in.Inputs.Inputs()
	}
	if err := inputs.Validate(); err != nil {
		return nil, simulation.Result{}, err
	}
	sales, err := s.resolveComps(in.Set, in.Comps)
	if err != nil {
		return nil, simulation.Result{}, err
	}

	seed := in.Seed
	if seed == 0 {
		seed = s.now().UnixNano()
	}
	out := simulation.NewEngine(sales, seed).Run(in.Trials, in.SubjectSqft, mode, inputs)
	log.Debug().Int("trials", out.Trials).Float64("offer_p50", out.MaxOffer.P50).Msg("Simulated offer range")
	return s.jsonResult(out), out, nil
}

func (s *Server) handleLoadComps(ctx context.Context, req *sdk.CallToolRequest, in LoadCompsInput) (*sdk.CallToolResult, CompSetOutput, error) {
	sales, err := s.resolveComps(in.Name, nil)
	if err != nil {
		return nil, CompSetOutput{}, err
	}
	out := CompSetOutput{
		Name:  in.Name,
		Count: len(sales),
		Stats: stats.ComputeAggregateStatistics(sales),
		Comps: sales,
	}
	return s.jsonResult(out), out, nil
}

func (s *Server) handleGenerateComps(ctx context.Context, req *sdk.CallToolRequest, in GenerateInput) (*sdk.CallToolResult, CompSetOutput, error) {
	if in.Count < 0 || in.Count > 500 {
		return nil, CompSetOutput{}, fmt.Errorf("count must be between 1 and 500, got %d", in.Count)
	}
	sales := comps.GenerateSynthetic(comps.GeneratorConfig{
		Subject: in.Subject,
		Count:   in.Count,
		Seed:    in.Seed,
		Now:     s.now(),
	})

	if in.SaveAs != "" {
		name, err := setName(in.SaveAs)
		if err != nil {
			return nil, CompSetOutput{}, err
		}
		if err := s.loadSet(name); err != nil {
			return nil, CompSetOutput{}, err
		}
		s.store.Append(name, sales)
		if err := s.store.Save(s.cfg.CompsDir, name); err != nil {
			return nil, CompSetOutput{}, err
		}
	}

	out := CompSetOutput{
		Name:  in.SaveAs,
		Count: len(sales),
		Stats: stats.ComputeAggregateStatistics(sales),
		Comps: sales,
	}
	return s.jsonResult(out), out, nil
}
