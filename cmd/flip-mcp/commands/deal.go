package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/calculator"
	"flip-mcp/internal/comps"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// dealFlags are shared by every command that analyzes a single comps file.
type dealFlags struct {
	address      string
	subjectSqft  float64
	statMode     string
	bucketMode   string
	exclude      []string
	applyFilters bool

	arv            float64
	repairCosts    float64
	desiredProfit  float64
	holdMonths     int
	interestRate   float64
	points         float64
	agentFees      float64
	closingSale    float64
	closingBuy     float64
	monthlyHolding float64
}

func (f *dealFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.address, "address", "", "subject address, listing URL or parcel number (label only)")
	fs.Float64Var(&f.subjectSqft, "sqft", 0, "subject living area; overrides the file's subject")
	fs.StringVar(&f.statMode, "stat-mode", "", "median or average (default from STAT_MODE)")
	fs.StringVar(&f.bucketMode, "bucket-mode", "", "exclusive or cumulative (default from BUCKET_MODE)")
	fs.StringSliceVar(&f.exclude, "exclude", nil, "comp ids to exclude")
	fs.BoolVar(&f.applyFilters, "filter", false, "apply the default similarity filters against the subject")

	fs.Float64Var(&f.arv, "arv", 0, "manual ARV override")
	fs.Float64Var(&f.repairCosts, "repair-costs", 0, "renovation budget in dollars")
	fs.Float64Var(&f.desiredProfit, "desired-profit", 0, "target profit in dollars")
	fs.IntVar(&f.holdMonths, "hold-months", 0, "months between purchase and resale")
	fs.Float64Var(&f.interestRate, "interest-rate", 0, "annual loan interest, percent")
	fs.Float64Var(&f.points, "points", 0, "loan points, percent")
	fs.Float64Var(&f.agentFees, "agent-fees", 0, "agent fees at sale, percent of ARV")
	fs.Float64Var(&f.closingSale, "closing-sale", 0, "closing costs at sale, percent of ARV")
	fs.Float64Var(&f.closingBuy, "closing-buy", 0, "closing costs at purchase, percent of price")
	fs.Float64Var(&f.monthlyHolding, "monthly-holding", 0, "taxes, insurance and utilities per month")
}

// inputs returns the configured defaults with every explicitly set flag applied.
func (f *dealFlags) inputs(cmd *cobra.Command, defaults calculator.Inputs) calculator.Inputs {
	in := defaults
	changed := cmd.Flags().Changed

	if changed("repair-costs") {
		in.RepairCosts = f.repairCosts
	}
	if changed("desired-profit") {
		in.DesiredProfit = f.desiredProfit
	}
	if changed("hold-months") {
		in.HoldTimeMonths = f.holdMonths
	}
	if changed("interest-rate") {
		in.LoanInterestRate = f.interestRate
	}
	if changed("points") {
		in.PointsPct = f.points
	}
	if changed("agent-fees") {
		in.AgentFeesPct = f.agentFees
	}
	if changed("closing-sale") {
		in.ClosingCostsSalePct = f.closingSale
	}
	if changed("closing-buy") {
		in.ClosingCostsBuyPct = f.closingBuy
	}
	if changed("monthly-holding") {
		in.MonthlyHoldingCosts = f.monthlyHolding
	}
	return in
}

// workspace reads the comps file at path and builds the analysis workspace.
func (f *dealFlags) workspace(cmd *cobra.Command, path string, now time.Time) (analysis.Workspace, error) {
	ds, err := comps.ReadFile(path)
	if err != nil {
		return analysis.Workspace{}, err
	}

	var subject comps.Subject
	if ds.Subject != nil {
		subject = *ds.Subject
	}
	if cmd.Flags().Changed("sqft") {
		subject.Sqft = f.subjectSqft
	}
	if f.address != "" {
		subject.Address = f.address
		if kind := comps.DetectInputType(f.address); kind != comps.InputAddress {
			log.Info().Str("input", f.address).Str("type", string(kind)).Msg("Subject is not a street address, using it as a label")
		}
	}

	params := calculator.ParamsFrom(f.inputs(cmd, cfg.Defaults))
	deal := analysis.Deal{
		Name:       strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		Subject:    subject,
		Comps:      ds.Comps,
		StatMode:   f.statMode,
		BucketMode: f.bucketMode,
		Exclude:    f.exclude,
		Inputs:     &params,
	}.WithModeDefaults(cfg.StatMode, cfg.BucketMode)
	if f.applyFilters {
		filters := comps.DefaultFilters()
		deal.Filters = &filters
	}

	w, err := deal.Workspace(cfg.Defaults, now)
	if err != nil {
		return analysis.Workspace{}, fmt.Errorf("%s: %w", path, err)
	}
	if cmd.Flags().Changed("arv") {
		w = w.OverrideArv(f.arv)
	}

	log.Debug().
		Str("file", path).
		Int("comps", len(ds.Comps)).
		Int("kept", len(w.Comps())).
		Msg("Loaded comps file")
	return w, nil
}
