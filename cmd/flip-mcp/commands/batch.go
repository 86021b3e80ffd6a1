package commands

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// batchResult is the outcome of analyzing one deal file.
type batchResult struct {
	File     string          `json:"file"`
	Report   analysis.Report `json:"report"`
	Err      error           `json:"-"`
	ErrorMsg string          `json:"error,omitempty"`
}

func newBatchCmd() *cobra.Command {
	var (
		concurrency int
		format      string
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Analyze every *.json deal file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if concurrency <= 0 {
				concurrency = cfg.BatchConcurrency
			}
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			results, err := runBatch(ctx, args[0], concurrency, time.Now())
			if err != nil {
				return err
			}
			if format == "json" {
				return printJSON(cmd.OutOrStdout(), results)
			}
			return printBatch(cmd.OutOrStdout(), results)
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "parallel workers (default from BATCH_CONCURRENCY)")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	return cmd
}

// runBatch analyzes the deal files in dir with at most concurrency workers.
// A deal that fails to load or validate is reported in its result and does not
// stop the others.
func runBatch(ctx context.Context, dir string, concurrency int, now time.Time) ([]batchResult, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("list deal files: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no *.json deal files in %s", dir)
	}
	sort.Strings(files)
	if concurrency < 1 {
		concurrency = 1
	}

	results := make([]batchResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = analyzeDealFile(file, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Info().Int("deals", len(results)).Int("failed", failed).Msg("Batch complete")
	return results, nil
}

func analyzeDealFile(file string, now time.Time) batchResult {
	res := batchResult{File: filepath.Base(file)}

	deal, err := analysis.ReadDeal(file)
	if err == nil {
		var w analysis.Workspace
		w, err = deal.WithModeDefaults(cfg.StatMode, cfg.BucketMode).Workspace(cfg.Defaults, now)
		if err == nil {
			res.Report = w.Build()
		}
	}
	if err != nil {
		log.Warn().Err(err).Str("file", file).Msg("Deal analysis failed")
		res.Err = err
		res.ErrorMsg = err.Error()
	}
	return res
}

func printBatch(out io.Writer, results []batchResult) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FILE\tSUBJECT\tCOMPS\tARV\tMAX OFFER\tNOTES")
	fmt.Fprintln(w, "----\t-------\t-----\t---\t---------\t-----")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%s\t-\t-\t-\t-\terror: %s\n", r.File, truncate(r.ErrorMsg, 60))
			continue
		}
		notes := "-"
		if n := len(r.Report.Warnings); n > 0 {
			notes = fmt.Sprintf("%d warning(s)", n)
		}
		arv := report.Currency(r.Report.Arv)
		if r.Report.ArvIsManual {
			arv += " (manual)"
		}
		fmt.Fprintf(w, "%s\t%s\t%d/%d\t%s\t%s\t%s\n",
			r.File, truncate(r.Report.Subject.Address, 30), r.Report.Aggregate.Count, len(r.Report.Comps),
			arv, report.Currency(r.Report.Offer.MaxOffer), notes)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}
	fmt.Fprintf(out, "\nTotal: %d deals\n", len(results))
	return nil
}
