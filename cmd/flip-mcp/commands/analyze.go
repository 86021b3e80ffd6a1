package commands

import (
	"fmt"
	"time"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/simulation"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		flags  dealFlags
		format string
		trials int
		seed   int64
	)

	cmd := &cobra.Command{
		Use:   "analyze <comps-file>",
		Short: "Analyze a comps file and print ARV and the max offer",
		Long: `Read comparable sales from a JSON array, a {"subject":...,"comps":[...]} object or
JSONL, then print aggregate statistics, time buckets, the ARV and the max offer breakdown.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := flags.workspace(cmd, args[0], time.Now())
			if err != nil {
				return err
			}
			r := w.Build()

			var sim *simulation.Result
			if trials > 0 {
				if !cmd.Flags().Changed("seed") {
					seed = time.Now().UnixNano()
				}
				res := simulation.NewEngine(w.Comps(), seed).Run(trials, w.Subject().Sqft, w.StatMode(), w.Inputs())
				sim = &res
			}

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				return printJSON(out, struct {
					analysis.Report
					Simulation *simulation.Result `json:"simulation,omitempty"`
				}{r, sim})
			case "text":
				if err := printAnalysis(out, r); err != nil {
					return err
				}
				if sim != nil {
					return printSimulation(out, *sim)
				}
				return nil
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")
	cmd.Flags().IntVar(&trials, "trials", 0, "Monte-Carlo resamples of the comps for an ARV/offer range (0 disables)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for --trials")
	return cmd
}
