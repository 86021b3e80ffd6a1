package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"flip-mcp/internal/report"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var (
		flags dealFlags
		title string
		open  bool
	)

	cmd := &cobra.Command{
		Use:   "report <comps-file>",
		Short: "Write a Markdown report with Mermaid charts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := flags.workspace(cmd, args[0], time.Now())
			if err != nil {
				return err
			}

			name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			path, err := report.Write(cfg.ReportDir, name, w.Build(), report.Options{
				Title:  title,
				Charts: cfg.EnableMermaidCharts,
			})
			if err != nil {
				return err
			}
			log.Info().Str("path", path).Msg("Report written")
			fmt.Fprintln(cmd.OutOrStdout(), path)

			if open {
				return report.Open(path)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&title, "title", "", "report heading (default: subject address)")
	cmd.Flags().BoolVar(&open, "open", false, "open the report after writing it")
	return cmd
}
