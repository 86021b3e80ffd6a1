package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"flip-mcp/internal/comps"
	"flip-mcp/internal/config"
	"flip-mcp/internal/logging"
	"flip-mcp/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	cfg     *config.AppConfig

	store = comps.NewStore()
)

var rootCmd = &cobra.Command{
	Use:   "flip-mcp",
	Short: "flip-mcp estimates ARV and the maximum offer for fix-and-flip deals",
	Long: `An MCP Server and CLI that turns comparable sales into after-repair value estimates,
time-bucketed market statistics and a maximum purchase offer whose cost breakdown
reconciles exactly with the ARV.

Run without a subcommand to serve MCP over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logging.Init(logging.Options{Verbose: verbose}); err != nil {
			log.Warn().Err(err).Msg("File logging disabled")
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		log.Debug().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("command", cmd.Name()).
			Msg("flip-mcp starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext(cmd.Context())
		defer stop()

		mcp.Version = Version
		server := mcp.NewServer(cfg, store)
		return server.Serve(ctx)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	rootCmd.AddCommand(
		newAnalyzeCmd(),
		newReportCmd(),
		newBatchCmd(),
		newServeCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)
}
