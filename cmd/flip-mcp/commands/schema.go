package commands

import (
	"fmt"
	"io"

	"flip-mcp/internal/analysis"
	"flip-mcp/internal/comps"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/spf13/cobra"
)

func newSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "schema [comps|deal]",
		Short:     "Print the JSON Schema of comps files and deal files",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"comps", "deal"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := ""
			if len(args) == 1 {
				which = args[0]
			}
			return printSchemas(cmd.OutOrStdout(), which)
		},
	}
}

func printSchemas(out io.Writer, which string) error {
	schemas := map[string]*jsonschema.Schema{}

	if which == "" || which == "comps" {
		s, err := jsonschema.For[comps.Dataset](nil)
		if err != nil {
			return fmt.Errorf("infer comps schema: %w", err)
		}
		s.Title = "Comps file"
		schemas["comps"] = s
	}
	if which == "" || which == "deal" {
		s, err := jsonschema.For[analysis.Deal](nil)
		if err != nil {
			return fmt.Errorf("infer deal schema: %w", err)
		}
		s.Title = "Deal file"
		schemas["deal"] = s
	}

	if which != "" {
		return printJSON(out, schemas[which])
	}
	return printJSON(out, schemas)
}
