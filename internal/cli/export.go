package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emiliopalmerini/codebuddy/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export problems to JSON or CSV",
	Long: `Export recorded problems for external analysis.

Examples:
  codebuddy export --format json --output problems.json
  codebuddy export --format csv --platform codeforces
  codebuddy export --format csv --gzip --output problems.csv.gz`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

// Flags
var (
	exportFormat     string
	exportOutput     string
	exportGzip       bool
	exportPlatform   string
	exportDifficulty string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format: json, csv")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default: stdout)")
	exportCmd.Flags().BoolVarP(&exportGzip, "gzip", "z", false, "Compress the output with gzip")
	exportCmd.Flags().StringVarP(&exportPlatform, "platform", "p", "", "Only export this platform")
	exportCmd.Flags().StringVarP(&exportDifficulty, "difficulty", "d", "", "Only export this difficulty")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}
	filter, err := filterFromFlags(exportPlatform, exportDifficulty)
	if err != nil {
		return err
	}

	problems, err := app.Problems.List(cmd.Context(), filter)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if exportGzip {
		err = export.WriteGzip(out, format, problems)
	} else {
		err = export.Write(out, format, problems)
	}
	if err != nil {
		return err
	}

	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d problems to %s\n", len(problems), exportOutput)
	}
	return nil
}
