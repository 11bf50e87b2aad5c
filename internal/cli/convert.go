package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	pkgio "github.com/matzehuels/stitchrow/pkg/io"
	"github.com/matzehuels/stitchrow/pkg/source/text"
)

// convertCommand creates the convert command that re-exports a chart.
func (c *CLI) convertCommand() *cobra.Command {
	var flags sourceFlags
	var output string

	cmd := &cobra.Command{
		Use:   "convert <chart> -o <file>",
		Short: "Export a chart as JSON or plain text",
		Long: `Export a chart as JSON (.json) or plain text (.txt, .chart).

Converting a bitmap or SVG chart once and working from the exported file
skips color matching on every later run.

Example:
  stitchrow convert sweater.png --cell-size 10 -o sweater.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return errs.New(errs.ErrCodeInvalidInput, "--output is required")
			}
			chart, _, err := c.loadChart(cmd, args[0], &flags)
			if err != nil {
				return err
			}

			switch ext := strings.ToLower(filepath.Ext(output)); ext {
			case ".json":
				err = pkgio.ExportJSON(chart, output)
			case ".txt", ".chart":
				err = os.WriteFile(output, []byte(text.Format(chart)), 0o644)
			default:
				return errs.New(errs.ErrCodeUnsupported, "cannot export to %q (use .json, .txt or .chart)", ext)
			}
			if err != nil {
				return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", output)
			}

			printSuccess("Converted %s", filepath.Base(args[0]))
			printFile(output)
			printNextStep("Print rows", "stitchrow rows "+output)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.json, .txt or .chart)")

	return cmd
}
