package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/render"
)

// rowsOpts holds the command-line flags for the rows command.
type rowsOpts struct {
	sourceFlags
	format string // output format (config default when empty)
	rows   string // row selection like "1-5,8"
	output string // output file path (stdout if empty)
	stats  bool   // print chart statistics after writing a file
}

// rowsCommand creates the rows command, the main load → encode → render path.
func (c *CLI) rowsCommand() *cobra.Command {
	var opts rowsOpts

	cmd := &cobra.Command{
		Use:   "rows <chart>",
		Short: "Print the knitting instruction for each row of a chart",
		Long: `Print the knitting instruction for each row of a chart, bottom row first.

Odd rows are read right to left and even rows left to right, so every line
lists the stitches in the order they are worked.

Examples:
  stitchrow rows sweater.svg
  stitchrow rows sweater.svg --rows 1-10 --format table
  stitchrow rows chart.png --cell-size 8 --purl "#000" -o rows.md -f markdown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRows(cmd, args[0], &opts)
		},
	}

	opts.sourceFlags.register(cmd)
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: text, json, markdown, table (default from config)")
	cmd.Flags().StringVarP(&opts.rows, "rows", "r", "", `rows to print, e.g. "1-10,12" (default: all)`)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.stats, "stats", true, "print chart statistics when writing to a file")

	return cmd
}

func (c *CLI) runRows(cmd *cobra.Command, path string, opts *rowsOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	popts, err := c.options(cmd, path, &opts.sourceFlags)
	if err != nil {
		return err
	}
	if opts.format != "" {
		popts.Format = opts.format
	}
	popts.Rows = opts.rows

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if opts.output != "" {
		spin = newSpinnerWithContext(ctx, "Encoding "+filepath.Base(path))
		spin.Start()
	}
	prog := newProgress(logger)
	result, err := runner.Execute(ctx, popts)
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}
	prog.debug(fmt.Sprintf("Encoded %d rows", result.Stats.Rows))

	if opts.output == "" {
		_, err := cmd.OutOrStdout().Write(result.Artifact)
		return err
	}

	if err := os.WriteFile(opts.output, result.Artifact, 0o644); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidPath, err, "write %s", opts.output)
	}
	printSuccess("Wrote %d rows", result.Stats.Rows)
	printFile(opts.output)
	if opts.stats {
		s := result.Stats
		printStats(s.Width, s.Height, s.Knit, s.Purl, result.CacheInfo.LoadHit)
	}
	return nil
}

// rowCommand creates the row command that prints a single row.
func (c *CLI) rowCommand() *cobra.Command {
	var flags sourceFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "row <chart> <n>",
		Short: "Print the instruction for one row (1 is the bottom row)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return errs.New(errs.ErrCodeInvalidInput, "invalid row number %q", args[1])
			}
			chart, _, err := c.loadChart(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			enc, err := pattern.NewEncoderFromChart(chart)
			if err != nil {
				return err
			}
			if !asJSON {
				instruction, err := enc.EncodeRow(n)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), instruction)
				return err
			}

			doc, err := render.NewDocument(enc, []int{n})
			if err != nil {
				return err
			}
			out, err := render.Render(render.FormatJSON, doc)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the row as JSON")

	return cmd
}
