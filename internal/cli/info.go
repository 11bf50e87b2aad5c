package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/pattern"
	"github.com/matzehuels/stitchrow/pkg/source/text"
)

// infoCommand creates the info command that summarizes a chart.
func (c *CLI) infoCommand() *cobra.Command {
	var flags sourceFlags
	var preview bool

	cmd := &cobra.Command{
		Use:   "info <chart>",
		Short: "Show chart dimensions and stitch counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, hit, err := c.loadChart(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			knit, purl := chart.Counts()

			printKeyValue("File", args[0])
			printKeyValue("Width", strconv.Itoa(chart.Width))
			printKeyValue("Height", strconv.Itoa(chart.Height))
			printKeyValue("Stitches", strconv.Itoa(chart.Width*chart.Height))
			printKeyValue("Knit", strconv.Itoa(knit))
			printKeyValue("Purl", strconv.Itoa(purl))
			printStats(chart.Width, chart.Height, knit, purl, hit)

			if preview {
				printNewline()
				fmt.Fprint(cmd.OutOrStdout(), text.Format(chart))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&preview, "preview", false, "print the chart grid (X = purl, . = knit)")

	return cmd
}

// checkCommand creates the check command that compares a written
// instruction with the chart.
func (c *CLI) checkCommand() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "check <chart> <row> <instruction>",
		Short: "Check a hand-written row instruction against the chart",
		Long: `Check a hand-written row instruction against the chart.

The instruction is read in working order, the same way "stitchrow row"
prints it. The first stitch that differs is reported.

Example:
  stitchrow check sweater.svg 4 "k2, p3, k2"`,
		Args: cobra.ExactArgs(3),
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

			mismatch, err := enc.Check(n, args[2])
			if err != nil {
				return err
			}
			if mismatch == nil {
				printSuccess("Row %d matches the chart", n)
				return nil
			}

			want, err := enc.EncodeRow(n)
			if err != nil {
				return err
			}
			printWarning("%s", mismatch.String())
			printDetail("Chart row %d: %s", n, want)
			return errs.New(errs.ErrCodeInvalidInput, "row %d does not match the chart", n)
		},
	}

	flags.register(cmd)

	return cmd
}
