package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/stitchrow/pkg/errors"
	"github.com/matzehuels/stitchrow/pkg/session"
)

// progressCommand creates the command that manages saved browse progress.
func (c *CLI) progressCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Manage saved knitting progress",
	}

	cmd.AddCommand(c.progressListCommand())
	cmd.AddCommand(c.progressResetCommand())
	cmd.AddCommand(c.progressPruneCommand())

	return cmd
}

func openProgressStore() (*session.FileStore, error) {
	store, err := session.NewFileStore("")
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidPath, err, "open progress store")
	}
	return store, nil
}

func (c *CLI) progressListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List charts with saved progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProgressStore()
			if err != nil {
				return err
			}
			list, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printInfo("No saved progress")
				return nil
			}
			for _, s := range list {
				printKeyValue(s.Chart, fmt.Sprintf("row %d · %d done · %s", s.Row, s.Done, s.UpdatedAt.Format("2006-01-02 15:04")))
			}
			printDetail("Directory: %s", store.Path())
			return nil
		},
	}
}

func (c *CLI) progressResetCommand() *cobra.Command {
	var flags sourceFlags

	cmd := &cobra.Command{
		Use:   "reset <chart>",
		Short: "Forget the saved progress for a chart",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			chart, _, err := c.loadChart(cmd, args[0], &flags)
			if err != nil {
				return err
			}
			id, err := chartID(chart)
			if err != nil {
				return err
			}
			store, err := openProgressStore()
			if err != nil {
				return err
			}
			if err := store.Delete(cmd.Context(), id); err != nil {
				return errs.Wrap(errs.ErrCodeInvalidPath, err, "reset progress")
			}
			printSuccess("Reset progress for %s", filepath.Base(args[0]))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

func (c *CLI) progressPruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired progress entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openProgressStore()
			if err != nil {
				return err
			}
			if err := store.Cleanup(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Pruned expired progress")
			return nil
		},
	}
}
