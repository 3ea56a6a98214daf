package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/teranos/py2rs/driver"
	"github.com/teranos/py2rs/logger"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <path>",
		Short: "Re-translate a file whenever it changes",
		Long: `Translate a file, then translate it again after every save until
interrupted. A failing cycle prints its diagnostic and watching continues.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := driverOptions(effective)
			if err != nil {
				return err
			}

			parent := cmd.Context()
			if parent == nil {
				parent = context.Background()
			}
			ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger.Infow("Watching", logger.FieldFile, args[0])
			return driver.Watch(ctx, args[0], opts, cmd.OutOrStdout(), func(err error) {
				report(cmd, err)
			})
		},
	}
}
