package cmd

import (
	"errors"
	"fmt"

	"github.com/neptaco/unilog/pkg/debuglog"
	"github.com/neptaco/unilog/pkg/ui"
	"github.com/spf13/cobra"
)

var logsPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every file in the Logs folder",
	Args:  cobra.NoArgs,
	RunE:  runLogsPurge,
}

func init() {
	logsCmd.AddCommand(logsPurgeCmd)
}

func runLogsPurge(cmd *cobra.Command, args []string) error {
	dir, err := logsDir()
	if err != nil {
		return err
	}

	l := debuglog.New(dir)
	deleted, err := ui.WithSpinner("Deleting log files...", l.Purge)
	if err != nil {
		var purgeErr *debuglog.PurgeError
		if errors.As(err, &purgeErr) {
			reportPurgeError(purgeErr)
		}
		return fmt.Errorf("purge incomplete: %w", err)
	}

	ui.Success("Deleted %d file(s) from %s", deleted, dir)
	return nil
}
