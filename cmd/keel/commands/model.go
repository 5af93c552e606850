package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/zerr"
)

func (c *CLI) newModelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "model <unit-path> <type>",
		Short: "Print a cached model result for a unit",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, ok, err := c.app.Model(args[0], args[1])
			if err != nil {
				return err
			}
			if !ok {
				return zerr.With(zerr.With(
					fmt.Errorf("no cached model result"),
					"path", args[0]),
					"type", args[1])
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), string(payload))
			return nil
		},
	}
}
