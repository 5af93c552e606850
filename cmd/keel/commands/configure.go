package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/keel/internal/core/domain"
)

func (c *CLI) newConfigureCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Run a configuration pass over the build layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			failOn, _ := cmd.Flags().GetString("fail-on")
			watch, _ := cmd.Flags().GetBool("watch")

			if failOn != "" {
				severity, err := domain.ParseSeverity(failOn)
				if err != nil {
					return err
				}
				c.app.OverrideFailOn(severity)
			}

			if watch {
				return c.app.Watch(cmd.Context())
			}

			summary, err := c.app.ConfigurePass(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "outcome: %s\n", summary.Outcome)
			_, _ = fmt.Fprintf(out, "units: %d configured, %d reused\n", summary.ConfiguredUnits, summary.ReusedUnits)
			_, _ = fmt.Fprintf(out, "models: %d fresh, %d cached\n", summary.FreshModels, summary.CachedModels)
			if summary.ProblemCount > 0 {
				_, _ = fmt.Fprintf(out, "problems: %d\n", summary.ProblemCount)
			}
			return nil
		},
	}
	cmd.Flags().StringP("fail-on", "f", "", "Discard the entry at this problem severity or above (warning, error, fatal)")
	cmd.Flags().BoolP("watch", "w", false, "Keep running and reconfigure on source changes")
	return cmd
}
