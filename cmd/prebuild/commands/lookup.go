package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/prebuild/internal/app"
)

func (c *CLI) newLookupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lookup UNIT GROUP",
		Short: "Print the directory a build would use for an output group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, _ := cmd.Flags().GetString("target")
			cachePath, _ := cmd.Flags().GetString("cache-path")
			force, _ := cmd.Flags().GetBool("override-is-developing")

			res, err := c.app.Lookup(cmd.Context(), app.LookupOptions{
				Unit:                 args[0],
				Group:                args[1],
				TargetFile:           target,
				CachePath:            cachePath,
				OverrideIsDeveloping: force,
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), res.Dir)
			return err
		},
	}
	cmd.Flags().String("target", "", "Target file to look up (defaults to the default target)")
	cmd.Flags().String("cache-path", "", "Absolute directory shared by all units for prebuilt artifacts")
	cmd.Flags().Bool("override-is-developing", false, "Use prebuilt output even for units under development")
	return cmd
}
