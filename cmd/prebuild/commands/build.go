package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prebuild/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Prebuild the output groups of every unit for every target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, _ := cmd.Flags().GetString("targets")
			cachePath, _ := cmd.Flags().GetString("cache-path")
			groups, _ := cmd.Flags().GetStringSlice("groups")
			units, _ := cmd.Flags().GetStringSlice("units")
			logFormat, _ := cmd.Flags().GetString("log-format")

			return c.app.Prebuild(cmd.Context(), app.PrebuildOptions{
				TargetsDir: targets,
				CachePath:  cachePath,
				Groups:     groups,
				Units:      units,
				LogFormat:  logFormat,
			})
		},
	}
	cmd.Flags().String("targets", "", "Directory of target files (defaults to the configured targets directory)")
	cmd.Flags().String("cache-path", "", "Absolute directory shared by all units for prebuilt artifacts")
	cmd.Flags().StringSliceP("groups", "g", nil, "Output groups to prebuild instead of the unit's defaults")
	cmd.Flags().StringSliceP("units", "u", nil, "Only prebuild these units")
	cmd.Flags().String("log-format", "auto", "Log format: auto, pretty, or json")
	return cmd
}
