package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/prebuild/internal/app"
)

func (c *CLI) newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove prebuilt artifacts",
		Long: "Remove prebuilt artifacts of every unit. With --targets only the artifacts " +
			"built for the target files in that directory are removed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, _ := cmd.Flags().GetString("targets")
			cachePath, _ := cmd.Flags().GetString("cache-path")
			units, _ := cmd.Flags().GetStringSlice("units")
			logFormat, _ := cmd.Flags().GetString("log-format")

			return c.app.Clear(cmd.Context(), app.ClearOptions{
				TargetsDir: targets,
				CachePath:  cachePath,
				Units:      units,
				LogFormat:  logFormat,
			})
		},
	}
	cmd.Flags().String("targets", "", "Only clear artifacts of the target files in this directory")
	cmd.Flags().String("cache-path", "", "Absolute directory shared by all units for prebuilt artifacts")
	cmd.Flags().StringSliceP("units", "u", nil, "Only clear these units")
	cmd.Flags().String("log-format", "auto", "Log format: auto, pretty, or json")
	return cmd
}
