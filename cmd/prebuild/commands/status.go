package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/prebuild/internal/app"
	"go.trai.ch/prebuild/internal/core/domain"
	"go.trai.ch/prebuild/internal/ui/output"
	"go.trai.ch/prebuild/internal/ui/style"
)

const shortKeyLen = 8

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List prebuilt artifacts of every unit and target",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targets, _ := cmd.Flags().GetString("targets")
			cachePath, _ := cmd.Flags().GetString("cache-path")
			units, _ := cmd.Flags().GetStringSlice("units")
			verify, _ := cmd.Flags().GetBool("verify")

			statuses, err := c.app.Status(cmd.Context(), app.StatusOptions{
				TargetsDir: targets,
				CachePath:  cachePath,
				Units:      units,
				Verify:     verify,
			})
			if err != nil {
				return err
			}
			return renderStatus(cmd.OutOrStdout(), statuses)
		},
	}
	cmd.Flags().String("targets", "", "Directory of target files (defaults to the configured targets directory)")
	cmd.Flags().String("cache-path", "", "Absolute directory shared by all units for prebuilt artifacts")
	cmd.Flags().StringSliceP("units", "u", nil, "Only list these units")
	cmd.Flags().Bool("verify", false, "Recompute artifact digests and compare them with the build records")
	return cmd
}

func renderStatus(w io.Writer, statuses []domain.ArtifactStatus) error {
	if len(statuses) == 0 {
		_, err := fmt.Fprintln(w, "no units found")
		return err
	}

	r := output.NewRenderer(w)
	header := r.NewStyle().Bold(true).Padding(0, 1)
	cell := r.NewStyle().Padding(0, 1)

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{
			s.Unit,
			s.Version,
			s.Target,
			shortKey(s.TargetKey),
			stateLabel(s.State),
			builtAt(s.Record),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(style.Slate)).
		Headers("UNIT", "VERSION", "TARGET", "KEY", "STATE", "BUILT").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			if col == 4 {
				return cell.Foreground(stateColor(statuses[row].State))
			}
			return cell
		})

	_, err := fmt.Fprintln(w, t.String())
	return err
}

func shortKey(key string) string {
	if len(key) > shortKeyLen {
		return key[:shortKeyLen]
	}
	return key
}

func stateLabel(state domain.ArtifactState) string {
	switch state {
	case domain.ArtifactPresent:
		return style.Check + " " + string(state)
	case domain.ArtifactMissing:
		return style.Cross + " " + string(state)
	default:
		return style.Warning + " " + string(state)
	}
}

func stateColor(state domain.ArtifactState) lipgloss.Color {
	switch state {
	case domain.ArtifactPresent:
		return style.Green
	case domain.ArtifactMissing:
		return style.Slate
	case domain.ArtifactModified, domain.ArtifactStale:
		return style.Red
	default:
		return style.Yellow
	}
}

func builtAt(record *domain.BuildRecord) string {
	if record == nil || record.BuiltAt.IsZero() {
		return "-"
	}
	return record.BuiltAt.Local().Format(time.DateTime)
}
