package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/replay"
)

func NewReplayCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <fixture.json>",
		Short: "Re-score a fixture and report drift",
		Long:  `Re-score every case in a fixture with the current model. Exits non-zero if any case failed or errored.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := replay.LoadFixture(args[0])
			if err != nil {
				return err
			}
			eng, err := a.engine(cmd, nil)
			if err != nil {
				return err
			}
			results, err := replay.Replay(cmd.Context(), eng, f)
			if err != nil {
				return err
			}
			summary := replay.Summarize(results)

			if wantJSON(cmd) {
				if err := printJSON(cmd, map[string]any{"results": results, "summary": summary}); err != nil {
					return err
				}
			} else {
				w := cmd.OutOrStdout()
				for _, r := range results {
					fmt.Fprintf(w, "%-8s %s  expected=%.6f actual=%.6f drift=%.2e  %s\n",
						r.Status, r.ID, r.Expected, r.Actual, r.Drift, r.Reason)
				}
				fmt.Fprintf(w, "\n%d cases: %d passed, %d failed, %d errored, max drift %.2e\n",
					summary.Total, summary.Passed, summary.Failed, summary.Errored, summary.MaxDrift)
			}

			if !summary.OK() {
				return fmt.Errorf("replay: %d failed, %d errored", summary.Failed, summary.Errored)
			}
			return nil
		},
	}
}

func NewFixtureCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fixture",
		Short: "Manage regression fixtures",
	}
	cmd.AddCommand(newFixtureExportCmd(a))
	return cmd
}

func newFixtureExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <out.json>",
		Short: "Write stored snapshots out as a regression fixture",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")
			limit, _ := cmd.Flags().GetInt("limit")
			tolerance, _ := cmd.Flags().GetFloat64("tolerance")
			desc, _ := cmd.Flags().GetString("description")

			snaps, err := listSnapshots(cmd, a, user, limit)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				return fmt.Errorf("no snapshots to export")
			}
			if desc == "" {
				desc = fmt.Sprintf("%d stored snapshots", len(snaps))
			}
			if err := replay.SaveFixture(args[0], replay.FromSnapshots(desc, tolerance, snaps)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d cases to %s\n", len(snaps), args[0])
			return nil
		},
	}
	cmd.Flags().String("user", "", "Only snapshots involving this profile")
	cmd.Flags().Int("limit", 100, "Maximum snapshots to export")
	cmd.Flags().Float64("tolerance", replay.DefaultTolerance, "Allowed overall drift")
	cmd.Flags().String("description", "", "Fixture description")
	return cmd
}
