package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
)

func NewSnapshotsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect stored compatibility snapshots",
	}
	cmd.AddCommand(newSnapshotsListCmd(a), newSnapshotsShowCmd(a))
	return cmd
}

func newSnapshotsListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, _ := cmd.Flags().GetString("user")
			limit, _ := cmd.Flags().GetInt("limit")
			snaps, err := listSnapshots(cmd, a, user, limit)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd, snaps)
			}
			for _, s := range snaps {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-16s %.4f  %s\n",
					s.SnapshotID, s.CreatedAt.Format("2006-01-02 15:04:05"), s.Strategy, s.Overall, s.Tier)
			}
			return nil
		},
	}
	cmd.Flags().String("user", "", "Only snapshots involving this profile")
	cmd.Flags().Int("limit", 20, "Maximum snapshots to list")
	return cmd
}

func newSnapshotsShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <snapshot-id>",
		Short: "Show one snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, snapshots, err := a.stores(cmd)
			if err != nil {
				return err
			}
			snap, err := snapshots.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd, snap)
			}
			printSnapshot(cmd, snap)
			return nil
		},
	}
}

func listSnapshots(cmd *cobra.Command, a *app, user string, limit int) ([]snapshot.Snapshot, error) {
	_, snapshots, err := a.stores(cmd)
	if err != nil {
		return nil, err
	}
	if user != "" {
		return snapshots.ListForUser(cmd.Context(), user, limit)
	}
	return snapshots.List(cmd.Context(), limit)
}
