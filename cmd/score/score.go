package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/engine"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/snapshot"
)

// NewScoreCmd scores two stored profiles, or one profile against a
// hypothetical partner given with --traits-b.
func NewScoreCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "score <profile-a> [profile-b]",
		Short: "Score a pair of profiles and store the snapshot",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, snapshots, err := a.stores(cmd)
			if err != nil {
				return err
			}

			req := engine.Request{UserA: args[0]}
			pa, err := profiles.GetProfile(args[0])
			if err != nil {
				return err
			}
			curA, err := profiles.GetCurrent(args[0])
			if err != nil {
				return err
			}
			req.TraitsA = curA.Traits.Slice()
			req.BirthdateA = pa.Birthdate

			if len(args) == 2 {
				pb, err := profiles.GetProfile(args[1])
				if err != nil {
					return err
				}
				curB, err := profiles.GetCurrent(args[1])
				if err != nil {
					return err
				}
				req.UserB = args[1]
				req.TraitsB = curB.Traits.Slice()
				req.BirthdateB = pb.Birthdate
			} else {
				if req.TraitsB, err = vectorFlag(cmd, "traits-b"); err != nil {
					return err
				}
				req.BirthdateB, _ = cmd.Flags().GetString("birthdate-b")
			}

			if req.Resonance, err = vectorFlag(cmd, "resonance"); err != nil {
				return err
			}
			if cmd.Flags().Changed("feasibility") {
				f, _ := cmd.Flags().GetFloat64("feasibility")
				req.Feasibility = &f
			}
			strategy, _ := cmd.Flags().GetString("strategy")
			req.Strategy = engine.StrategyID(strategy)
			req.AllowAstrology, _ = cmd.Flags().GetBool("astrology")
			req.AllowNumerology, _ = cmd.Flags().GetBool("numerology")

			var saver engine.Saver = snapshots
			if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
				saver = nil
			}
			eng, err := a.engine(cmd, saver)
			if err != nil {
				return err
			}
			snap, err := eng.Score(cmd.Context(), req)
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
	cmd.Flags().String("traits-b", "", "Trait vector of a hypothetical partner when profile-b is omitted")
	cmd.Flags().String("birthdate-b", "", "Birthdate of a hypothetical partner")
	cmd.Flags().String("resonance", "", "Resonance vector (7 values), required by the resonance strategy")
	cmd.Flags().Float64("feasibility", 1, "Feasibility in [0, 1]")
	cmd.Flags().String("strategy", "", "Scoring strategy (weighted_segment|resonance), default from config")
	cmd.Flags().Bool("astrology", false, "Include astrology when both birthdates are known")
	cmd.Flags().Bool("numerology", false, "Include numerology when both birthdates are known")
	cmd.Flags().Bool("dry-run", false, "Score without storing the snapshot")
	return cmd
}

func printSnapshot(cmd *cobra.Command, snap snapshot.Snapshot) {
	w := cmd.OutOrStdout()
	if snap.SnapshotID != "" {
		fmt.Fprintf(w, "snapshot   %s\n", snap.SnapshotID)
	}
	partner := snap.UserB
	if partner == "" {
		partner = "(hypothetical)"
	}
	fmt.Fprintf(w, "pair       %s / %s\n", snap.UserA, partner)
	fmt.Fprintf(w, "strategy   %s (model %s)\n", snap.Strategy, snap.ModelVersion)
	fmt.Fprintf(w, "overall    %.4f\n", snap.Overall)
	fmt.Fprintf(w, "tier       %s\n", snap.TierLabel)
	if snap.SoulmateFlag {
		fmt.Fprintln(w, "soulmate   yes")
	}

	names := make([]string, 0, len(snap.Axes))
	for name := range snap.Axes {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintln(w, "axes:")
	for _, name := range names {
		fmt.Fprintf(w, "  %-26s %.4f\n", name, snap.Axes[name])
	}
	if len(snap.Warnings) > 0 {
		printList(cmd, "warnings", snap.Warnings)
	}
	var failed []string
	for _, m := range snap.Audit {
		if !m.Pass {
			failed = append(failed, fmt.Sprintf("%s = %g", m.Name, m.Value))
		}
	}
	if len(failed) > 0 {
		printList(cmd, "failed checks", failed)
	}
	fmt.Fprintln(w, snap.Explanation)
}
