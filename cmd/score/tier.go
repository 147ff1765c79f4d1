package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/tier"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/transport"
)

func NewTierCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tier <score>",
		Short: "Classify a score into a compatibility tier",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("bad score %q", args[0])
			}

			var c tier.Classification
			remote, err := withRemote(cmd, func(ctx context.Context, client *transport.Client) error {
				c, err = client.Tier(ctx, score)
				return err
			})
			if err != nil {
				return err
			}
			if !remote {
				c = tier.Classify(score)
			}

			if wantJSON(cmd) {
				return printJSON(cmd, c)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", c.Label, c.Tier)
			return nil
		},
	}
	addRemoteFlag(cmd)
	return cmd
}

func NewOutcomeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outcome",
		Short: "Soulmate score from observed relationship outcomes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := a.config(cmd)
			if err != nil {
				return err
			}
			model, err := cfg.Model()
			if err != nil {
				return err
			}

			get := func(name string) float64 {
				v, _ := cmd.Flags().GetFloat64(name)
				return v
			}
			y := resonance.Outcome{
				Longevity:           get("longevity"),
				Satisfaction:        get("satisfaction"),
				Growth:              get("growth"),
				ConflictToxicity:    get("conflict-toxicity"),
				RepairEfficiency:    get("repair-efficiency"),
				TrajectoryAlignment: get("trajectory-alignment"),
			}
			s := model.SoulmateScore(y)

			if wantJSON(cmd) {
				return printJSON(cmd, map[string]any{"outcome": y, "soulmate_score": s})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "soulmate score %.4f\n", s)
			return nil
		},
	}
	for _, name := range []string{"longevity", "satisfaction", "growth", "conflict-toxicity", "repair-efficiency", "trajectory-alignment"} {
		cmd.Flags().Float64(name, 0, "Observed "+name)
	}
	return cmd
}
