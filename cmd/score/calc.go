package main

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/match"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/resonance"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/transport"
)

const remoteTimeout = 10 * time.Second

func addPairFlags(cmd *cobra.Command) {
	cmd.Flags().String("a", "", "Trait vector A (comma separated, NxV repeats, or @file.json)")
	cmd.Flags().String("b", "", "Trait vector B")
}

func addRemoteFlag(cmd *cobra.Command) {
	cmd.Flags().String("remote", "", "Score on a scorer server at this address instead of locally")
}

// withRemote runs fn against a scorer server when --remote is set and
// reports whether it did.
func withRemote(cmd *cobra.Command, fn func(context.Context, *transport.Client) error) (bool, error) {
	addr, _ := cmd.Flags().GetString("remote")
	if addr == "" {
		return false, nil
	}
	client, err := transport.NewClient(addr)
	if err != nil {
		return true, err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), remoteTimeout)
	defer cancel()
	return true, fn(ctx, client)
}

// #region calc
func NewCalcCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Weighted-segment compatibility of two trait vectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			va, err := vectorFlag(cmd, "a")
			if err != nil {
				return err
			}
			vb, err := vectorFlag(cmd, "b")
			if err != nil {
				return err
			}

			var score match.Score
			remote, err := withRemote(cmd, func(ctx context.Context, c *transport.Client) error {
				score, err = c.Calculate(ctx, va, vb)
				return err
			})
			if err != nil {
				return err
			}
			if !remote {
				if score, err = match.Calculate(va, vb); err != nil {
					return err
				}
			}

			if wantJSON(cmd) {
				return printJSON(cmd, score)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "overall          %.4f\n", score.Overall)
			fmt.Fprintf(out, "similarity       %.4f\n", score.Similarity)
			fmt.Fprintf(out, "complementarity  %.4f\n", score.Complementarity)
			fmt.Fprintf(out, "attachment       %.4f\n", score.AttachmentMatch)
			fmt.Fprintf(out, "conflict         %.4f\n", score.ConflictMatch)
			fmt.Fprintf(out, "social           %.4f\n", score.SocialMatch)
			fmt.Fprintf(out, "values           %.4f\n", score.ValuesMatch)
			printList(cmd, "strengths", score.Strengths)
			printList(cmd, "challenges", score.Challenges)
			printList(cmd, "insights", score.Insights)
			return nil
		},
	}
	addPairFlags(cmd)
	addRemoteFlag(cmd)
	return cmd
}

// #endregion calc

// #region total
func NewTotalCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "total",
		Short: "Resonance-model compatibility with feasibility",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req := transport.TotalRequest{}
			var err error
			if req.TraitsA, err = vectorFlag(cmd, "a"); err != nil {
				return err
			}
			if req.TraitsB, err = vectorFlag(cmd, "b"); err != nil {
				return err
			}
			if req.Resonance, err = vectorFlag(cmd, "resonance"); err != nil {
				return err
			}
			if cmd.Flags().Changed("feasibility") {
				f, _ := cmd.Flags().GetFloat64("feasibility")
				req.Feasibility = &f
			}

			var resp transport.TotalResponse
			remote, err := withRemote(cmd, func(ctx context.Context, c *transport.Client) error {
				resp, err = c.Total(ctx, req)
				return err
			})
			if err != nil {
				return err
			}
			if !remote {
				if resp, err = localTotal(cmd, a, req); err != nil {
					return err
				}
			}

			if wantJSON(cmd) {
				return printJSON(cmd, resp)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "c_traits     %.4f\n", resp.Result.CTraits)
			fmt.Fprintf(out, "c_res        %.4f\n", resp.Result.CRes)
			fmt.Fprintf(out, "c_total      %.4f\n", resp.Result.CTotal)
			fmt.Fprintf(out, "feasibility  %.4f\n", resp.Result.Feasibility)
			fmt.Fprintf(out, "s_hat        %.4f\n", resp.Result.SHat)
			printAlignments(cmd, resp.Alignments)
			return nil
		},
	}
	addPairFlags(cmd)
	addRemoteFlag(cmd)
	cmd.Flags().String("resonance", "", "Resonance vector (7 values)")
	cmd.Flags().Float64("feasibility", 1, "Feasibility in [0, 1]")
	return cmd
}

func localTotal(cmd *cobra.Command, a *app, req transport.TotalRequest) (transport.TotalResponse, error) {
	cfg, err := a.config(cmd)
	if err != nil {
		return transport.TotalResponse{}, err
	}
	model, err := cfg.Model()
	if err != nil {
		return transport.TotalResponse{}, err
	}
	ta, err := profile.NewTraitVector(req.TraitsA)
	if err != nil {
		return transport.TotalResponse{}, fmt.Errorf("a: %w", err)
	}
	tb, err := profile.NewTraitVector(req.TraitsB)
	if err != nil {
		return transport.TotalResponse{}, fmt.Errorf("b: %w", err)
	}
	r, err := profile.NewResonanceVector(req.Resonance)
	if err != nil {
		return transport.TotalResponse{}, fmt.Errorf("resonance: %w", err)
	}
	feasibility := 1.0
	if req.Feasibility != nil {
		feasibility = *req.Feasibility
	}
	res, err := model.Total(ta, tb, r, feasibility)
	if err != nil {
		return transport.TotalResponse{}, err
	}
	return transport.TotalResponse{Result: res, Alignments: resonance.DimensionAlignments(ta, tb)}, nil
}

// #endregion total

// #region align
func NewAlignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "align",
		Short: "Per-segment alignment of two trait vectors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			va, err := vectorFlag(cmd, "a")
			if err != nil {
				return err
			}
			vb, err := vectorFlag(cmd, "b")
			if err != nil {
				return err
			}
			al, err := resonance.CalculateDimensionAlignments(va, vb)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd, al)
			}
			printAlignments(cmd, al)
			return nil
		},
	}
	addPairFlags(cmd)
	return cmd
}

func printAlignments(cmd *cobra.Command, al resonance.Alignments) {
	ids := make([]string, 0, len(al))
	for id := range al {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	fmt.Fprintln(cmd.OutOrStdout(), "alignments:")
	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-16s %.4f\n", id, al[profile.SegmentID(id)])
	}
}

// #endregion align
