package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/birthdate"
)

func NewNumerologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "numerology <date1> <date2>",
		Short: "Life path numbers and numerology compatibility (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lp1, err := birthdate.LifePathNumber(args[0])
			if err != nil {
				return err
			}
			lp2, err := birthdate.LifePathNumber(args[1])
			if err != nil {
				return err
			}
			score, err := birthdate.NumerologyCompatibility(args[0], args[1])
			if err != nil {
				return err
			}

			if wantJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"life_path_1":   lp1,
					"life_path_2":   lp2,
					"compatibility": score,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "life paths %d and %d: %.1f\n", lp1, lp2, score)
			return nil
		},
	}
}

func NewAstrologyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "astrology <date1> <date2>",
		Short: "Sun signs, elements and astrology compatibility (YYYY-MM-DD)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s1, err := birthdate.ZodiacSign(args[0])
			if err != nil {
				return err
			}
			s2, err := birthdate.ZodiacSign(args[1])
			if err != nil {
				return err
			}
			score, err := birthdate.AstrologyCompatibility(args[0], args[1])
			if err != nil {
				return err
			}

			if wantJSON(cmd) {
				return printJSON(cmd, map[string]any{
					"sign_1":        s1,
					"sign_2":        s2,
					"element_1":     birthdate.ElementOf(s1),
					"element_2":     birthdate.ElementOf(s2),
					"compatibility": score,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s) and %s (%s): %.1f\n",
				s1, birthdate.ElementOf(s1), s2, birthdate.ElementOf(s2), score)
			return nil
		},
	}
}
