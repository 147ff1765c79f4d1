package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielpatrickdp/soulmates/go-scorer/internal/birthdate"
	"github.com/danielpatrickdp/soulmates/go-scorer/internal/profile"
)

func NewProfileCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage profiles and their trait versions",
	}
	cmd.AddCommand(
		newProfileCreateCmd(a),
		newProfileListCmd(a),
		newProfileSetTraitsCmd(a),
		newProfileShowCmd(a),
		newProfileHistoryCmd(a),
		newProfileRollbackCmd(a),
	)
	return cmd
}

func newProfileCreateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			bd, _ := cmd.Flags().GetString("birthdate")
			if bd != "" {
				if _, err := birthdate.Parse(bd); err != nil {
					return err
				}
			}
			profiles, _, err := a.stores(cmd)
			if err != nil {
				return err
			}
			p, err := profiles.CreateProfile(args[0], bd)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd, p)
			}
			fmt.Fprintln(cmd.OutOrStdout(), p.ProfileID)
			return nil
		},
	}
	cmd.Flags().String("birthdate", "", "Birthdate (YYYY-MM-DD)")
	return cmd
}

func newProfileListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List profiles, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			profiles, _, err := a.stores(cmd)
			if err != nil {
				return err
			}
			list, err := profiles.ListProfiles(limit)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd, list)
			}
			for _, p := range list {
				fmt.Fprintf(cmd.OutOrStdout(), "%s  %-20s %s\n", p.ProfileID, p.Name, p.Birthdate)
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 50, "Maximum profiles to list")
	return cmd
}

func newProfileSetTraitsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-traits <profile-id>",
		Short: "Commit a new trait version and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := vectorFlag(cmd, "traits")
			if err != nil {
				return err
			}
			traits, err := profile.NewTraitVector(raw)
			if err != nil {
				return err
			}
			source, _ := cmd.Flags().GetString("source")

			profiles, _, err := a.stores(cmd)
			if err != nil {
				return err
			}
			rec, err := profiles.CommitTraits(args[0], traits, profile.Source(source))
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return printJSON(cmd, rec)
			}
			fmt.Fprintln(cmd.OutOrStdout(), rec.VersionID)
			return nil
		},
	}
	cmd.Flags().String("traits", "", "Trait vector (32 values)")
	cmd.Flags().String("source", string(profile.SourceManual), "Where the traits came from (questionnaire|story_quest|manual)")
	return cmd
}

func newProfileShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <profile-id>",
		Short: "Show a profile and its active traits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, _, err := a.stores(cmd)
			if err != nil {
				return err
			}
			p, err := profiles.GetProfile(args[0])
			if err != nil {
				return err
			}
			cur, err := profiles.GetCurrent(args[0])
			hasTraits := err == nil
			if err != nil && !errors.Is(err, profile.ErrNotFound) {
				return err
			}

			if wantJSON(cmd) {
				out := map[string]any{"profile": p}
				if hasTraits {
					out["active"] = cur
				}
				return printJSON(cmd, out)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "id         %s\n", p.ProfileID)
			fmt.Fprintf(w, "name       %s\n", p.Name)
			if p.Birthdate != "" {
				fmt.Fprintf(w, "birthdate  %s\n", p.Birthdate)
			}
			if !hasTraits {
				fmt.Fprintln(w, "traits     (none)")
				return nil
			}
			fmt.Fprintf(w, "version    %s (%s)\n", cur.VersionID, cur.Source)
			for _, seg := range profile.Segments {
				fmt.Fprintf(w, "  %-16s %v\n", seg.ID, cur.Traits.Segment(seg))
			}
			return nil
		},
	}
}

func newProfileHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history <profile-id>",
		Short: "List trait versions, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			profiles, _, err := a.stores(cmd)
			if err != nil {
				return err
			}
			versions, err := profiles.ListVersions(args[0], limit)
			if err != nil {
				return err
			}
			active := ""
			if cur, err := profiles.GetCurrent(args[0]); err == nil {
				active = cur.VersionID
			}

			if wantJSON(cmd) {
				return printJSON(cmd, versions)
			}
			for _, v := range versions {
				marker := " "
				if v.VersionID == active {
					marker = "*"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s  %-13s %s\n",
					marker, v.VersionID, v.Source, v.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return nil
		},
	}
	cmd.Flags().Int("limit", 20, "Maximum versions to list")
	return cmd
}

func newProfileRollbackCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rollback <profile-id> <version-id>",
		Short: "Make an earlier trait version active",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			profiles, _, err := a.stores(cmd)
			if err != nil {
				return err
			}
			if err := profiles.Rollback(args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now at %s\n", args[0], args[1])
			return nil
		},
	}
}
