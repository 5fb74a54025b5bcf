package cli

import (
	"github.com/skillswap/skillswap/internal/catalog"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

func newSkillsCmd() *cobra.Command {
	skillsCmd := &cobra.Command{
		Use:   "skills",
		Short: "Browse the skill catalog",
		Long: `Browse the skill catalog.

Examples:
  # Everything under 20 credits mentioning python
  skillswap skills list -q python -p 20

  # Skills taught near you
  skillswap skills nearby

  # Skills matching your interests
  skillswap skills for-you

  # Ask the server for yoga in Bugis
  skillswap skills search --tag Yoga --location Bugis`,
	}
	skillsCmd.AddCommand(newSkillsListCmd())
	skillsCmd.AddCommand(newSkillsNearbyCmd())
	skillsCmd.AddCommand(newSkillsForYouCmd())
	skillsCmd.AddCommand(newSkillsSuggestedCmd())
	skillsCmd.AddCommand(newSkillsSearchCmd())
	return skillsCmd
}

func newSkillsListCmd() *cobra.Command {
	var (
		filter   catalog.Filter
		maxPrice string
	)
	cmd := &cobra.Command{
		Use:   "list [flags]",
		Short: "List skills, filtered on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var err error
			filter.MaxPrice, err = catalog.ParseMaxPrice(maxPrice)
			if err != nil {
				return err
			}
			skills, err := getApp(cmd).api.FetchSkills(cmd.Context())
			if err != nil {
				return err
			}
			matched := filter.Apply(skills)
			return printResult(cmd, matched, func() {
				headerLabel.Fprintf(cmd.OutOrStdout(), "Skills (%d of %d):\n", len(matched), len(skills))
				printSkillCards(cmd.OutOrStdout(), matched, "No skills match.")
			})
		},
	}
	cmd.Flags().StringVarP(&filter.Query, "query", "q", "", "Text to find in the name or description")
	cmd.Flags().StringVarP(&filter.Category, "category", "c", "", "Exact category value, e.g. technology")
	cmd.Flags().StringVarP(&filter.Location, "location", "l", "", "Exact location, e.g. \"Tiong Bahru\"")
	cmd.Flags().StringVarP(&maxPrice, "max-price", "p", "", "Highest price in credits")
	return cmd
}

// newDerivedSkillsCmd lists the subset of all skills picked for the active
// profile by pick.
func newDerivedSkillsCmd(use, short string, title func(*types.User) string, empty string, pick func([]types.Skill, *types.User) []types.Skill) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			skills, err := getApp(cmd).api.FetchSkills(cmd.Context())
			if err != nil {
				return err
			}
			picked := pick(skills, p)
			return printResult(cmd, picked, func() {
				headerLabel.Fprintln(cmd.OutOrStdout(), title(p))
				printSkillCards(cmd.OutOrStdout(), picked, empty)
			})
		},
	}
}

func newSkillsNearbyCmd() *cobra.Command {
	return newDerivedSkillsCmd("nearby", "List skills taught near your location",
		func(p *types.User) string { return "Skills near " + p.Location },
		"Nothing nearby yet.", catalog.Nearby)
}

func newSkillsForYouCmd() *cobra.Command {
	return newDerivedSkillsCmd("for-you", "List skills tagged with one of your interests",
		func(*types.User) string { return "Skills For You" },
		"Add interests to your profile to get picks.", catalog.ForYou)
}

func newSkillsSuggestedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "suggested",
		Short: "List skills the server suggests for your interests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			skills, err := getApp(cmd).api.FetchSuggestedSkills(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			return printResult(cmd, skills, func() {
				headerLabel.Fprintln(cmd.OutOrStdout(), "Suggested Skills")
				printSkillCards(cmd.OutOrStdout(), skills, "No suggestions yet.")
			})
		},
	}
}

func newSkillsSearchCmd() *cobra.Command {
	var (
		q        types.SearchQuery
		maxPrice string
	)
	cmd := &cobra.Command{
		Use:   "search [flags]",
		Short: "Search skills on the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, err := catalog.ParseMaxPrice(maxPrice)
			if err != nil {
				return err
			}
			if limit != nil {
				q.MaxPrice = *limit
			}
			skills, err := getApp(cmd).api.SearchSkills(cmd.Context(), q)
			if err != nil {
				return err
			}
			return printResult(cmd, skills, func() {
				headerLabel.Fprintf(cmd.OutOrStdout(), "Found %d skills:\n", len(skills))
				printSkillCards(cmd.OutOrStdout(), skills, "No skills match.")
			})
		},
	}
	cmd.Flags().StringVarP(&q.Category, "category", "c", "", "Category")
	cmd.Flags().StringVarP(&q.Location, "location", "l", "", "Location")
	cmd.Flags().StringVarP(&maxPrice, "max-price", "p", "", "Highest price in credits")
	cmd.Flags().StringSliceVarP(&q.Tags, "tag", "t", nil, "Tag to match, repeatable")
	return cmd
}
