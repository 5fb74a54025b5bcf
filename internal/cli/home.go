package cli

import (
	"context"

	"github.com/skillswap/skillswap/internal/catalog"
	"github.com/skillswap/skillswap/internal/sessionflow"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

// dashboard is the home page content.
type dashboard struct {
	Profile  *types.User     `json:"profile"`
	Upcoming []types.Session `json:"upcoming"`
	Nearby   []types.Skill   `json:"nearby"`
	ForYou   []types.Skill   `json:"for_you"`
}

// loadDashboard fetches all skills and the profile's sessions in parallel.
func loadDashboard(a *app, p *types.User) (*dashboard, error) {
	var (
		skills   []types.Skill
		sessions []types.Session
	)
	skillsReq := view.Go(a.scope, func(ctx context.Context) ([]types.Skill, error) {
		return a.api.FetchSkills(ctx)
	}, func(v []types.Skill, err error) {
		skills = v
	})
	sessionsReq := view.Go(a.scope, func(ctx context.Context) ([]types.Session, error) {
		return a.api.FetchUpcomingSessions(ctx, p.ID)
	}, func(v []types.Session, err error) {
		sessions = v
	})
	if err := firstError(skillsReq.Wait(), sessionsReq.Wait()); err != nil {
		return nil, err
	}

	return &dashboard{
		Profile:  p,
		Upcoming: sessionflow.Upcoming(sessions),
		Nearby:   catalog.Nearby(skills, p),
		ForYou:   catalog.ForYou(skills, p),
	}, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func newHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show your dashboard: upcoming sessions and skills picked for you",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			d, err := loadDashboard(getApp(cmd), p)
			if err != nil {
				return err
			}
			return printResult(cmd, d, func() {
				w := cmd.OutOrStdout()
				headerLabel.Fprintf(w, "Hi %s,\n", p.Name)
				cmd.Println("What would you like to do today?")
				cmd.Println()
				headerLabel.Fprintln(w, "Your Upcoming Sessions")
				printSessionCards(w, d.Upcoming, "No upcoming sessions.")
				cmd.Println()
				headerLabel.Fprintf(w, "Skills near %s\n", p.Location)
				printSkillCards(w, d.Nearby, "Nothing nearby yet.")
				cmd.Println()
				headerLabel.Fprintln(w, "Skills For You")
				printSkillCards(w, d.ForYou, "Add interests to your profile to get picks.")
			})
		},
	}
}
