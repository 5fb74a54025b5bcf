package cli

import (
	"github.com/skillswap/skillswap/internal/sessionflow"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

// profilePage is the active profile with its session history.
type profilePage struct {
	Profile  *types.User     `json:"profile"`
	Teaching []types.Session `json:"teaching"`
	Learning []types.Session `json:"learning"`
}

func newProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show your profile with teaching and learning history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			sessions, err := getApp(cmd).api.FetchUpcomingSessions(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			page := profilePage{Profile: p}
			page.Teaching, page.Learning = sessionflow.History(sessions, p.ID)

			return printResult(cmd, page, func() {
				w := cmd.OutOrStdout()
				headerLabel.Fprintf(w, "%s's Profile\n", p.Name)
				printUser(w, *p)
				cmd.Println()
				headerLabel.Fprintln(w, "Teaching History")
				printSessionCards(w, page.Teaching, "No sessions taught yet.")
				cmd.Println()
				headerLabel.Fprintln(w, "Learning History")
				printSessionCards(w, page.Learning, "No sessions attended yet.")
			})
		},
	}
}
