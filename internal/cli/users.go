package cli

import (
	"context"
	"fmt"

	"github.com/skillswap/skillswap/internal/catalog"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List SkillSwap members",
		Long: `List every member with their location and credit balance.

Examples:
  skillswap users
  skillswap users --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := getApp(cmd)
			users, err := view.Run(a.scope, cmd.Context(), func(ctx context.Context) ([]types.User, error) {
				return a.api.FetchUsers(ctx)
			})
			if err != nil {
				return err
			}
			return printResult(cmd, users, func() {
				w := cmd.OutOrStdout()
				if len(users) == 0 {
					fmt.Fprintln(w, "No members yet.")
					return
				}
				for _, u := range users {
					marker := " "
					if u.ID == a.cfg.ProfileID {
						marker = "*"
					}
					fmt.Fprintf(w, "%s %4d  %-20s %-16s %s\n", marker, u.ID, catalog.Truncate(u.Name, 20), u.Location,
						priceLabel.Sprintf("%d credits", u.Credits))
				}
			})
		},
	}
}
