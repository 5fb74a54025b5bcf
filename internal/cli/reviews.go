package cli

import (
	"context"

	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

func newReviewsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reviews USER_ID",
		Short: "Show the reviews a teacher received",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "user")
			if err != nil {
				return err
			}
			a := getApp(cmd)
			reviews, err := view.Run(a.scope, cmd.Context(), func(ctx context.Context) ([]types.Review, error) {
				return a.api.FetchTeacherReviews(ctx, id)
			})
			if err != nil {
				return err
			}
			return printResult(cmd, reviews, func() {
				headerLabel.Fprintf(cmd.OutOrStdout(), "Reviews for teacher %d\n", id)
				for _, r := range reviews {
					cmd.Printf("  %s  session %d  from %d\n", stars(r.Rating), r.SessionID, r.FromUser)
					if r.Comment != "" {
						cmd.Printf("      %s\n", r.Comment)
					}
				}
			})
		},
	}
}
