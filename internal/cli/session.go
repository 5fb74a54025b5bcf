package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/skillswap/skillswap/internal/sessionflow"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

// sessionPage is the session detail view.
type sessionPage struct {
	Session     types.Session `json:"session"`
	Skill       types.Skill   `json:"skill"`
	CanComplete bool          `json:"can_complete"`
}

func newSessionCmd() *cobra.Command {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Show, complete or review a booked session",
		Long: `Show, complete or review a booked session.

Examples:
  # Show session 1
  skillswap session show 1

  # Complete it as its student, releasing the price to the teacher
  skillswap session complete 1 --yes

  # Rate the teacher afterwards
  skillswap session review 1 --rating 5 --comment "Great class"`,
	}
	sessionCmd.AddCommand(newSessionShowCmd())
	sessionCmd.AddCommand(newSessionCompleteCmd())
	sessionCmd.AddCommand(newSessionReviewCmd())
	return sessionCmd
}

// loadSession opens the session view for the id in args.
func loadSession(cmd *cobra.Command, args []string) (*sessionflow.Flow, *types.User, error) {
	id, err := parseID(args[0], "session")
	if err != nil {
		return nil, nil, err
	}
	viewer, err := requireProfile(cmd)
	if err != nil {
		return nil, nil, err
	}
	a := getApp(cmd)
	flow, err := sessionflow.Load(cmd.Context(), a.scope, a.api, id)
	if err != nil {
		return nil, nil, err
	}
	return flow, viewer, nil
}

func printSessionDetail(cmd *cobra.Command, se types.Session, sk types.Skill) {
	w := cmd.OutOrStdout()
	headerLabel.Fprintf(w, "%s ", sk.Name)
	fmt.Fprintln(w, statusBadge(se.Status))
	cmd.Printf("Date: %s\n", se.Date)
	cmd.Printf("Time: %s\n", se.Time)
	cmd.Printf("Price: %d Credits\n", sk.Price)
	cmd.Printf("Category: %s\n", sk.Category.Title())
	if sk.Location != "" {
		cmd.Printf("Location: %s\n", sk.Location)
	}
	cmd.Printf("Teacher: %d\n", se.TeacherID)
	cmd.Printf("Student: %d\n", se.StudentID)
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show SESSION_ID",
		Short: "Show a session and its skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, viewer, err := loadSession(cmd, args)
			if err != nil {
				return err
			}
			page := sessionPage{Session: flow.Session(), Skill: flow.Skill(), CanComplete: flow.CanComplete(viewer)}
			return printResult(cmd, page, func() {
				printSessionDetail(cmd, page.Session, page.Skill)
				if page.CanComplete {
					cmd.Printf("\nMark it completed with \"skillswap session complete %d\".\n", page.Session.ID)
				}
			})
		},
	}
}

func newSessionCompleteCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "complete SESSION_ID [--yes]",
		Short: "Mark a pending session completed, releasing its credits to the teacher",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, viewer, err := loadSession(cmd, args)
			if err != nil {
				return err
			}
			notice, err := flow.RequestCompletion(viewer)
			if err != nil {
				return err
			}
			if !yes {
				cmd.Printf("Completing this session releases %d credits to the teacher.\n", notice.Credits)
				ok, err := newPrompter(cmd).confirm("Mark the session as completed?")
				if err != nil {
					return err
				}
				if !ok {
					flow.CancelCompletion()
					cmd.Println("Nothing changed.")
					return nil
				}
			}
			if err := flow.ConfirmCompletion(cmd.Context()); err != nil {
				return err
			}
			session := flow.Session()
			return printResult(cmd, session, func() {
				okLabel.Fprintln(cmd.OutOrStdout(), "Session marked as completed.")
				printSessionCard(cmd.OutOrStdout(), session)
			})
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Complete without asking for confirmation")
	return cmd
}

func newSessionReviewCmd() *cobra.Command {
	var (
		rating  int
		comment string
	)
	cmd := &cobra.Command{
		Use:   "review SESSION_ID [flags]",
		Short: "Rate the teacher of a completed session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flow, viewer, err := loadSession(cmd, args)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("rating") {
				p := newPrompter(cmd)
				answer, err := p.ask("Rating (1-5)")
				if err != nil {
					return err
				}
				if rating, err = strconv.Atoi(answer); err != nil {
					return fmt.Errorf("rating must be a whole number: %q", answer)
				}
				if !cmd.Flags().Changed("comment") {
					if comment, err = p.ask("Comment"); err != nil {
						return err
					}
				}
			}
			review, err := flow.SubmitReview(cmd.Context(), viewer, rating, comment)
			if err != nil {
				return err
			}
			return printResult(cmd, review, func() {
				okLabel.Fprintf(cmd.OutOrStdout(), "Review submitted: %s\n", stars(review.Rating))
			})
		},
	}
	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Rating from 1 to 5")
	cmd.Flags().StringVarP(&comment, "comment", "m", "", "Comment for the teacher")
	return cmd
}

func stars(rating int) string {
	rating = max(0, min(rating, 5))
	return strings.Repeat("*", rating) + strings.Repeat(".", 5-rating)
}

func newSessionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sessions",
		Short: "List your upcoming sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			all, err := getApp(cmd).api.FetchUpcomingSessions(cmd.Context(), p.ID)
			if err != nil {
				return err
			}
			upcoming := sessionflow.Upcoming(all)
			return printResult(cmd, upcoming, func() {
				headerLabel.Fprintln(cmd.OutOrStdout(), "Your Upcoming Sessions")
				printSessionCards(cmd.OutOrStdout(), upcoming, "No upcoming sessions.")
			})
		},
	}
}
