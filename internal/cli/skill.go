package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/skillswap/skillswap/internal/booking"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

func newSkillCmd() *cobra.Command {
	skillCmd := &cobra.Command{
		Use:   "skill",
		Short: "Show, book or add a single skill",
		Long: `Show, book or add a single skill.

Examples:
  # Show skill 1 with its time slots
  skillswap skill show 1

  # Book the Monday 09:00-10:00 slot of skill 1 without prompting
  skillswap skill book 1 --day Monday --start 09:00 --end 10:00 --yes

  # Teach something new
  skillswap skill add --name "Knife Skills" --category other --description "Chop faster." --price 12 --slot Friday,14:00,15:00`,
	}
	skillCmd.AddCommand(newSkillShowCmd())
	skillCmd.AddCommand(newSkillBookCmd())
	skillCmd.AddCommand(newSkillAddCmd())
	return skillCmd
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}

// skillPage is the skill detail view with its teacher.
type skillPage struct {
	Skill      *types.Skill `json:"skill"`
	Teacher    *types.User  `json:"teacher,omitempty"`
	TeacherErr string       `json:"teacher_error,omitempty"`
}

func newSkillShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show SKILL_ID",
		Short: "Show a skill, its teacher and its time slots",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "skill")
			if err != nil {
				return err
			}
			a := getApp(cmd)
			skill, err := view.Run(a.scope, cmd.Context(), func(ctx context.Context) (*types.Skill, error) {
				return a.api.FetchSkill(ctx, id)
			})
			if err != nil {
				return err
			}

			page := skillPage{Skill: skill}
			// the teacher card fails on its own without failing the page
			teacher, err := view.Run(a.scope, cmd.Context(), func(ctx context.Context) (*types.User, error) {
				return a.api.FetchUser(ctx, skill.UserID)
			})
			if err != nil {
				page.TeacherErr = err.Error()
			} else {
				page.Teacher = teacher
			}

			return printResult(cmd, page, func() {
				w := cmd.OutOrStdout()
				printSkillDetail(w, *skill)
				cmd.Println()
				if page.Teacher != nil {
					cmd.Printf("Taught by %s (%s)\n", page.Teacher.Name, page.Teacher.Location)
				} else {
					errorLabel.Fprintf(w, "Taught by: Error: %s\n", page.TeacherErr)
				}
			})
		},
	}
}

func newSkillBookCmd() *cobra.Command {
	var (
		slot            int
		day, start, end string
		yes             bool
	)
	cmd := &cobra.Command{
		Use:   "book SKILL_ID [flags]",
		Short: "Book a session in one of a skill's time slots",
		Long: `Book a session in one of a skill's time slots. Pick the slot by its number
from "skill show" with --slot, or by --day, --start and --end. Without
either you are asked for the number. You are then shown the price and
your balance and asked to confirm, unless --yes is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0], "skill")
			if err != nil {
				return err
			}
			viewer, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			a := getApp(cmd)
			skill, err := view.Run(a.scope, cmd.Context(), func(ctx context.Context) (*types.Skill, error) {
				return a.api.FetchSkill(ctx, id)
			})
			if err != nil {
				return err
			}

			flow := booking.NewFlow(a.scope, a.api, *skill, *viewer)
			if len(flow.Slots()) == 0 {
				return fmt.Errorf("%s has no time slots to book", skill.Name)
			}
			p := newPrompter(cmd)

			switch {
			case cmd.Flags().Changed("slot"):
				err = flow.Select(slot)
			case day != "" || start != "" || end != "":
				err = flow.SelectSlot(day, start, end)
			default:
				err = askSlot(cmd, p, flow)
			}
			if err != nil {
				return err
			}

			return confirmBooking(cmd, p, flow, yes)
		},
	}
	cmd.Flags().IntVar(&slot, "slot", -1, "Slot number as listed by \"skill show\"")
	cmd.Flags().StringVar(&day, "day", "", "Day of the slot, e.g. Monday")
	cmd.Flags().StringVar(&start, "start", "", "Start time of the slot, e.g. 09:00")
	cmd.Flags().StringVar(&end, "end", "", "End time of the slot, e.g. 10:00")
	cmd.Flags().BoolVar(&yes, "yes", false, "Book without asking for confirmation")
	cmd.MarkFlagsMutuallyExclusive("slot", "day")
	cmd.MarkFlagsRequiredTogether("day", "start", "end")
	return cmd
}

func askSlot(cmd *cobra.Command, p *prompter, flow *booking.Flow) error {
	printSlots(cmd.OutOrStdout(), flow.Slots())
	answer, err := p.ask("Slot number")
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return booking.ErrNoSuchSlot
	}
	return flow.Select(n)
}

// confirmBooking shows the confirmation and registers the session. A
// failed registration keeps the confirmation open: interactively the user
// may try again, with --yes the error is returned.
func confirmBooking(cmd *cobra.Command, p *prompter, flow *booking.Flow, yes bool) error {
	c, err := flow.RequestConfirmation()
	if err != nil {
		return err
	}
	if !jsonOutput && !yamlOutput {
		w := cmd.OutOrStdout()
		headerLabel.Fprintln(w, "Confirm Booking")
		cmd.Printf("Date: %s (next on %s)\n", c.Date, c.NextDate.Format("Mon 2 Jan 2006"))
		cmd.Printf("Time: %s - %s\n", c.Start, c.End)
		cmd.Printf("Price: %d credits\n", c.Price)
		cmd.Printf("Your credits: %d credits\n", c.Credits)
	}

	for {
		if !yes {
			ok, err := p.confirm("Are you sure you want to book this session?")
			if err != nil {
				return err
			}
			if !ok {
				flow.Cancel()
				cmd.Println("Booking cancelled.")
				return nil
			}
		}

		session, err := flow.Confirm(cmd.Context())
		if err == nil {
			return printResult(cmd, session, func() {
				okLabel.Fprintln(cmd.OutOrStdout(), "Session booked successfully!")
				printSessionCard(cmd.OutOrStdout(), *session)
			})
		}
		if yes || errors.Is(err, view.ErrReleased) {
			return err
		}
		errorLabel.Fprintf(cmd.OutOrStdout(), "Error: %v\n", err)
	}
}
