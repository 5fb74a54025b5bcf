package cli

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/skillswap/skillswap/internal/authoring"
	"github.com/skillswap/skillswap/internal/profile"
	"github.com/skillswap/skillswap/internal/view"
	"github.com/skillswap/skillswap/pkg/types"
	"github.com/spf13/cobra"
)

var motivationalQuotes = []string{
	"How are you giving back to the community?",
	"What are you planning to teach today?",
	"Share your expertise with others!",
	"Your knowledge could be someone's next breakthrough.",
}

// teachHub is the teach page: a prompt to add skills and the profile's own skills.
type teachHub struct {
	Quote  string        `json:"quote"`
	Skills []types.Skill `json:"skills"`
}

func printTeachHub(cmd *cobra.Command, p *types.User) error {
	hub := teachHub{
		Quote:  motivationalQuotes[rand.IntN(len(motivationalQuotes))],
		Skills: p.Skills,
	}
	if hub.Skills == nil {
		hub.Skills = []types.Skill{}
	}
	return printResult(cmd, hub, func() {
		w := cmd.OutOrStdout()
		headerLabel.Fprintln(w, "Teach & Share")
		cmd.Println(hub.Quote)
		cmd.Println("Add a new skill with \"skillswap skill add\".")
		cmd.Println()
		headerLabel.Fprintln(w, "Your Teaching Skills")
		if len(hub.Skills) == 0 {
			cmd.Println("  You haven't added any skills yet.")
			cmd.Println("  Share your knowledge with the community!")
			return
		}
		printSkillCards(w, hub.Skills, "")
	})
}

func newTeachCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "teach",
		Short: "Show the skills you teach",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			return printTeachHub(cmd, p)
		},
	}
}

func newSkillAddCmd() *cobra.Command {
	var (
		filename string
		slots    []string
	)
	cmd := &cobra.Command{
		Use:   "add [flags]",
		Short: "Add a skill you teach",
		Long: `Add a skill you teach. Give the fields as flags, or run without flags to be
asked for each one. Availability is one --slot DAY,START,END per time slot.

Several skills can be added from a YAML file with one document per skill:

  name: Knife Skills
  category: other
  description: Chop faster.
  price: 12
  tags: cooking, knives
  availability:
    - {day: Friday, start: "14:00", end: "15:00"}

The file may use {{ .ENV.NAME }} placeholders, filled from the environment
or a .env file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requireProfile(cmd)
			if err != nil {
				return err
			}
			a := getApp(cmd)

			var added []types.Skill
			switch {
			case filename != "":
				added, err = addSkillsFromFile(cmd.Context(), a, p.ID, filename)
			case !hasFormFlags(cmd):
				var s *types.Skill
				s, err = addSkillInteractive(cmd, a, p.ID)
				if s != nil {
					added = append(added, *s)
				}
			default:
				var s *types.Skill
				s, err = addSkillFromFlags(cmd, a, p.ID, slots)
				if s != nil {
					added = append(added, *s)
				}
			}
			if err != nil {
				return err
			}

			if jsonOutput || yamlOutput {
				return printResult(cmd, added, nil)
			}
			for _, s := range added {
				okLabel.Fprintf(cmd.OutOrStdout(), "Skill added: #%d %s\n", s.ID, s.Name)
			}
			cmd.Println()
			return showTeachHubAfterAdd(cmd, a, p)
		},
	}
	cmd.Flags().StringP("name", "n", "", "Skill name")
	cmd.Flags().StringP("category", "c", "", "One of technology, arts, personal development, health, other")
	cmd.Flags().StringP("description", "d", "", "What you will teach")
	cmd.Flags().StringP("price", "p", "", "Price in credits")
	cmd.Flags().Bool("online", false, "Taught online")
	cmd.Flags().StringP("tags", "t", "", "Comma separated tags")
	cmd.Flags().StringArrayVar(&slots, "slot", nil, "Time slot as DAY,START,END, repeatable")
	cmd.Flags().StringVarP(&filename, "filename", "f", "", "YAML file with one skill per document")
	return cmd
}

var skillFormFlags = []string{"name", "category", "description", "price", "tags", "online"}

func hasFormFlags(cmd *cobra.Command) bool {
	for _, name := range append(skillFormFlags, "slot") {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

// showTeachHubAfterAdd returns to the teach page with the profile refreshed
// so the new skills are listed.
func showTeachHubAfterAdd(cmd *cobra.Command, a *app, p *types.User) error {
	fresh, err := view.Run(a.scope, cmd.Context(), func(ctx context.Context) (*types.User, error) {
		return a.api.FetchUser(ctx, p.ID)
	})
	if err != nil {
		return printTeachHub(cmd, p)
	}
	profile.FromContext(cmd.Context()).Set(fresh)
	return printTeachHub(cmd, fresh)
}

func addSkillFromFlags(cmd *cobra.Command, a *app, userID int64, slots []string) (*types.Skill, error) {
	values := map[string]any{}
	for _, name := range skillFormFlags {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			values[name] = f.Value.String()
		}
	}

	flow := authoring.NewFlow(a.scope, a.api, userID)
	if err := flow.Decode(values); err != nil {
		return nil, err
	}
	for _, s := range slots {
		day, start, end, err := parseSlot(s)
		if err != nil {
			return nil, err
		}
		flow.AddAvailability(day, start, end)
	}
	return flow.Submit(cmd.Context())
}

func parseSlot(s string) (day, start, end string, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return "", "", "", fmt.Errorf("invalid slot %q, expected DAY,START,END", s)
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), strings.TrimSpace(parts[2]), nil
}

func addSkillInteractive(cmd *cobra.Command, a *app, userID int64) (*types.Skill, error) {
	p := newPrompter(cmd)
	values := map[string]any{}
	for _, field := range []struct{ key, label string }{
		{"name", "Name"},
		{"category", "Category (technology, arts, personal development, health, other)"},
		{"description", "Description"},
		{"price", "Price in credits"},
		{"tags", "Tags, comma separated"},
	} {
		answer, err := p.ask(field.label)
		if err != nil {
			return nil, err
		}
		values[field.key] = answer
	}
	online, err := p.confirm("Taught online?")
	if err != nil {
		return nil, err
	}
	values["online"] = online

	flow := authoring.NewFlow(a.scope, a.api, userID)
	if err := flow.Decode(values); err != nil {
		return nil, err
	}
	cmd.Println("Add time slots, leave the day empty to finish.")
	for {
		day, err := p.ask("Day")
		if err != nil {
			return nil, err
		}
		if day == "" {
			break
		}
		start, err := p.ask("Start time (HH:MM)")
		if err != nil {
			return nil, err
		}
		end, err := p.ask("End time (HH:MM)")
		if err != nil {
			return nil, err
		}
		if !flow.AddAvailability(day, start, end) {
			errorLabel.Fprintln(cmd.OutOrStdout(), "Day, start and end are all needed; slot skipped.")
		}
	}
	return flow.Submit(cmd.Context())
}

// addSkillsFromFile adds one skill per YAML document, stopping at the first
// failure. Skills added before it are returned with the error.
func addSkillsFromFile(ctx context.Context, a *app, userID int64, filename string) ([]types.Skill, error) {
	docs, err := ParseMultiYAML(filename)
	if err != nil {
		return nil, err
	}
	added := make([]types.Skill, 0, len(docs))
	for i, doc := range docs {
		flow := authoring.NewFlow(a.scope, a.api, userID)
		avail, _ := doc["availability"].([]any)
		delete(doc, "availability")
		if err := flow.Decode(doc); err != nil {
			return added, fmt.Errorf("document %d: %w", i+1, err)
		}
		for _, entry := range avail {
			m, ok := entry.(map[string]any)
			if !ok {
				return added, fmt.Errorf("document %d: availability entries need day, start and end", i+1)
			}
			flow.AddAvailability(str(m["day"]), str(m["start"]), str(m["end"]))
		}
		s, err := flow.Submit(ctx)
		if err != nil {
			return added, fmt.Errorf("document %d: %w", i+1, err)
		}
		added = append(added, *s)
	}
	return added, nil
}

func str(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
