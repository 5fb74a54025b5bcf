package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/skillswap/skillswap/internal/catalog"
	"github.com/skillswap/skillswap/internal/sessionflow"
	"github.com/skillswap/skillswap/pkg/types"
)

var badgeColors = map[sessionflow.Color]*color.Color{
	sessionflow.Amber: color.New(color.FgYellow),
	sessionflow.Green: color.New(color.FgGreen),
	sessionflow.Red:   color.New(color.FgRed),
	sessionflow.Gray:  color.New(color.FgHiBlack),
}

var priceLabel = color.New(color.FgGreen)
var tagLabel = color.New(color.FgCyan)

func statusBadge(status types.SessionStatus) string {
	return badgeColors[sessionflow.Badge(status)].Sprintf("[%s]", status)
}

// printSkillCard prints the short form used in lists: truncated name and
// description, price, location and online flag.
func printSkillCard(w io.Writer, s types.Skill) {
	where := s.Location
	if s.Online {
		if where != "" {
			where += ", "
		}
		where += "online"
	}
	fmt.Fprintf(w, "  #%d %-23s %s  %s\n", s.ID, catalog.Truncate(s.Name, catalog.CardNameLength),
		priceLabel.Sprintf("%d credits", s.Price), where)
	if s.Description != "" {
		fmt.Fprintf(w, "      %s\n", catalog.Truncate(s.Description, catalog.CardDescriptionLength))
	}
}

func printSkillCards(w io.Writer, skills []types.Skill, empty string) {
	if len(skills) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, s := range skills {
		printSkillCard(w, s)
	}
}

func printSessionCard(w io.Writer, s types.Session) {
	fmt.Fprintf(w, "  #%d %s  %s %s  skill %d  teacher %d  student %d\n",
		s.ID, statusBadge(s.Status), s.Date, s.Time, s.SkillID, s.TeacherID, s.StudentID)
}

func printSessionCards(w io.Writer, sessions []types.Session, empty string) {
	if len(sessions) == 0 {
		fmt.Fprintf(w, "  %s\n", empty)
		return
	}
	for _, s := range sessions {
		printSessionCard(w, s)
	}
}

// printSkillDetail prints every field of a skill with its availability
// as a numbered slot list.
func printSkillDetail(w io.Writer, s types.Skill) {
	headerLabel.Fprintf(w, "%s\n", s.Name)
	fmt.Fprintf(w, "Category: %s\n", s.Category.Title())
	fmt.Fprintf(w, "Price: %s\n", priceLabel.Sprintf("%d credits", s.Price))
	if s.Location != "" {
		fmt.Fprintf(w, "Location: %s\n", s.Location)
	}
	fmt.Fprintf(w, "Online: %s\n", yesNo(s.Online))
	if len(s.Tags) > 0 {
		tags := make([]string, 0, len(s.Tags))
		for _, t := range s.Tags {
			tags = append(tags, tagLabel.Sprint(t))
		}
		fmt.Fprintf(w, "Tags: %s\n", strings.Join(tags, ", "))
	}
	fmt.Fprintf(w, "\n%s\n", s.Description)
	fmt.Fprintln(w)
	printSlots(w, s.Availability.Slots())
}

func printSlots(w io.Writer, slots []types.DaySlot) {
	if len(slots) == 0 {
		fmt.Fprintln(w, "No availability listed.")
		return
	}
	fmt.Fprintln(w, "Availability:")
	for _, s := range slots {
		fmt.Fprintf(w, "  [%d] %-9s %s\n", s.Index, s.Day, s.Slot.Range())
	}
}

func printUser(w io.Writer, u types.User) {
	headerLabel.Fprintf(w, "%s\n", u.Name)
	fmt.Fprintf(w, "Email: %s\n", u.Email)
	fmt.Fprintf(w, "Location: %s\n", u.Location)
	fmt.Fprintf(w, "Language: %s\n", u.Language)
	fmt.Fprintf(w, "Credits: %s\n", priceLabel.Sprintf("%d", u.Credits))
	if len(u.Interests) > 0 {
		fmt.Fprintf(w, "Interests: %s\n", strings.Join(u.Interests, ", "))
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
