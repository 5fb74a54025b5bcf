package sessionflow

import "github.com/skillswap/skillswap/pkg/types"

// Color is the badge color of a session status.
type Color string

const (
	Amber Color = "amber"
	Green Color = "green"
	Red   Color = "red"
	Gray  Color = "gray"
)

// Badge returns the color a status is shown with. Unknown statuses are gray.
func Badge(status types.SessionStatus) Color {
	switch status {
	case types.StatusPending:
		return Amber
	case types.StatusCompleted:
		return Green
	case types.StatusCancelled:
		return Red
	default:
		return Gray
	}
}

// Upcoming returns the sessions that are not completed, in input order.
func Upcoming(sessions []types.Session) []types.Session {
	out := make([]types.Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Status != types.StatusCompleted {
			out = append(out, s)
		}
	}
	return out
}

// History splits sessions into those userID teaches and those userID attends.
// A session where the user is both appears in both.
func History(sessions []types.Session, userID int64) (teaching, learning []types.Session) {
	teaching = make([]types.Session, 0)
	learning = make([]types.Session, 0)
	for _, s := range sessions {
		if s.TeacherID == userID {
			teaching = append(teaching, s)
		}
		if s.StudentID == userID {
			learning = append(learning, s)
		}
	}
	return teaching, learning
}
