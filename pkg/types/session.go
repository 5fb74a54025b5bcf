package types

// SessionStatus is the lifecycle state of a booked session.
type SessionStatus string

const (
	StatusPending   SessionStatus = "pending"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

// Terminal reports whether no further transition is possible.
func (s SessionStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether s may move to next. Only pending sessions
// move, and only to completed or cancelled.
func (s SessionStatus) CanTransition(next SessionStatus) bool {
	return s == StatusPending && next.Terminal()
}

// Session is a scheduled booking of a skill between a teacher and a student.
type Session struct {
	ID        int64         `json:"id"`
	SkillID   int64         `json:"skill_id"`
	TeacherID int64         `json:"teacher_id"`
	StudentID int64         `json:"student_id"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	Status    SessionStatus `json:"status"`
}

// SessionRequest is the payload for booking a session.
type SessionRequest struct {
	SkillID   int64  `json:"skill_id"`
	TeacherID int64  `json:"teacher_id"`
	StudentID int64  `json:"student_id"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}
