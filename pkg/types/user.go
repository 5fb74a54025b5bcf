package types

// User is a SkillSwap member. Credits are owned by the server; the client
// never computes them.
type User struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Location  string   `json:"location"`
	Language  string   `json:"language"`
	Credits   int      `json:"credits"`
	Interests []string `json:"interests"`
	Skills    []Skill  `json:"skills,omitempty"`
}

// Registration is the record submitted to create a user.
type Registration struct {
	Name      string   `json:"name" validate:"required"`
	Email     string   `json:"email" validate:"required"`
	Location  string   `json:"location" validate:"required"`
	Language  string   `json:"language" validate:"required"`
	Interests []string `json:"interests"`
}

// Review is a student's rating of a teacher for one session.
type Review struct {
	ID        int64  `json:"id,omitempty"`
	SessionID int64  `json:"session_id"`
	TeacherID int64  `json:"teacher_id"`
	Rating    int    `json:"rating" validate:"min=1,max=5"`
	Comment   string `json:"comment"`
	FromUser  int64  `json:"from_user"`
}
