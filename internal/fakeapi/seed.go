package fakeapi

import "github.com/skillswap/skillswap/pkg/types"

// DemoProfileID is the profile the client uses before anyone registers.
const DemoProfileID = 12

// Seed loads a small demo data set: three members, a handful of skills and
// one pending session.
func (s *Server) Seed() {
	alice := s.AddUser(types.User{
		Name:      "Alice Tan",
		Email:     "alice@example.com",
		Location:  "Tiong Bahru",
		Language:  "English",
		Credits:   DefaultCredits,
		Interests: []string{"Photography", "Public Speaking"},
	})
	bob := s.AddUser(types.User{
		Name:      "Bob Lim",
		Email:     "bob@example.com",
		Location:  "Bugis",
		Language:  "English",
		Credits:   DefaultCredits,
		Interests: []string{"Python", "Cooking"},
	})
	me := s.AddUser(types.User{
		ID:        DemoProfileID,
		Name:      "Sam Lee",
		Email:     "sam@example.com",
		Location:  "Tiong Bahru",
		Language:  "English",
		Credits:   DefaultCredits,
		Interests: []string{"Python", "Yoga"},
	})

	python := s.AddSkill(types.Skill{
		UserID:      alice,
		Name:        "Python Basics",
		Category:    types.CategoryTechnology,
		Description: "Learn the basics of Python programming.",
		Price:       15,
		Online:      true,
		Tags:        []string{"Python", "Programming", "Coding"},
		Availability: &types.Availability{
			Days: []string{"Monday", "Wednesday"},
			TimeSlots: []types.TimeSlot{
				{StartTime: "09:00", EndTime: "10:00"},
				{StartTime: "14:00", EndTime: "16:00"},
			},
		},
	})
	s.AddSkill(types.Skill{
		UserID:      alice,
		Name:        "Photography Masterclass",
		Category:    types.CategoryArts,
		Description: "Master the art of photography.",
		Price:       20,
		Tags:        []string{"Photography", "Camera", "Editing"},
		Availability: &types.Availability{
			Days:      []string{"Saturday"},
			TimeSlots: []types.TimeSlot{{StartTime: "10:00", EndTime: "12:00"}},
		},
	})
	s.AddSkill(types.Skill{
		UserID:      bob,
		Name:        "Morning Yoga",
		Category:    types.CategoryHealth,
		Description: "Gentle yoga flows for beginners.",
		Price:       10,
		Tags:        []string{"Yoga", "Fitness"},
		Availability: &types.Availability{
			Days:      []string{"Tuesday", "Thursday"},
			TimeSlots: []types.TimeSlot{{StartTime: "07:00", EndTime: "08:00"}, {StartTime: "07:00", EndTime: "08:00"}},
		},
	})
	s.AddSkill(types.Skill{
		UserID:      me,
		Name:        "Public Speaking",
		Category:    types.CategoryPersonalDevelopment,
		Description: "Speak with confidence in front of any audience.",
		Price:       12,
		Online:      true,
		Tags:        []string{"Public Speaking", "Communication"},
		Availability: &types.Availability{
			Days:      []string{"Friday"},
			TimeSlots: []types.TimeSlot{{StartTime: "18:00", EndTime: "19:00"}},
		},
	})

	s.AddSession(types.Session{
		SkillID:   python,
		TeacherID: me,
		StudentID: alice,
		Date:      "Monday",
		Time:      "09:00-10:00",
	})
}
