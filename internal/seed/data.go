package seed

import (
	"time"

	catalogmodels "fittrack/internal/catalog/models"
	"fittrack/pkg/domain"
)

var demoUsers = []struct {
	username, email, password string
}{
	{"admin", "admin@example.com", "admin"},
	{"user1", "user1@example.com", "pass1"},
	{"user2", "user2@example.com", "pass2"},
}

var demoWeights = []struct {
	date   string
	weight float64
}{
	{"2025-06-01", 75.5},
	{"2025-06-08", 75.0},
	{"2025-06-15", 74.8},
}

// demoTemplates returns four global templates owned by admin and one personal
// template owned by user.
func demoTemplates(admin, user domain.UserID, now time.Time) []*catalogmodels.Template {
	global := func(name, description, goal, difficulty, duration string, muscles, equipment []string, exercises ...domain.Exercise) *catalogmodels.Template {
		return &catalogmodels.Template{
			ID:               domain.NewTemplateID(),
			OwnerID:          admin,
			Name:             name,
			Description:      description,
			Exercises:        exercises,
			IsGlobal:         true,
			MuscleGroups:     muscles,
			Goal:             goal,
			Difficulty:       difficulty,
			Equipment:        equipment,
			DurationCategory: duration,
			CreatedAt:        now,
		}
	}

	personal := global("Full-body home workout", "Bodyweight session, no equipment needed.",
		"General tone", "Beginner", "30-60 min",
		[]string{"Legs", "Chest", "Abs"}, []string{"No equipment"},
		domain.Exercise{Name: "Air squat", Sets: 3, Reps: "15-20"},
		domain.Exercise{Name: "Push-up", Sets: 3, Reps: "10-15"},
		domain.Exercise{Name: "Lunge", Sets: 3, Reps: "10-12 per leg"},
		domain.Exercise{Name: "Plank", Sets: 3, Reps: "45-60 s"},
	)
	personal.IsGlobal = false
	personal.OwnerID = user

	return []*catalogmodels.Template{
		global("Chest and triceps", "Compound session for chest and triceps.",
			"Mass gain", "Intermediate", "30-60 min",
			[]string{"Chest", "Triceps"}, []string{"Barbell", "Dumbbells", "No equipment"},
			domain.Exercise{Name: "Bench press", Sets: 4, Reps: "8-12"},
			domain.Exercise{Name: "Incline dumbbell press", Sets: 3, Reps: "10-15"},
			domain.Exercise{Name: "Dips", Sets: 3, Reps: "to failure"},
			domain.Exercise{Name: "Skull crusher", Sets: 3, Reps: "10-15"},
		),
		global("Back and biceps", "High intensity back and biceps session.",
			"Mass gain", "Intermediate", "60+ min",
			[]string{"Back", "Biceps"}, []string{"Barbell", "Machines", "No equipment"},
			domain.Exercise{Name: "Lat pulldown", Sets: 4, Reps: "8-12"},
			domain.Exercise{Name: "Bent-over row", Sets: 3, Reps: "8-12"},
			domain.Exercise{Name: "Pull-up", Sets: 3, Reps: "to failure"},
			domain.Exercise{Name: "Barbell curl", Sets: 3, Reps: "10-15"},
		),
		global("Legs and shoulders", "Lower body and delts.",
			"Strength", "Advanced", "60+ min",
			[]string{"Legs", "Shoulders"}, []string{"Barbell", "Dumbbells", "Machines"},
			domain.Exercise{Name: "Back squat", Sets: 4, Reps: "6-10"},
			domain.Exercise{Name: "Leg press", Sets: 3, Reps: "10-15"},
			domain.Exercise{Name: "Lateral raise", Sets: 3, Reps: "12-15"},
			domain.Exercise{Name: "Seated dumbbell press", Sets: 3, Reps: "8-12"},
		),
		global("Cardio and abs", "Light cardio with core work.",
			"Cutting", "Beginner", "Under 30 min",
			[]string{"Abs", "Cardio"}, []string{"No equipment", "Machines"},
			domain.Exercise{Name: "Treadmill", Sets: 1, Reps: "30 min"},
			domain.Exercise{Name: "Plank", Sets: 3, Reps: "60 s"},
			domain.Exercise{Name: "Crunch", Sets: 3, Reps: "15-20"},
		),
		personal,
	}
}
